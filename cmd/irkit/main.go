package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/scienceos/irkit/internal/cli"
)

// main is the entrypoint for the irkit binary.
func main() {
	// Use a minimal logger until the configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
