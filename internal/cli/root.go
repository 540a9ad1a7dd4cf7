package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scienceos/irkit/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel  string   // "debug" | "info" | "warn" | "error"
	LogFormat string   // "text" | "json" | "auto"
	Manifests []string // extra dialect manifest files
}

// ValidLogFormats defines the allowed log output formats.
var ValidLogFormats = []string{"text", "json", "auto"}

// NewRootCommand creates the root command for the irkit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "irkit",
		Short: "irkit - extensible IR dialect tooling",
		Long:  "Inspect, parse and verify IR constructs through registered dialect descriptors.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidLogFormat(opts.LogFormat) {
				return fmt.Errorf("invalid log-format %q: must be one of %v", opts.LogFormat, ValidLogFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "logging level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "auto", "log output format (text|json|auto)")
	cmd.PersistentFlags().StringArrayVar(&opts.Manifests, "manifest", nil, "extra dialect manifest file (.hcl or .yaml); repeatable")

	cmd.AddCommand(NewDialectsCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewTypeCommand(opts))

	return cmd
}

// newApp runs the startup sequence for a command invocation.
func (o *RootOptions) newApp(errW io.Writer) (*app.App, error) {
	return app.New(errW, app.Config{
		ManifestPaths: o.Manifests,
		LogLevel:      o.LogLevel,
		LogFormat:     o.LogFormat,
	})
}

func isValidLogFormat(format string) bool {
	for _, f := range ValidLogFormats {
		if f == format {
			return true
		}
	}
	return false
}
