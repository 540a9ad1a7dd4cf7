package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/scienceos/irkit/internal/ctxlog"
	"github.com/scienceos/irkit/internal/dialect"
	"github.com/scienceos/irkit/internal/manifest"
)

// Config holds everything an App needs to start.
type Config struct {
	// ManifestPaths lists extra dialect manifests (.hcl or .yaml) to load
	// alongside the compiled-in dialects. Manifest-only dialects carry no
	// Go hooks, so their kinds get the schema-driven defaults and no
	// custom verifiers.
	ManifestPaths []string

	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json, or auto
}

// App owns the configured logger and the populated dialect registry.
type App struct {
	logger   *slog.Logger
	registry *dialect.Registry
}

// New runs the dialect-loading sequence: every compiled-in dialect module
// registers itself, then every manifest named in cfg is loaded and
// registered. This is the single-threaded startup phase the registry's
// read-only contract depends on; once New returns, the registry must not
// change.
func New(errW io.Writer, cfg Config, extra ...dialect.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	reg := dialect.NewRegistry()
	modules := coreDialects
	if len(extra) > 0 {
		modules = append(append([]dialect.Module{}, coreDialects...), extra...)
	}
	for _, mod := range modules {
		if err := mod.Register(ctx, reg); err != nil {
			return nil, fmt.Errorf("dialect registration failed: %w", err)
		}
	}
	logger.Debug("Compiled-in dialects registered.", "count", len(modules))

	for _, path := range cfg.ManifestPaths {
		defs, err := manifest.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			entry, err := manifest.Build(ctx, def, nil)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", path, err)
			}
			if err := reg.RegisterDialect(ctx, entry); err != nil {
				return nil, fmt.Errorf("manifest %s: %w", path, err)
			}
		}
	}

	logger.Debug("Dialect registry populated.", "dialects", len(reg.IDs()))
	return &App{logger: logger, registry: reg}, nil
}

// Registry returns the populated, read-only dialect registry.
func (a *App) Registry() *dialect.Registry { return a.registry }

// Context returns a background context carrying the app logger.
func (a *App) Context() context.Context {
	return ctxlog.WithLogger(context.Background(), a.logger)
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger { return a.logger }
