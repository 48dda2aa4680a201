package dgpub

import (
	"context"
	"log/slog"

	"github.com/aretw0/dgpub/internal/platform"
	"github.com/aretw0/dgpub/pkg/config"
	"github.com/aretw0/dgpub/pkg/core"
)

// --- Types ---

// Report summarizes a publish run.
type Report = core.Report

// Publisher bundles the service with its adapters; it can also watch.
type Publisher = platform.Publisher

// --- Configuration ---

// Option defines a functional option for configuring the publisher.
type Option = platform.Option

// WithConfig applies a loaded configuration file.
func WithConfig(cfg config.Config) Option {
	return platform.WithConfig(cfg)
}

// WithSource sets the directory holding the source notes (default "./origin").
func WithSource(path string) Option {
	return platform.WithSource(path)
}

// WithDist sets the publish root (default "./dist").
func WithDist(path string) Option {
	return platform.WithDist(path)
}

// WithIndexFile sets the file written in every published directory (default "index.md").
func WithIndexFile(name string) Option {
	return platform.WithIndexFile(name)
}

// WithInclude restricts source files to those matching the glob patterns.
func WithInclude(patterns ...string) Option {
	return platform.WithInclude(patterns...)
}

// WithExclude drops source files matching the glob patterns.
func WithExclude(patterns ...string) Option {
	return platform.WithExclude(patterns...)
}

// WithLegacyJoin drops delimiters found inside note bodies, as older releases did.
func WithLegacyJoin(enabled bool) Option {
	return platform.WithLegacyJoin(enabled)
}

// WithResync schedules full passes while watching, in cron syntax (e.g. "@every 10m").
func WithResync(schedule string) Option {
	return platform.WithResync(schedule)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithDryRun decides without touching the publish root.
func WithDryRun(enabled bool) Option {
	return platform.WithDryRun(enabled)
}

// WithSourceAdapter allows injecting a custom source of notes.
func WithSourceAdapter(src core.Source) Option {
	return platform.WithSourceAdapter(src)
}

// WithDestinationAdapter allows injecting a custom published tree.
func WithDestinationAdapter(dst core.Destination) Option {
	return platform.WithDestinationAdapter(dst)
}

// --- Factory ---

// New creates the publishing service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// Open assembles a Publisher, which exposes its adapters and watch mode.
func Open(opts ...Option) (*Publisher, error) {
	return platform.Assemble(opts...)
}

// --- Operations ---

// Run performs a single publish pass.
func Run(ctx context.Context, opts ...Option) (Report, error) {
	return platform.Run(ctx, opts...)
}
