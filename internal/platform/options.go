package platform

import (
	"log/slog"

	"github.com/aretw0/dgpub/pkg/config"
	"github.com/aretw0/dgpub/pkg/core"
)

// options holds the internal configuration for the publisher.
type options struct {
	config      config.Config
	logger      *slog.Logger
	dryRun      bool
	source      core.Source
	destination core.Destination
}

// Option defines a functional option for configuring the publisher.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: config.Default(),
	}
}

// WithConfig replaces the whole configuration. Options applied after it
// still override single fields.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithSource sets the directory holding the source notes.
func WithSource(path string) Option {
	return func(o *options) {
		o.config.Source = path
	}
}

// WithDist sets the publish root.
func WithDist(path string) Option {
	return func(o *options) {
		o.config.Dist = path
	}
}

// WithIndexFile sets the file name written in every published directory.
func WithIndexFile(name string) Option {
	return func(o *options) {
		o.config.IndexFile = name
	}
}

// WithInclude restricts the source files to those matching one of the glob patterns.
func WithInclude(patterns ...string) Option {
	return func(o *options) {
		o.config.Include = patterns
	}
}

// WithExclude drops source files matching any of the glob patterns.
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.config.Exclude = patterns
	}
}

// WithLegacyJoin drops delimiters found inside note bodies, as older releases did.
func WithLegacyJoin(enabled bool) Option {
	return func(o *options) {
		o.config.LegacyJoin = enabled
	}
}

// WithResync schedules full passes while watching (cron syntax, e.g. "@every 10m").
func WithResync(schedule string) Option {
	return func(o *options) {
		o.config.Resync = schedule
	}
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDryRun decides without creating directories or writing files.
func WithDryRun(enabled bool) Option {
	return func(o *options) {
		o.dryRun = enabled
	}
}

// WithSourceAdapter injects a custom core.Source (e.g. a fake in tests).
// If provided, the filesystem source is skipped and watching is unavailable.
func WithSourceAdapter(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithDestinationAdapter injects a custom core.Destination.
func WithDestinationAdapter(dst core.Destination) Option {
	return func(o *options) {
		o.destination = dst
	}
}
