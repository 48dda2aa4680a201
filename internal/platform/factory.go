package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/aretw0/dgpub/pkg/adapters/fs"
	lcadapter "github.com/aretw0/dgpub/pkg/adapters/lifecycle"
	"github.com/aretw0/dgpub/pkg/core"
)

// ErrWatchUnsupported is returned by Watch when a custom source adapter is used.
var ErrWatchUnsupported = errors.New("watching requires the filesystem source")

// Publisher bundles the service with the adapters it was assembled from.
type Publisher struct {
	Service     *core.Service
	Source      core.Source
	Destination core.Destination
	logger      *slog.Logger
	resync      string
}

// Assemble wires adapters and the domain service from options.
func Assemble(opts ...Option) (*Publisher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	src := o.source
	if src == nil {
		fsSource, err := fs.NewSource(fs.SourceConfig{
			Path:    o.config.Source,
			Include: o.config.Include,
			Exclude: o.config.Exclude,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		src = fsSource
	}

	dst := o.destination
	if dst == nil {
		dst = fs.NewDestination(fs.DestinationConfig{
			Path:      o.config.Dist,
			IndexFile: o.config.IndexFile,
		})
	}

	service := core.NewService(src, dst,
		core.WithLogger(logger),
		core.WithDryRun(o.dryRun),
		core.WithLegacyBodyJoin(o.config.LegacyJoin),
	)

	return &Publisher{
		Service:     service,
		Source:      src,
		Destination: dst,
		logger:      logger,
		resync:      o.config.Resync,
	}, nil
}

// New creates the publishing service.
func New(opts ...Option) (*core.Service, error) {
	p, err := Assemble(opts...)
	if err != nil {
		return nil, err
	}
	return p.Service, nil
}

// Run assembles a publisher and performs a single pass.
func Run(ctx context.Context, opts ...Option) (core.Report, error) {
	svc, err := New(opts...)
	if err != nil {
		return core.Report{}, err
	}
	return svc.Run(ctx)
}

// Watch runs one pass immediately and another one after every settled change
// of the source directory, until ctx is cancelled. Passes never overlap.
// onReport, if not nil, receives the report of every pass.
func (p *Publisher) Watch(ctx context.Context, onReport func(core.Report), opts ...fs.WatchOption) error {
	src, ok := p.Source.(*fs.Source)
	if !ok {
		return ErrWatchUnsupported
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := fs.NewWatcher(src, append([]fs.WatchOption{fs.WithWatchLogger(p.logger)}, opts...)...)
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}
	source := lcadapter.NewSource(changes, p.logger)
	if err := source.Start(ctx); err != nil {
		return err
	}

	// Scheduled passes catch changes the notifications missed. Ticks that
	// arrive while a pass is pending are dropped.
	resync := make(chan struct{}, 1)
	if p.resync != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(p.resync, func() {
			select {
			case resync <- struct{}{}:
			default:
			}
		}); err != nil {
			return fmt.Errorf("invalid resync schedule %q: %w", p.resync, err)
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	pass := func() error {
		report, err := p.Service.Run(ctx)
		if err != nil {
			return err
		}
		if onReport != nil {
			onReport(report)
		}
		return nil
	}

	if err := pass(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-source.Events():
			if !ok {
				return nil
			}
			p.logger.Debug("republishing", "trigger", e.String())
			p.passOrLog(ctx, pass)
		case <-resync:
			p.logger.Debug("republishing", "trigger", "resync")
			p.passOrLog(ctx, pass)
		}
	}
}

func (p *Publisher) passOrLog(ctx context.Context, pass func() error) {
	if err := pass(); err != nil && ctx.Err() == nil {
		p.logger.Error("publish pass failed", "kind", core.KindOf(err), "error", err)
	}
}
