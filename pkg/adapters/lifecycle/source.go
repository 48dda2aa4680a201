// Package lifecycle exposes source directory changes as a lifecycle.Source.
package lifecycle

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/dgpub/pkg/core"
)

// changeSource feeds publish triggers to a single consumer. A pass always
// rescans the whole source directory, so changes that arrive while the
// consumer is busy are folded into the one already waiting.
type changeSource struct {
	changes <-chan core.Event
	out     chan lifecycle.Event
	logger  *slog.Logger
}

// NewSource wraps the settled change events of a watcher.
// The returned source closes its channel when changes is closed or ctx ends.
func NewSource(changes <-chan core.Event, logger *slog.Logger) lifecycle.Source {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &changeSource{
		changes: changes,
		out:     make(chan lifecycle.Event),
		logger:  logger,
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) Start(ctx context.Context) error {
	// 1. Reads settled changes from the watcher
	// 2. Keeps at most one pending trigger, newer changes replace it
	// 3. Hands the trigger over once the publisher is ready for another pass
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		var pending *core.Event
		folded := 0
		changes := s.changes
		for {
			// A nil channel blocks, which disables the send case when idle.
			var out chan lifecycle.Event
			var next lifecycle.Event
			if pending != nil {
				out = s.out
				next = *pending
			}
			if changes == nil && pending == nil {
				return nil
			}

			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-changes:
				if !ok {
					changes = nil
					continue
				}
				if pending != nil {
					folded++
				}
				pending = &e
			case out <- next:
				s.logger.Debug("change forwarded", "event", next.String(), "folded", folded)
				pending = nil
				folded = 0
			}
		}
	})
	return nil
}
