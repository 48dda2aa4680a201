package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/dgpub/pkg/core"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher observes the source directory and emits one event per settled burst.
type Watcher struct {
	source   *Source
	debounce time.Duration
	logger   *slog.Logger

	mu     sync.RWMutex
	active bool
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the logger for watcher diagnostics.
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a Watcher for the given source.
func NewWatcher(source *Source, opts ...WatchOption) *Watcher {
	w := &Watcher{
		source:   source,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Active reports whether the watch loop is running.
func (w *Watcher) Active() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

// Watch starts observing the source directory. The returned channel is closed
// when ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.source.Path()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.source.Path(), err)
	}

	events := make(chan core.Event)
	w.setActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer w.setActive(false)
		defer watcher.Close()
		return w.loop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("watcher stopped", "error", err)
	}))

	return events, nil
}

// loop debounces filesystem events: every relevant event restarts the timer
// and only the last one of a burst is delivered.
func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- core.Event) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending core.Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			e, relevant := w.translate(event)
			if !relevant {
				continue
			}
			w.logger.Debug("source changed", "event", e.String())

			pending = e
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			select {
			case out <- pending:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}

// translate maps an fsnotify event to a core.Event, dropping events for
// files the source would not publish and pure permission changes.
func (w *Watcher) translate(event fsnotify.Event) (core.Event, bool) {
	name := filepath.Base(event.Name)
	if !w.source.Match(name) {
		return core.Event{}, false
	}

	var t core.EventType
	switch {
	case event.Has(fsnotify.Create):
		t = core.EventCreate
	case event.Has(fsnotify.Write):
		t = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{Type: t, Name: name, Timestamp: time.Now().Unix()}, true
}
