package core

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Service decides, per note, whether it should be published and writes it when so.
type Service struct {
	src    Source
	dst    Destination
	logger *slog.Logger

	dryRun     bool
	legacyJoin bool

	mu         sync.RWMutex
	runs       int
	lastRun    *time.Time
	lastReport *Report
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for per-note diagnostics.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDryRun makes the service decide without creating directories or writing files.
func WithDryRun(dryRun bool) ServiceOption {
	return func(s *Service) {
		s.dryRun = dryRun
	}
}

// WithLegacyBodyJoin makes the service load notes with WithLegacyJoin.
func WithLegacyBodyJoin(legacy bool) ServiceOption {
	return func(s *Service) {
		s.legacyJoin = legacy
	}
}

// NewService creates a new Service reading from src and publishing into dst.
func NewService(src Source, dst Destination, opts ...ServiceOption) *Service {
	s := &Service{
		src:    src,
		dst:    dst,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load parses raw file text into a Note using the service's body join policy.
func (s *Service) Load(raw, filename string) (Note, error) {
	if s.legacyJoin {
		return ParseNote(raw, filename, WithLegacyJoin())
	}
	return ParseNote(raw, filename)
}

// Check runs the publish decision for a single note without writing it.
//
// Workflow:
//  1. dg must be true and dg_path present, otherwise nothing happens.
//  2. The destination directory is created if missing (skipped in dry-run).
//  3. The current index file is compared with the note body, both trimmed.
//  4. If they differ and the note is published, the decision needs a write.
func (s *Service) Check(ctx context.Context, note Note) (Decision, error) {
	d := Decision{Outcome: OutcomeIneligible}

	meta := note.Metadata
	if !meta.DG || meta.DGPath == nil {
		return d, nil
	}
	d.DGPath = *meta.DGPath

	dest, err := s.dst.Resolve(d.DGPath)
	if err != nil {
		return d, err
	}
	d.Destination = dest

	if !s.dryRun {
		if err := s.dst.Ensure(ctx, d.DGPath); err != nil {
			return d, err
		}
	}

	changed, previous := s.hasDiff(ctx, note, d.DGPath, dest)
	if !changed {
		d.Outcome = OutcomeUnchanged
		return d, nil
	}

	// dg is checked again on purpose: the write guard stands on its own.
	if !meta.DG || !meta.Published {
		d.Outcome = OutcomeUnpublished
		return d, nil
	}

	d.Outcome = OutcomeWouldUpdate
	d.NeedsWrite = true
	d.Previous = previous
	d.Content = strings.TrimSpace(note.Content)
	return d, nil
}

// Publish is Check followed by the write when the decision asks for one.
// In dry-run mode it stops at the decision and reports OutcomeWouldUpdate.
//
// The returned error is also stored in Result.Err.
func (s *Service) Publish(ctx context.Context, note Note) (Result, error) {
	d, err := s.Check(ctx, note)
	res := Result{
		Filename:    note.Filename,
		DisplayName: note.DisplayName(),
		Destination: d.Destination,
		Outcome:     d.Outcome,
		Previous:    d.Previous,
		Content:     d.Content,
	}
	if err != nil {
		return s.fail(res, err)
	}
	if !d.NeedsWrite || s.dryRun {
		return res, nil
	}

	if err := s.dst.Write(ctx, d.DGPath, d.Content); err != nil {
		return s.fail(res, err)
	}

	s.logger.Debug("note published", "file", note.Filename, "dest", d.Destination)
	res.Outcome = OutcomeUpdated
	return res, nil
}

// hasDiff reports whether the published content differs from the note body.
// A missing index file always differs. Any other read failure is treated as
// "no change" so an unreadable destination is never overwritten blindly.
func (s *Service) hasDiff(ctx context.Context, note Note, dgPath, dest string) (bool, string) {
	existing, err := s.dst.Read(ctx, dgPath)
	switch {
	case err == nil:
		return strings.TrimSpace(existing) != strings.TrimSpace(note.Content), existing
	case errors.Is(err, fs.ErrNotExist):
		return true, ""
	default:
		s.logger.Warn("destination unreadable, leaving it untouched",
			"file", note.Filename,
			"dest", dest,
			"kind", KindOf(err),
			"error", err,
		)
		return false, ""
	}
}

func (s *Service) fail(res Result, err error) (Result, error) {
	res.Outcome = OutcomeFailed
	res.Err = err
	res.Error = err.Error()
	res.Kind = KindOf(err)
	return res, err
}

// Run publishes every note of the source directory, one file at a time.
//
// Per-note failures are logged and recorded in the Report; the run goes on.
// Only a failure to list the source directory or a cancelled context aborts it.
func (s *Service) Run(ctx context.Context) (Report, error) {
	var report Report

	entries, err := s.src.List(ctx)
	if err != nil {
		return report, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := s.process(ctx, entry)
		if res.Err != nil {
			s.logger.Error("note skipped",
				"file", res.Filename,
				"kind", res.Kind,
				"error", res.Err,
			)
		}
		report.add(res)
	}

	s.record(report)
	s.logger.Info("publish run finished",
		"scanned", report.Scanned,
		"updated", report.Updated,
		"would_update", report.WouldUpdate,
		"failed", report.Failed,
		"dry_run", s.dryRun,
	)
	return report, nil
}

func (s *Service) process(ctx context.Context, entry Entry) Result {
	res := Result{Filename: entry.Name}

	raw, err := s.src.Read(ctx, entry.Name)
	if err != nil {
		res, _ = s.fail(res, err)
		return res
	}

	note, err := s.Load(raw, entry.Name)
	if err != nil {
		res, _ = s.fail(res, err)
		return res
	}

	res, _ = s.Publish(ctx, note)
	return res
}

func (s *Service) record(report Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.runs++
	s.lastRun = &now
	s.lastReport = &report
}
