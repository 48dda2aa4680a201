package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/dgpub/pkg/core"
)

// SourceConfig holds the configuration for the notes directory.
type SourceConfig struct {
	Path    string
	Include []string // Glob patterns a file name must match. Empty means every file.
	Exclude []string // Glob patterns that drop a file even when included.
	Logger  *slog.Logger
}

// Source implements core.Source over a flat directory.
type Source struct {
	config SourceConfig

	mu          sync.RWMutex
	lastListed  int
	lastSkipped int
}

// NewSource creates a Source. Invalid glob patterns are rejected up front so
// matching never fails later.
func NewSource(config SourceConfig) (*Source, error) {
	for _, p := range append(append([]string{}, config.Include...), config.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{config: config}, nil
}

// Path returns the source directory.
func (s *Source) Path() string {
	return s.config.Path
}

// Match reports whether a file name passes the include and exclude patterns.
func (s *Source) Match(name string) bool {
	if len(s.config.Include) > 0 {
		included := false
		for _, p := range s.config.Include {
			if ok, _ := doublestar.Match(p, name); ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, p := range s.config.Exclude {
		if ok, _ := doublestar.Match(p, name); ok {
			return false
		}
	}
	return true
}

// List returns the regular files of the source directory.
//
// Strategy:
//  1. Open the directory. Failing here is fatal for the run.
//  2. Read entries. A partial read keeps what was read.
//  3. Skip names that are not valid UTF-8, entries that cannot be stat'ed
//     (symlinks are followed), anything but regular files, and names
//     filtered out by the glob patterns.
func (s *Source) List(ctx context.Context) ([]core.Entry, error) {
	dir, err := os.Open(s.config.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSourceDir, err)
	}
	defer dir.Close()

	dirEntries, err := dir.ReadDir(-1)
	if err != nil {
		if len(dirEntries) == 0 {
			return nil, fmt.Errorf("%w: %w", core.ErrSourceDir, err)
		}
		s.config.Logger.Warn("source listing incomplete", "path", s.config.Path, "kind", core.KindOf(core.ErrEntry), "error", err)
	}

	entries := make([]core.Entry, 0, len(dirEntries))
	skipped := 0
	for _, d := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := d.Name()
		if !utf8.ValidString(name) {
			s.config.Logger.Debug("skipping entry with undisplayable name", "name", fmt.Sprintf("%q", name))
			skipped++
			continue
		}

		info, err := os.Stat(filepath.Join(s.config.Path, name))
		if err != nil {
			s.config.Logger.Debug("skipping unreadable entry", "file", name, "kind", core.KindOf(core.ErrEntry), "error", err)
			skipped++
			continue
		}
		if !info.Mode().IsRegular() || !s.Match(name) {
			skipped++
			continue
		}

		entries = append(entries, core.Entry{Name: name})
	}

	s.mu.Lock()
	s.lastListed = len(entries)
	s.lastSkipped = skipped
	s.mu.Unlock()

	return entries, nil
}

// Read returns the text of a source file. The file must be valid UTF-8.
func (s *Source) Read(ctx context.Context, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.config.Path, name))
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrSourceRead, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", core.ErrSourceRead, name)
	}
	return string(data), nil
}

var _ core.Source = (*Source)(nil)
