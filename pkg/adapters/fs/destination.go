package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aretw0/dgpub/pkg/core"
)

// DefaultIndexFile is the name of the file written in every published directory.
const DefaultIndexFile = "index.md"

// DestinationConfig holds the configuration for the published tree.
type DestinationConfig struct {
	Path      string // Publish root, e.g. "./dist".
	IndexFile string // Defaults to DefaultIndexFile.
}

// Destination implements core.Destination on the local filesystem.
// Each dg_path maps to <Path>/<dg_path>/<IndexFile>.
type Destination struct {
	config DestinationConfig

	mu     sync.RWMutex
	writes int
}

// NewDestination creates a Destination rooted at config.Path.
func NewDestination(config DestinationConfig) *Destination {
	if config.IndexFile == "" {
		config.IndexFile = DefaultIndexFile
	}
	return &Destination{config: config}
}

// Path returns the publish root.
func (d *Destination) Path() string {
	return d.config.Path
}

// dir maps a dg_path to its directory, refusing paths that climb out of the root.
func (d *Destination) dir(dgPath string) (string, error) {
	dir := filepath.Join(d.config.Path, filepath.FromSlash(dgPath))
	rel, err := filepath.Rel(d.config.Path, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidPath, dgPath)
	}
	return dir, nil
}

// Resolve returns the index file for dgPath.
func (d *Destination) Resolve(dgPath string) (string, error) {
	dir, err := d.dir(dgPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, d.config.IndexFile), nil
}

// Ensure creates the directory for dgPath if it does not exist.
func (d *Destination) Ensure(ctx context.Context, dgPath string) error {
	dir, err := d.dir(dgPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: could not create a directory at %q: %w", core.ErrDirectoryCreate, dir, err)
	}
	return nil
}

// Read returns the published content for dgPath. Content that is not valid
// UTF-8 is reported as a read failure.
func (d *Destination) Read(ctx context.Context, dgPath string) (string, error) {
	path, err := d.Resolve(dgPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrDestinationRead, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", core.ErrDestinationRead, path)
	}
	return string(data), nil
}

// Write replaces the index file for dgPath atomically.
// The directory must already exist (see Ensure).
func (d *Destination) Write(ctx context.Context, dgPath string, content string) error {
	path, err := d.Resolve(dgPath)
	if err != nil {
		return err
	}
	if err := replaceFile(path, content, 0644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrWrite, err)
	}

	d.mu.Lock()
	d.writes++
	d.mu.Unlock()
	return nil
}

var _ core.Destination = (*Destination)(nil)
