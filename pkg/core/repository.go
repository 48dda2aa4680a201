package core

import "context"

// Entry is a source file selected for publishing.
type Entry struct {
	// Name is the base name of the file inside the source directory.
	Name string
}

// Source enumerates and reads the notes of a flat source directory.
// Adhering to this interface keeps the publishing logic independent of where
// notes live.
type Source interface {
	// List returns the regular files of the source directory, non-recursively.
	// Entries that cannot be inspected are skipped; only a failure to read the
	// directory itself is returned (wrapping ErrSourceDir).
	List(ctx context.Context) ([]Entry, error)

	// Read returns the full text of the named entry.
	Read(ctx context.Context, name string) (string, error)
}

// Destination is the published tree. Every note owns one directory under the
// publish root, addressed by its dg_path, holding a single index file.
type Destination interface {
	// Resolve returns the index file path for dgPath without touching the disk.
	Resolve(dgPath string) (string, error)

	// Ensure creates the directory for dgPath, recursively, if missing.
	Ensure(ctx context.Context, dgPath string) error

	// Read returns the currently published content for dgPath.
	// A missing index file is reported with an error satisfying errors.Is(err, fs.ErrNotExist).
	Read(ctx context.Context, dgPath string) (string, error)

	// Write replaces the published content for dgPath in full.
	Write(ctx context.Context, dgPath string, content string) error
}
