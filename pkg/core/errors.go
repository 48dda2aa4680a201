package core

import "errors"

// Error kinds surfaced by the publishing pipeline.
// Every per-note failure wraps exactly one of them so the batch can log and continue.
var (
	ErrMalformedNote   = errors.New("malformed note")
	ErrMetadataParse   = errors.New("metadata parse failure")
	ErrDirectoryCreate = errors.New("directory create failure")
	ErrInvalidPath     = errors.New("destination path escapes publish root")
	ErrDestinationRead = errors.New("destination read failure")
	ErrWrite           = errors.New("write failure")
	ErrSourceRead      = errors.New("source read failure")
	ErrEntry           = errors.New("directory entry failure")

	// ErrSourceDir is the only fatal kind: the source directory itself cannot be listed.
	ErrSourceDir = errors.New("source directory unreadable")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrMalformedNote, "malformed_note"},
	{ErrMetadataParse, "metadata_parse"},
	{ErrDirectoryCreate, "directory_create"},
	{ErrInvalidPath, "invalid_path"},
	{ErrDestinationRead, "destination_read"},
	{ErrWrite, "write"},
	{ErrSourceRead, "source_read"},
	{ErrEntry, "entry"},
	{ErrSourceDir, "source_dir"},
}

// KindOf returns a stable name for the error kind wrapped by err, for log fields.
// Unknown errors are reported as "unknown"; nil as "".
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}
