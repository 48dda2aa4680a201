package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Delimiter separates the front matter from the body. It is matched anywhere
// in the text, not only at line starts.
const Delimiter = "---"

// zettelPrefixLen is the length of the "YYYYMMDDHHMM " prefix carried by
// zettelkasten-style filenames, e.g. "202301011200 My Note.md".
const zettelPrefixLen = len("xxxxxxxxxxxxx")

// Note is one source document under consideration for publishing.
type Note struct {
	Metadata Metadata
	// Content is the body found after the second delimiter, untrimmed.
	Content string
	// Filename is the source base name. It identifies the note in logs only.
	Filename string
}

// DisplayName strips the zettelkasten timestamp prefix from the filename.
// Short names, and names whose prefix would end inside a multibyte
// character, are returned unchanged.
func (n Note) DisplayName() string {
	if len(n.Filename) <= zettelPrefixLen || !utf8.RuneStart(n.Filename[zettelPrefixLen]) {
		return n.Filename
	}
	return n.Filename[zettelPrefixLen:]
}

type loadOptions struct {
	legacyJoin bool
}

// LoadOption tunes how ParseNote assembles a Note.
type LoadOption func(*loadOptions)

// WithLegacyJoin rejoins body segments without a separator, dropping every
// delimiter found in the body. Trees published by older releases were built
// this way; enable it to keep them byte-for-byte stable.
func WithLegacyJoin() LoadOption {
	return func(o *loadOptions) {
		o.legacyJoin = true
	}
}

// ParseNote splits raw file text into front matter and body and builds a Note.
//
// Text before the first delimiter is discarded. The segment between the first
// and second delimiter is the front matter; everything after the second one is
// the body.
func ParseNote(raw, filename string, opts ...LoadOption) (Note, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	parts := strings.Split(raw, Delimiter)
	if len(parts) < 3 {
		return Note{}, fmt.Errorf("%w: %s: found %d of 2 %q delimiters", ErrMalformedNote, filename, len(parts)-1, Delimiter)
	}

	meta, err := ParseMetadata(parts[1])
	if err != nil {
		return Note{}, fmt.Errorf("%s: %w", filename, err)
	}

	sep := Delimiter
	if o.legacyJoin {
		sep = ""
	}

	return Note{
		Metadata: meta,
		Content:  strings.Join(parts[2:], sep),
		Filename: filename,
	}, nil
}
