package core

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Metadata is the normalized front matter of a note.
type Metadata struct {
	ID        string
	Aliases   string
	Title     string
	Tags      []string
	CreatedAt string
	UpdatedAt string
	DG        bool
	Published bool
	// DGPath is nil when dg_path is absent. An empty string is still "present".
	DGPath *string
}

// Eligible reports whether the note may be published at all.
func (m Metadata) Eligible() bool {
	return m.DG && m.Published && m.DGPath != nil
}

// frontMatter mirrors the on-disk schema. A is the shape of "aliases",
// which older notes store as a single string and newer ones as a list.
type frontMatter[A any] struct {
	ID        *string  `yaml:"id"`
	Aliases   *A       `yaml:"aliases"`
	Title     *string  `yaml:"title"`
	Tags      []string `yaml:"tags"`
	CreatedAt *string  `yaml:"createdAt"`
	UpdatedAt *string  `yaml:"updatedAt"`
	DG        *bool    `yaml:"dg"`
	Published *bool    `yaml:"published"`
	DGPath    *string  `yaml:"dg_path"`
}

func (f frontMatter[A]) normalize(aliases string) Metadata {
	return Metadata{
		ID:        deref(f.ID),
		Aliases:   aliases,
		Title:     deref(f.Title),
		Tags:      f.Tags,
		CreatedAt: deref(f.CreatedAt),
		UpdatedAt: deref(f.UpdatedAt),
		DG:        f.DG != nil && *f.DG,
		Published: f.Published != nil && *f.Published,
		DGPath:    f.DGPath,
	}
}

// ParseMetadata decodes a raw front-matter block.
//
// The single-string shape of "aliases" is tried first; only when that decode
// fails is the list shape attempted. Whatever the source shape, the returned
// Metadata carries aliases as one string: the first list element, or "".
func ParseMetadata(block string) (Metadata, error) {
	var single frontMatter[string]
	if err := yaml.Unmarshal([]byte(block), &single); err == nil {
		return single.normalize(deref(single.Aliases)), nil
	}

	var list frontMatter[[]string]
	if err := yaml.Unmarshal([]byte(block), &list); err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", ErrMetadataParse, err)
	}

	aliases := ""
	if list.Aliases != nil && len(*list.Aliases) > 0 {
		aliases = (*list.Aliases)[0]
	}
	return list.normalize(aliases), nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
