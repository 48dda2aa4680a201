package fs

import (
	"github.com/aretw0/introspection"
)

// SourceState exposes internal state for observability.
type SourceState struct {
	Path        string   `json:"path"`
	Include     []string `json:"include,omitempty"`
	Exclude     []string `json:"exclude,omitempty"`
	LastListed  int      `json:"last_listed"`
	LastSkipped int      `json:"last_skipped"`
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SourceState{
		Path:        s.config.Path,
		Include:     s.config.Include,
		Exclude:     s.config.Exclude,
		LastListed:  s.lastListed,
		LastSkipped: s.lastSkipped,
	}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "fs-source"
}

// DestinationState exposes internal state for observability.
type DestinationState struct {
	Path      string `json:"path"`
	IndexFile string `json:"index_file"`
	Writes    int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (d *Destination) State() any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return DestinationState{
		Path:      d.config.Path,
		IndexFile: d.config.IndexFile,
		Writes:    d.writes,
	}
}

// ComponentType implements introspection.Component.
func (d *Destination) ComponentType() string {
	return "fs-destination"
}

var _ introspection.Introspectable = (*Source)(nil)
var _ introspection.Component = (*Source)(nil)
var _ introspection.Introspectable = (*Destination)(nil)
var _ introspection.Component = (*Destination)(nil)
