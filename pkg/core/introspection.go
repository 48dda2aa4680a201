package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	DryRun          bool       `json:"dry_run"`
	LegacyJoin      bool       `json:"legacy_join"`
	SourceType      string     `json:"source_type"`
	DestinationType string     `json:"destination_type"`
	Runs            int        `json:"runs"`
	LastRun         *time.Time `json:"last_run,omitempty"`
	LastUpdated     int        `json:"last_updated"`
	LastFailed      int        `json:"last_failed"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ServiceState{
		DryRun:          s.dryRun,
		LegacyJoin:      s.legacyJoin,
		SourceType:      componentType(s.src, "source"),
		DestinationType: componentType(s.dst, "destination"),
		Runs:            s.runs,
		LastRun:         s.lastRun,
	}
	if s.lastReport != nil {
		state.LastUpdated = s.lastReport.Updated
		state.LastFailed = s.lastReport.Failed
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

func componentType(v any, fallback string) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return fallback
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
