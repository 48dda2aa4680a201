// Package core holds the publishing domain: note parsing and the publish decision.
package core

import "fmt"

// Outcome is what happened to a single note during a run.
type Outcome string

const (
	// OutcomeIneligible means dg is off or dg_path is absent; nothing was touched.
	OutcomeIneligible Outcome = "ineligible"
	// OutcomeUnchanged means the destination already holds the same content.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeUnpublished means the content differs but published is not set.
	OutcomeUnpublished Outcome = "unpublished"
	// OutcomeUpdated means the destination was written.
	OutcomeUpdated Outcome = "updated"
	// OutcomeWouldUpdate is reported instead of OutcomeUpdated in dry-run mode.
	OutcomeWouldUpdate Outcome = "would_update"
	// OutcomeFailed means the note could not be processed; see Result.Err.
	OutcomeFailed Outcome = "failed"
)

// Result describes the processing of one source file.
type Result struct {
	Filename    string  `json:"filename"`
	DisplayName string  `json:"display_name,omitempty"`
	Destination string  `json:"destination,omitempty"`
	Outcome     Outcome `json:"outcome"`
	Kind        string  `json:"kind,omitempty"`
	Err         error   `json:"-"`
	Error       string  `json:"error,omitempty"`

	// Previous and Content are only filled when a change was detected, so
	// callers can render what changed.
	Previous string `json:"-"`
	Content  string `json:"-"`
}

// Decision is the verdict of the publish gate for one note, before any write.
type Decision struct {
	Outcome     Outcome
	Destination string
	DGPath      string

	// NeedsWrite is set when the note is published and its trimmed body
	// differs from Previous. Content then holds what would be written.
	NeedsWrite bool
	Previous   string
	Content    string
}

// Report summarizes a batch run.
type Report struct {
	Scanned     int      `json:"scanned"`
	Updated     int      `json:"updated"`
	WouldUpdate int      `json:"would_update"`
	Unchanged   int      `json:"unchanged"`
	Unpublished int      `json:"unpublished"`
	Ineligible  int      `json:"ineligible"`
	Failed      int      `json:"failed"`
	Results     []Result `json:"results"`
}

func (r *Report) add(res Result) {
	r.Scanned++
	switch res.Outcome {
	case OutcomeUpdated:
		r.Updated++
	case OutcomeWouldUpdate:
		r.WouldUpdate++
	case OutcomeUnchanged:
		r.Unchanged++
	case OutcomeUnpublished:
		r.Unpublished++
	case OutcomeIneligible:
		r.Ineligible++
	case OutcomeFailed:
		r.Failed++
	}
	r.Results = append(r.Results, res)
}

// String renders the summary line printed at the end of a run.
func (r Report) String() string {
	return fmt.Sprintf("%d updated files", r.Updated)
}

// EventType represents the type of change observed in the source directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the source directory.
type Event struct {
	Type      EventType
	Name      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Name)
}
