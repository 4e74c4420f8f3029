package engine

import "github.com/danieljhkim/escala/internal/roster"

// ViewRequest represents a request to show one operation's month.
type ViewRequest struct {
	Operation roster.Operation
	Month     roster.Month
}

// AssignRequest represents a request to place a person in one slot.
type AssignRequest struct {
	Operation roster.Operation
	Month     roster.Month

	// Day is the day of the month (1-based)
	Day int

	// Slot is the slot index within the row (0-based)
	Slot int

	// Person is the display name. Empty clears the slot.
	Person string

	// AllowUnknown accepts a name that is not in the personnel directory
	AllowUnknown bool
}

// ClearRequest represents a request to empty one slot.
type ClearRequest struct {
	Operation roster.Operation
	Month     roster.Month
	Day       int
	Slot      int
}

// SaveRequest represents a request to persist pending drafts.
type SaveRequest struct {
	Month roster.Month

	// Operation limits the save to one operation; empty saves all
	Operation roster.Operation

	// Force saves even if the confirmed roster changed since the draft started
	Force bool

	// DryRun returns the save plans without writing
	DryRun bool
}

// DiscardRequest represents a request to drop pending drafts.
type DiscardRequest struct {
	Month roster.Month

	// Operation limits the discard to one operation; empty discards all
	Operation roster.Operation
}

// CandidatesRequest represents a request for the selection list of a slot.
type CandidatesRequest struct {
	Operation roster.Operation
	Month     roster.Month
	Day       int
}

// ConflictsRequest represents a request to scan a month for conflicts.
type ConflictsRequest struct {
	Month roster.Month

	// IncludeDrafts scans the rosters with pending edits applied
	IncludeDrafts bool
}

// SummaryRequest represents a request for month summaries.
type SummaryRequest struct {
	Month roster.Month

	// Operation limits the summary to one operation; empty includes all
	Operation roster.Operation

	// IncludeDrafts summarizes the rosters with pending edits applied
	IncludeDrafts bool

	// IncludeEmptyGroups keeps groups without entries in the group summary
	IncludeEmptyGroups bool
}
