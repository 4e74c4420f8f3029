package engine

import (
	"time"

	"github.com/danieljhkim/escala/internal/conflict"
	"github.com/danieljhkim/escala/internal/limiter"
	"github.com/danieljhkim/escala/internal/planner"
	"github.com/danieljhkim/escala/internal/reference"
	"github.com/danieljhkim/escala/internal/report"
	"github.com/danieljhkim/escala/internal/roster"
)

// ViewResult represents one operation's month as the user sees it.
type ViewResult struct {
	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`

	// Confirmed is the saved roster
	Confirmed *roster.MonthRoster `json:"confirmed"`

	// Merged is the saved roster with pending edits applied
	Merged *roster.MonthRoster `json:"merged"`

	// Pending lists the days with unsaved edits
	Pending []int `json:"pending"`

	// DraftID identifies the pending draft (empty if none)
	DraftID string `json:"draftId,omitempty"`

	// Stale is true when the saved roster changed after the draft started
	Stale bool `json:"stale"`
}

// AssignResult represents the outcome of a slot edit.
type AssignResult struct {
	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`
	Day       int              `json:"day"`
	Slot      int              `json:"slot"`

	// Person is the new occupant (empty when cleared)
	Person string `json:"person"`

	// Previous is the occupant that was replaced (empty if none)
	Previous string `json:"previous"`

	// Row is the day's row after the edit
	Row roster.Row `json:"row"`

	// Decision is the limiter outcome; zero for clears
	Decision limiter.Decision `json:"decision"`

	// Changed is false when the edit was a no-op
	Changed bool `json:"changed"`

	DraftID string `json:"draftId,omitempty"`
}

// SavedMonth describes one persisted roster.
type SavedMonth struct {
	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`
	Days      []int            `json:"days"`
	Filled    int              `json:"filled"`
	SavedAt   time.Time        `json:"savedAt"`
}

// SavedMonthInfo describes one saved roster in a listing.
type SavedMonthInfo struct {
	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`
	Filled    int              `json:"filled"`
	Capacity  int              `json:"capacity"`

	// Pending is set when the month also has unsaved edits
	Pending bool `json:"pending"`
}

// MonthsResult lists the saved rosters.
type MonthsResult struct {
	Months []SavedMonthInfo `json:"months"`
}

// SaveResult represents the outcome of a save.
type SaveResult struct {
	Saved []SavedMonth `json:"saved"`

	// Plans describes the day-by-day changes of every draft considered
	Plans []*planner.SavePlan `json:"plans"`

	// DryRun is set when nothing was written
	DryRun bool `json:"dryRun"`
}

// DiscardResult represents the outcome of a discard.
type DiscardResult struct {
	Discarded []roster.Operation `json:"discarded"`
}

// Candidate is one entry in a slot selection list.
type Candidate struct {
	Name  string       `json:"name"`
	Rank  roster.Rank  `json:"rank"`
	Group roster.Group `json:"group"`

	// Count is the person's appearances this month across capped operations
	Count int `json:"count"`

	LimitReached bool `json:"limitReached"`
	SameDay      bool `json:"sameDay"`

	// Selected is true when the person already holds a slot of this row
	Selected bool `json:"selected"`

	// Blocked is true when the person cannot be chosen
	Blocked bool `json:"blocked"`
}

// CandidateGroup is the candidates of one directory group.
type CandidateGroup struct {
	Group      roster.Group `json:"group"`
	Candidates []Candidate  `json:"candidates"`
}

// CandidatesResult represents the selection list for one day's row.
type CandidatesResult struct {
	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`
	Day       int              `json:"day"`
	Row       roster.Row       `json:"row"`
	Groups    []CandidateGroup `json:"groups"`
}

// ConflictsResult represents a completed conflict scan.
type ConflictsResult struct {
	Report *conflict.Report `json:"report"`

	// IncludesDrafts is true when pending edits were scanned
	IncludesDrafts bool `json:"includesDrafts"`
}

// SummaryResult represents the month summaries.
type SummaryResult struct {
	Month     roster.Month                `json:"month"`
	People    []report.PersonTally        `json:"people"`
	Groups    []report.GroupTally         `json:"groups"`
	Occupancy []report.OperationOccupancy `json:"occupancy"`

	// DirectoryLoaded is false when groups and ranks could not be resolved
	DirectoryLoaded bool `json:"directoryLoaded"`
}

// ReferenceCheckResult represents a validation of the reference file.
type ReferenceCheckResult struct {
	Path   string            `json:"path"`
	People int               `json:"people"`
	Months []roster.Month    `json:"months"`
	Issues []reference.Issue `json:"issues"`
}
