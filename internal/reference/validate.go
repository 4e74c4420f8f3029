package reference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danieljhkim/escala/internal/roster"
)

// IssueKind classifies a reference-data problem.
type IssueKind string

const (
	IssueInconsistentGroup IssueKind = "inconsistent_group"
	IssueDuplicatePerson   IssueKind = "duplicate_person"
	IssueMissingName       IssueKind = "missing_name"
	IssueUnknownRank       IssueKind = "unknown_rank"
	IssueUnknownGroup      IssueKind = "unknown_group"
	IssueMalformedMonth    IssueKind = "malformed_month"
	IssueDayOutOfRange     IssueKind = "day_out_of_range"
	IssueNonRotatingGroup  IssueKind = "non_rotating_group"
)

// Issue is a single validation finding.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Subject, i.Message)
}

// Validate checks the directory and calendars for inconsistencies. The
// result is sorted by kind then subject, and is empty for clean data.
func (d *Data) Validate() []Issue {
	var issues []Issue
	add := func(kind IssueKind, subject, format string, args ...any) {
		issues = append(issues, Issue{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	groupsOf := make(map[string][]roster.Group)
	for i, p := range d.People {
		if p.Name == "" {
			add(IssueMissingName, fmt.Sprintf("personnel[%d]", i), "entry has no name")
			continue
		}
		if prev, seen := groupsOf[p.Name]; seen && containsGroup(prev, p.Group) {
			add(IssueDuplicatePerson, p.Name, "listed more than once in group %s", p.Group)
		}
		groupsOf[p.Name] = append(groupsOf[p.Name], p.Group)

		switch {
		case p.Rank == "":
			add(IssueUnknownRank, p.Name, "no rank given")
		case !p.Rank.Known():
			add(IssueUnknownRank, p.Name, "unknown rank %q", p.Rank)
		}
		if _, err := roster.ParseGroup(string(p.Group)); err != nil {
			add(IssueUnknownGroup, p.Name, "unknown group %q", p.Group)
		}
	}

	for name, groups := range groupsOf {
		distinct := distinctGroups(groups)
		if len(distinct) > 1 {
			add(IssueInconsistentGroup, name, "member of several groups (%s); treated as %s",
				joinGroups(distinct), roster.GroupOutros)
		}
	}

	for key, entries := range d.Calendars {
		month, err := roster.ParseMonth(key)
		if err != nil {
			add(IssueMalformedMonth, key, "calendar key is not YYYY-MM")
			continue
		}
		for day, name := range entries {
			subject := fmt.Sprintf("%s day %d", key, day)
			if !month.Contains(day) {
				add(IssueDayOutOfRange, subject, "%s has %d days", key, month.Days())
			}
			g, err := roster.ParseGroup(strings.ToUpper(strings.TrimSpace(name)))
			switch {
			case err != nil:
				add(IssueUnknownGroup, subject, "unknown group %q", name)
			case g == roster.GroupOutros || g == roster.GroupExpediente:
				add(IssueNonRotatingGroup, subject, "%s does not take ordinary duty", g)
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Kind != issues[j].Kind {
			return issues[i].Kind < issues[j].Kind
		}
		if issues[i].Subject != issues[j].Subject {
			return issues[i].Subject < issues[j].Subject
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}

func containsGroup(groups []roster.Group, g roster.Group) bool {
	for _, existing := range groups {
		if existing == g {
			return true
		}
	}
	return false
}

func distinctGroups(groups []roster.Group) []roster.Group {
	var out []roster.Group
	for _, g := range groups {
		if !containsGroup(out, g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order() < out[j].Order() })
	return out
}

func joinGroups(groups []roster.Group) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}
