// Package reference loads the personnel directory and the ordinary-duty
// calendars from a YAML file.
//
// The file is the single source of truth for who belongs to which group and
// which group is on ordinary duty on each day. Calendars are keyed by
// YYYY-MM; there is no fallback between months.
package reference

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/danieljhkim/escala/internal/fsops"
	"github.com/danieljhkim/escala/internal/roster"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound indicates the reference file does not exist.
	ErrNotFound = errors.New("reference file not found")

	// ErrNoCalendar indicates no ordinary calendar exists for the month.
	ErrNoCalendar = errors.New("no ordinary calendar for month")
)

// document is the on-disk layout.
type document struct {
	Personnel []roster.Person           `yaml:"personnel"`
	Calendars map[string]map[int]string `yaml:"calendars"`
}

// Data is the parsed reference file.
type Data struct {
	// Path is where the data was loaded from, empty when parsed from memory.
	Path string

	People    []roster.Person
	Calendars map[string]map[int]string
}

// Load reads and parses the reference file at path.
func Load(fs fsops.FS, path string) (*Data, error) {
	raw, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read reference file: %w", err)
	}

	data, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	data.Path = path
	return data, nil
}

// Parse decodes reference YAML. Names and tokens are trimmed. A missing rank
// stays empty and Validate reports it as unknown_rank.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}

	people := make([]roster.Person, 0, len(doc.Personnel))
	for _, p := range doc.Personnel {
		p.Name = strings.TrimSpace(p.Name)
		p.Rank = roster.Rank(strings.TrimSpace(string(p.Rank)))
		p.Group = roster.Group(strings.ToUpper(strings.TrimSpace(string(p.Group))))
		people = append(people, p)
	}

	calendars := doc.Calendars
	if calendars == nil {
		calendars = map[string]map[int]string{}
	}
	return &Data{People: people, Calendars: calendars}, nil
}

// Directory builds the personnel lookup table.
func (d *Data) Directory() *roster.Directory {
	return roster.NewDirectory(d.People)
}

// Calendar returns the ordinary calendar for month. Entries with days outside
// the month or with an unknown group are dropped; Validate reports them.
func (d *Data) Calendar(month roster.Month) (*roster.OrdinaryCalendar, error) {
	entries, ok := d.Calendars[month.String()]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoCalendar, month)
	}

	cal := roster.NewOrdinaryCalendar(month)
	for day, name := range entries {
		if !month.Contains(day) {
			continue
		}
		g, err := roster.ParseGroup(strings.ToUpper(strings.TrimSpace(name)))
		if err != nil {
			continue
		}
		cal.Days[day] = g
	}
	return cal, nil
}

// Months returns the well-formed calendar months, ascending.
func (d *Data) Months() []roster.Month {
	var months []roster.Month
	for key := range d.Calendars {
		m, err := roster.ParseMonth(key)
		if err != nil {
			continue
		}
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].String() < months[j].String()
	})
	return months
}
