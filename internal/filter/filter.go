// Package filter narrows an extracted program to the talks a reader cares
// about.
//
// Criteria are combined with AND; values within one criterion are combined
// with OR. Text criteria are case-insensitive substring matches. A filter
// only removes records: it never changes their content or relative order.
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Days = []talk.Day{talk.Tuesday}
//	f.Rooms = []string{"Theatre"}
//	tuesdayPlenaries := f.Apply(records)
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/confgrab/internal/talk"
)

// Filter represents talk filtering criteria
type Filter struct {
	Days   []talk.Day `json:"days,omitempty"`
	Rooms  []string   `json:"rooms,omitempty"`
	Chairs []string   `json:"chairs,omitempty"`
	Titles []string   `json:"titles,omitempty"`

	// LinkedOnly keeps only talks that have a detail page
	LinkedOnly bool `json:"linked_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{
		Days:   []talk.Day{},
		Rooms:  []string{},
		Chairs: []string{},
		Titles: []string{},
	}
}

// ParseDays converts day names into talk.Day values. Each value may itself
// be a comma-separated list.
func ParseDays(values []string) ([]talk.Day, error) {
	days := make([]talk.Day, 0, len(values))
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			day, ok := talk.ParseDay(name)
			if !ok {
				return nil, fmt.Errorf("unknown day: %q (must be Monday to Friday)", strings.TrimSpace(name))
			}
			days = append(days, day)
		}
	}
	return days, nil
}

// IsEmpty reports whether the filter would match every talk.
func (f *Filter) IsEmpty() bool {
	return len(f.Days) == 0 &&
		len(f.Rooms) == 0 &&
		len(f.Chairs) == 0 &&
		len(f.Titles) == 0 &&
		!f.LinkedOnly
}

// Matches checks if a talk matches all active filter criteria.
func (f *Filter) Matches(rec *talk.Record) bool {
	if f.IsEmpty() {
		return true
	}

	if len(f.Days) > 0 {
		matched := false
		for _, day := range f.Days {
			if rec.Day == day {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if !containsAny(rec.Location, f.Rooms) {
		return false
	}
	if !containsAny(rec.SessionChair, f.Chairs) {
		return false
	}
	if !containsAny(rec.Title, f.Titles) {
		return false
	}

	if f.LinkedOnly && !rec.HasURL() {
		return false
	}

	return true
}

// containsAny is a case-insensitive substring match against any needle.
// No needles means no constraint.
func containsAny(value string, needles []string) bool {
	if len(needles) == 0 {
		return true
	}
	lower := strings.ToLower(value)
	for _, needle := range needles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// Apply returns the talks that match, in their original order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(records []*talk.Record) []*talk.Record {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]*talk.Record, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "Days: Monday, Tuesday | Rooms: Theatre | Linked only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Days) > 0 {
		names := make([]string, len(f.Days))
		for i, d := range f.Days {
			names[i] = string(d)
		}
		parts = append(parts, fmt.Sprintf("Days: %s", strings.Join(names, ", ")))
	}

	if len(f.Rooms) > 0 {
		parts = append(parts, fmt.Sprintf("Rooms: %s", strings.Join(f.Rooms, ", ")))
	}

	if len(f.Chairs) > 0 {
		parts = append(parts, fmt.Sprintf("Chairs: %s", strings.Join(f.Chairs, ", ")))
	}

	if len(f.Titles) > 0 {
		parts = append(parts, fmt.Sprintf("Titles: %s", strings.Join(f.Titles, ", ")))
	}

	if f.LinkedOnly {
		parts = append(parts, "Linked only")
	}

	return strings.Join(parts, " | ")
}
