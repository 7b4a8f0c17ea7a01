package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/confgrab/internal/talk"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDocument SortOrder = "document"
	SortByTime     SortOrder = "time"
	SortByRoom     SortOrder = "room"
	SortByTitle    SortOrder = "title"
)

// Valid reports whether o is a known sort order.
func (o SortOrder) Valid() bool {
	switch o {
	case SortByDocument, SortByTime, SortByRoom, SortByTitle:
		return true
	}
	return false
}

// sortTalks sorts records in place. Document order is the parser's own
// order and leaves the slice untouched; every other order is stable.
func sortTalks(records []*talk.Record, order SortOrder) {
	switch order {
	case SortByTime:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByTime(records[i], records[j])
		})
	case SortByRoom:
		sort.SliceStable(records, func(i, j int) bool {
			ri, rj := strings.ToLower(records[i].Location), strings.ToLower(records[j].Location)
			if ri != rj {
				return ri < rj
			}
			// If rooms are equal, sort by time
			return compareByTime(records[i], records[j])
		})
	case SortByTitle:
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Title) < strings.ToLower(records[j].Title)
		})
	}
}

// compareByTime compares two talks by day, then start time.
// Returns true if talk i should come before talk j
func compareByTime(i, j *talk.Record) bool {
	if di, dj := i.Day.Index(), j.Day.Index(); di != dj {
		return di < dj
	}

	rangeI, okI := talk.ParseTimeRange(i.Time)
	rangeJ, okJ := talk.ParseTimeRange(j.Time)

	// If both times are valid, compare them
	if okI && okJ {
		return rangeI.Start < rangeJ.Start
	}

	// If only one time is valid, put the valid one first
	if okI {
		return true
	}
	return false
}
