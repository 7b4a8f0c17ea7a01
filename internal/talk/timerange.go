package talk

import (
	"regexp"
	"strconv"
)

// timeRangePattern matches "HH:MM-HH:MM" with a hyphen or en-dash separator,
// optionally surrounded by spaces.
var timeRangePattern = regexp.MustCompile(`^(\d{2}):(\d{2})\s*[-–]\s*(\d{2}):(\d{2})`)

// IsTimeRange reports whether text starts with a printed time range.
func IsTimeRange(text string) bool {
	return timeRangePattern.MatchString(text)
}

// TimeRange is a parsed slot, in minutes after midnight
type TimeRange struct {
	Start int
	End   int
}

// ParseTimeRange parses the leading time range of a printed slot.
// Returns false if text does not start with a valid range.
//
// Record.Time stays verbatim; this is an optional step for consumers that
// need to compare slots.
func ParseTimeRange(text string) (TimeRange, bool) {
	m := timeRangePattern.FindStringSubmatch(text)
	if m == nil {
		return TimeRange{}, false
	}

	start, ok := minutes(m[1], m[2])
	if !ok {
		return TimeRange{}, false
	}
	end, ok := minutes(m[3], m[4])
	if !ok {
		return TimeRange{}, false
	}

	return TimeRange{Start: start, End: end}, true
}

func minutes(hh, mm string) (int, bool) {
	h, err := strconv.Atoi(hh)
	if err != nil || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
