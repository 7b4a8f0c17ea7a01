package talk

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NotAvailable marks a field the program page did not provide.
const NotAvailable = "N/A"

// Day is a weekday the conference program covers.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

// Weekdays is the fixed order in which day sections are processed.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// ID returns the element id of the day's container on the program page.
func (d Day) ID() string {
	return strings.ToLower(string(d))
}

// Index returns the position of d in Weekdays, or -1 if d is not a program day.
func (d Day) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// ParseDay matches a day name case-insensitively
func ParseDay(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Record represents one talk extracted from the program grid
type Record struct {
	Day          Day    `json:"day"`
	Time         string `json:"time"` // Verbatim as printed, en-dash or hyphen
	Location     string `json:"location"`
	SessionChair string `json:"session_chair"`
	Title        string `json:"title"`
	Authors      string `json:"authors"`
	URL          string `json:"url"`
	Details      string `json:"details"`
}

// NewRecord creates a Record for the given slot with every content field set
// to NotAvailable.
func NewRecord(day Day, timeText, location, chair string) *Record {
	return &Record{
		Day:          day,
		Time:         timeText,
		Location:     orNotAvailable(location),
		SessionChair: orNotAvailable(chair),
		Title:        NotAvailable,
		Authors:      NotAvailable,
		URL:          NotAvailable,
		Details:      NotAvailable,
	}
}

// HasURL reports whether the record links to a detail page.
func (r *Record) HasURL() bool {
	return r.URL != "" && r.URL != NotAvailable
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// Normalize collapses runs of whitespace to single spaces, trims the ends and
// puts the text in Unicode NFC form.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
