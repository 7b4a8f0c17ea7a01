package filter

import (
	"testing"

	"github.com/pfrederiksen/confgrab/internal/talk"
)

func record(day talk.Day, room, chair, title, url string) *talk.Record {
	rec := talk.NewRecord(day, "09:00-09:30", room, chair)
	rec.Title = title
	if url != "" {
		rec.URL = url
	}
	return rec
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"empty filter", NewFilter(), true},
		{"zero value", &Filter{}, true},
		{"days", &Filter{Days: []talk.Day{talk.Monday}}, false},
		{"rooms", &Filter{Rooms: []string{"Theatre"}}, false},
		{"linked only", &Filter{LinkedOnly: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	keynote := record(talk.Monday, "Theatre", "Dr. Smith", "Opening Keynote", "/talks/keynote/")
	bof := record(talk.Tuesday, "Room 3", "", "BoF: Research Software", "")

	tests := []struct {
		name   string
		filter *Filter
		rec    *talk.Record
		want   bool
	}{
		{"empty matches", NewFilter(), bof, true},
		{"day match", &Filter{Days: []talk.Day{talk.Monday, talk.Friday}}, keynote, true},
		{"day mismatch", &Filter{Days: []talk.Day{talk.Friday}}, keynote, false},
		{"room substring case-insensitive", &Filter{Rooms: []string{"theat"}}, keynote, true},
		{"room mismatch", &Filter{Rooms: []string{"Hall"}}, keynote, false},
		{"chair match", &Filter{Chairs: []string{"smith"}}, keynote, true},
		{"chair against N/A", &Filter{Chairs: []string{"smith"}}, bof, false},
		{"title any of", &Filter{Titles: []string{"panel", "bof"}}, bof, true},
		{"linked only keeps links", &Filter{LinkedOnly: true}, keynote, true},
		{"linked only drops unlinked", &Filter{LinkedOnly: true}, bof, false},
		{
			name:   "all criteria must match",
			filter: &Filter{Days: []talk.Day{talk.Monday}, Rooms: []string{"Room 3"}},
			rec:    keynote,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_ApplyPreservesOrder(t *testing.T) {
	records := []*talk.Record{
		record(talk.Monday, "Theatre", "", "A", ""),
		record(talk.Monday, "Room 2", "", "B", ""),
		record(talk.Tuesday, "Theatre", "", "C", ""),
		record(talk.Wednesday, "Theatre", "", "D", ""),
	}

	got := (&Filter{Rooms: []string{"Theatre"}}).Apply(records)

	var titles string
	for _, r := range got {
		titles += r.Title
	}
	if titles != "ACD" {
		t.Errorf("Apply() titles = %q, want %q", titles, "ACD")
	}

	if same := NewFilter().Apply(records); len(same) != len(records) {
		t.Errorf("empty filter returned %d records, want %d", len(same), len(records))
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []talk.Day
		wantErr bool
	}{
		{"single", []string{"monday"}, []talk.Day{talk.Monday}, false},
		{"repeated flags", []string{"Tuesday", "friday"}, []talk.Day{talk.Tuesday, talk.Friday}, false},
		{"comma list", []string{"wednesday, thursday"}, []talk.Day{talk.Wednesday, talk.Thursday}, false},
		{"blank entries ignored", []string{"", "monday,"}, []talk.Day{talk.Monday}, false},
		{"weekend rejected", []string{"saturday"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseDays() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseDays()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilter_String(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{"empty", NewFilter(), "No active filters"},
		{
			name:   "days and rooms",
			filter: &Filter{Days: []talk.Day{talk.Monday, talk.Tuesday}, Rooms: []string{"Theatre"}},
			want:   "Days: Monday, Tuesday | Rooms: Theatre",
		},
		{
			name:   "everything",
			filter: &Filter{Chairs: []string{"Lee"}, Titles: []string{"data"}, LinkedOnly: true},
			want:   "Chairs: Lee | Titles: data | Linked only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
