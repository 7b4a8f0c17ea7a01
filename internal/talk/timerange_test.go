package talk

import "testing"

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"en dash", "09:00–09:30", 540, 570, true},
		{"hyphen", "13:15-14:00", 795, 840, true},
		{"spaced en dash", "09:00 – 09:30", 540, 570, true},
		{"spaced hyphen", "16:00  -  17:30", 960, 1050, true},
		{"trailing text", "11:00-11:30 (AEST)", 660, 690, true},
		{"single digit hour", "9:00-9:30", 0, 0, false},
		{"invalid hour", "25:00-26:00", 0, 0, false},
		{"no range", "Morning tea", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"leading text", "Room 09:00-10:00", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimeRange(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseTimeRange(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("ParseTimeRange(%q) = %+v, want {%d %d}", tt.text, got, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestIsTimeRange(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"09:00–09:30", true},
		{"09:00-09:30", true},
		{"09:00 - 09:30", true},
		{"09:00—09:30", false}, // em dash is not accepted
		{"Room", false},
		{"Session Chair", false},
		{"25:00-26:00", true}, // shape only, range validity is ParseTimeRange's job
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := IsTimeRange(tt.text); got != tt.want {
				t.Errorf("IsTimeRange(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
