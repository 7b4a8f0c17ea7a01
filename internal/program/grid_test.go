package program

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/confgrab/internal/talk"
)

// cellsOf parses a single <tr> and returns its td cells.
func cellsOf(t *testing.T, tr string) []*goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table>" + tr + "</table>"))
	if err != nil {
		t.Fatalf("parsing row: %v", err)
	}
	return rowCells(doc.Find("tr").First())
}

// shape renders a row as the cell texts with "_" for placeholders.
func shape(row Row) string {
	parts := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		if c == nil {
			parts[i] = "_"
		} else {
			parts[i] = strings.TrimSpace(c.Text())
		}
	}
	return strings.Join(parts, "|")
}

func TestGridState_ExpandNoSpans(t *testing.T) {
	g := NewGridState()
	row := g.Expand(cellsOf(t, `<tr><td>09:00-09:30</td><td>A</td><td>B</td></tr>`))

	if got := shape(row); got != "09:00-09:30|A|B" {
		t.Errorf("shape = %q, want %q", got, "09:00-09:30|A|B")
	}
}

func TestGridState_ExpandRowspan(t *testing.T) {
	g := NewGridState()
	g.Span(1, 3) // middle talk column, three rows including the declaring row

	tests := []struct {
		tr   string
		want string
	}{
		{`<tr><td>10:00-10:30</td><td>A</td><td>C</td></tr>`, "10:00-10:30|A|_|C"},
		{`<tr><td>10:30-11:00</td><td>A</td><td>C</td></tr>`, "10:30-11:00|A|_|C"},
		{`<tr><td>11:00-11:30</td><td>A</td><td>B</td><td>C</td></tr>`, "11:00-11:30|A|B|C"},
	}

	for i, tt := range tests {
		row := g.Expand(cellsOf(t, tt.tr))
		if got := shape(row); got != tt.want {
			t.Errorf("row %d shape = %q, want %q", i, got, tt.want)
		}
	}

	if len(g.RowspanOffsets) != 0 {
		t.Errorf("RowspanOffsets = %v, want empty after span ends", g.RowspanOffsets)
	}
}

func TestGridState_ExpandMultipleSpans(t *testing.T) {
	g := NewGridState()
	g.Span(0, 2)
	g.Span(2, 3)

	row := g.Expand(cellsOf(t, `<tr><td>10:00-10:30</td><td>B</td><td>D</td></tr>`))
	if got := shape(row); got != "10:00-10:30|_|B|_|D" {
		t.Errorf("first row shape = %q", got)
	}

	row = g.Expand(cellsOf(t, `<tr><td>10:30-11:00</td><td>A</td><td>B</td><td>D</td></tr>`))
	if got := shape(row); got != "10:30-11:00|A|B|_|D" {
		t.Errorf("second row shape = %q", got)
	}
}

func TestGridState_ExpandShortRow(t *testing.T) {
	g := NewGridState()
	g.Span(4, 2)

	// Placeholder beyond the row's length is appended
	row := g.Expand(cellsOf(t, `<tr><td>10:00-10:30</td><td>A</td></tr>`))
	if got := shape(row); got != "10:00-10:30|A|_" {
		t.Errorf("shape = %q", got)
	}
}

func TestGridState_SpanOfOneIsIgnored(t *testing.T) {
	g := NewGridState()
	g.Span(0, 1)
	g.Span(1, 0)

	if len(g.RowspanOffsets) != 0 {
		t.Errorf("RowspanOffsets = %v, want empty", g.RowspanOffsets)
	}
}

func TestGridState_ApplyHeader(t *testing.T) {
	g := NewGridState()

	if !g.ApplyHeader(g.Expand(cellsOf(t, `<tr><td>Room</td><td>Theatre</td><td> Room  2 </td></tr>`))) {
		t.Fatal("Room row not detected as header")
	}
	if !g.ApplyHeader(g.Expand(cellsOf(t, `<tr><td><strong>Session Chair</strong></td><td>Dr. Smith</td></tr>`))) {
		t.Fatal("Session Chair row not detected as header")
	}
	if g.ApplyHeader(g.Expand(cellsOf(t, `<tr><td>09:00-09:30</td><td>Talk</td></tr>`))) {
		t.Error("talk row detected as header")
	}

	if got := g.Room(0); got != "Theatre" {
		t.Errorf("Room(0) = %q, want Theatre", got)
	}
	if got := g.Room(1); got != "Room 2" {
		t.Errorf("Room(1) = %q, want %q", got, "Room 2")
	}
	if got := g.SessionChair(0); got != "Dr. Smith" {
		t.Errorf("SessionChair(0) = %q, want Dr. Smith", got)
	}
	if got := g.SessionChair(1); got != talk.NotAvailable {
		t.Errorf("SessionChair(1) = %q, want %q", got, talk.NotAvailable)
	}
}

func TestGridState_LookupBounds(t *testing.T) {
	g := NewGridState()
	g.Rooms = []string{"A", "", "C"}

	tests := []struct {
		column int
		want   string
	}{
		{-1, talk.NotAvailable},
		{0, "A"},
		{1, talk.NotAvailable},
		{2, "C"},
		{3, talk.NotAvailable},
		{100, talk.NotAvailable},
	}

	for _, tt := range tests {
		if got := g.Room(tt.column); got != tt.want {
			t.Errorf("Room(%d) = %q, want %q", tt.column, got, tt.want)
		}
	}
}
