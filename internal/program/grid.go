package program

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/confgrab/internal/talk"
)

const (
	roomMarker  = "Room"
	chairMarker = "Session Chair"
)

// GridState is the per-day column context carried from row to row.
type GridState struct {
	// Rooms maps talk column index to room name, from the latest Room row.
	Rooms []string
	// SessionChairs maps talk column index to chair, from the latest
	// Session Chair row.
	SessionChairs []string
	// RowspanOffsets maps talk column index to the number of rows, counting
	// the row that declared the rowspan, the column is still occupied for.
	RowspanOffsets map[int]int
}

// NewGridState returns the empty state a day section starts with.
func NewGridState() *GridState {
	return &GridState{
		RowspanOffsets: make(map[int]int),
	}
}

// Row is one table row with spanned columns filled in. A nil entry in
// Cells is a placeholder for a column still occupied by a rowspan.
type Row struct {
	Cells []*goquery.Selection
}

// First returns the row's first cell, or nil when the row is empty or starts
// with a placeholder.
func (r Row) First() *goquery.Selection {
	if len(r.Cells) == 0 {
		return nil
	}
	return r.Cells[0]
}

// Slots returns the cells after the time column.
func (r Row) Slots() []*goquery.Selection {
	if len(r.Cells) == 0 {
		return nil
	}
	return r.Cells[1:]
}

// Expand inserts a placeholder for every column still covered by a rowspan
// from an earlier row and advances those counters by one row.
func (g *GridState) Expand(cells []*goquery.Selection) Row {
	expanded := make([]*goquery.Selection, len(cells))
	copy(expanded, cells)

	columns := make([]int, 0, len(g.RowspanOffsets))
	for col := range g.RowspanOffsets {
		columns = append(columns, col)
	}
	sort.Ints(columns)

	for _, col := range columns {
		remaining := g.RowspanOffsets[col]
		if remaining <= 1 {
			delete(g.RowspanOffsets, col)
			continue
		}

		// +1 skips the time column
		expanded = insertAt(expanded, col+1, nil)

		remaining--
		if remaining <= 1 {
			delete(g.RowspanOffsets, col)
		} else {
			g.RowspanOffsets[col] = remaining
		}
	}

	return Row{Cells: expanded}
}

// Span records that the cell at column spans rows rows, starting with the
// current one.
func (g *GridState) Span(column, rows int) {
	if rows > 1 {
		g.RowspanOffsets[column] = rows
	}
}

// ApplyHeader updates rooms or chairs when row is a header row and reports
// whether it was one.
func (g *GridState) ApplyHeader(row Row) bool {
	first := row.First()
	if first == nil {
		return false
	}
	label := strings.TrimSpace(first.Text())

	switch {
	case strings.Contains(label, roomMarker):
		g.Rooms = labels(row.Slots())
		return true
	case strings.Contains(label, chairMarker):
		g.SessionChairs = labels(row.Slots())
		return true
	}
	return false
}

// Room returns the room for a talk column, or talk.NotAvailable.
func (g *GridState) Room(column int) string {
	return lookup(g.Rooms, column)
}

// SessionChair returns the chair for a talk column, or talk.NotAvailable.
func (g *GridState) SessionChair(column int) string {
	return lookup(g.SessionChairs, column)
}

func labels(cells []*goquery.Selection) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if cell != nil {
			out[i] = talk.Normalize(cell.Text())
		}
	}
	return out
}

func lookup(values []string, column int) string {
	if column < 0 || column >= len(values) || values[column] == "" {
		return talk.NotAvailable
	}
	return values[column]
}

func insertAt(cells []*goquery.Selection, pos int, cell *goquery.Selection) []*goquery.Selection {
	if pos >= len(cells) {
		return append(cells, cell)
	}
	cells = append(cells, nil)
	copy(cells[pos+1:], cells[pos:])
	cells[pos] = cell
	return cells
}
