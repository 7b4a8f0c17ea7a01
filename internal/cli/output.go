package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pfrederiksen/confgrab/internal/logger"
	"github.com/pfrederiksen/confgrab/internal/talk"
)

// OutputFormat specifies the console output format
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// maxCellWidth keeps long titles from blowing up the summary table.
const maxCellWidth = 48

// WriteJSON writes records as a 4-space indented JSON array. Non-ASCII text
// and HTML characters are written as-is.
func WriteJSON(w io.Writer, records []*talk.Record) error {
	if records == nil {
		records = []*talk.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(records)
}

// WriteJSONFile creates (or truncates) path and writes records to it.
func WriteJSONFile(path string, records []*talk.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderTable returns a summary table of records, one row per talk.
func RenderTable(records []*talk.Record) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Day", "Time", "Location", "Title", "Authors", "Details"})

	for _, rec := range records {
		tw.AppendRow(table.Row{
			string(rec.Day),
			rec.Time,
			rec.Location,
			rec.Title,
			rec.Authors,
			detailsStatus(rec),
		})
	}

	tw.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d talks", len(records))})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Location", WidthMax: 24},
		{Name: "Title", WidthMax: maxCellWidth},
		{Name: "Authors", WidthMax: maxCellWidth},
		{Name: "Details", Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})

	return tw.Render()
}

// detailsStatus condenses the details field for the table.
func detailsStatus(rec *talk.Record) string {
	switch {
	case !rec.HasURL():
		return "-"
	case rec.Details == "" || rec.Details == talk.NotAvailable:
		return "?"
	default:
		return fmt.Sprintf("%d chars", len([]rune(rec.Details)))
	}
}

// WriteMetrics prints a snapshot as plain text, counters first.
func WriteMetrics(w io.Writer, snap logger.Snapshot) {
	fmt.Fprintln(w, "Metrics:")
	for _, name := range snap.CounterNames() {
		fmt.Fprintf(w, "  %s: %d\n", name, snap.Counters[name])
	}

	names := make([]string, 0, len(snap.Timings))
	for name := range snap.Timings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats := snap.Timings[name]
		fmt.Fprintf(w, "  %s: count=%d avg=%s max=%s\n", name, stats.Count, stats.Average, stats.Max)
	}
}
