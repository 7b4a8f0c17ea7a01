package program

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/confgrab/internal/logger"
	"github.com/pfrederiksen/confgrab/internal/talk"
)

// DetailFunc resolves a talk's detail URL into display text. It must not
// fail; errors are reported in the returned text.
type DetailFunc func(ctx context.Context, url string) string

// Parser extracts talk records from the program page
type Parser struct {
	details DetailFunc
	log     *logger.Logger
	metrics *logger.Metrics
}

// Option configures a Parser
type Option func(*Parser)

// WithDetails sets the function used to fill Record.Details. Without it,
// Details stays talk.NotAvailable.
func WithDetails(fn DetailFunc) Option {
	return func(p *Parser) {
		p.details = fn
	}
}

// WithLogger sets the logger for per-day progress.
func WithLogger(l *logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics counts emitted records and processed days.
func WithMetrics(m *logger.Metrics) Option {
	return func(p *Parser) {
		if m != nil {
			p.metrics = m
		}
	}
}

// New creates a new Parser
func New(opts ...Option) *Parser {
	p := &Parser{
		log:     logger.Nop(),
		metrics: logger.NewMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(logger.Fields{"component": "program"})
	return p
}

// Parse reads the program page from r and returns its talks in day, row,
// column order.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]*talk.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return p.ParseDocument(ctx, doc), nil
}

// ParseDocument is Parse for an already parsed page.
func (p *Parser) ParseDocument(ctx context.Context, doc *goquery.Document) []*talk.Record {
	records := make([]*talk.Record, 0)

	for _, day := range talk.Weekdays {
		container := doc.Find("div#" + day.ID()).First()
		if container.Length() == 0 {
			p.log.Debug("day not on program", logger.Fields{"day": string(day)})
			continue
		}

		table := container.Find("table").First()
		if table.Length() == 0 {
			p.log.Warn("day has no schedule table", logger.Fields{"day": string(day)})
			continue
		}

		p.log.Info("processing talks", logger.Fields{"day": string(day)})
		p.metrics.IncrCounter("program.days")

		dayRecords := p.parseDay(ctx, day, table)
		p.metrics.AddCounter("program.records", int64(len(dayRecords)))
		records = append(records, dayRecords...)
	}

	return records
}

// parseDay walks one day's table. The GridState lives only for this call.
func (p *Parser) parseDay(ctx context.Context, day talk.Day, table *goquery.Selection) []*talk.Record {
	state := NewGridState()
	records := make([]*talk.Record, 0)

	for _, tr := range tableRows(table) {
		row := state.Expand(rowCells(tr))

		first := row.First()
		if first == nil {
			continue
		}
		if state.ApplyHeader(row) {
			continue
		}

		timeText := strings.TrimSpace(first.Text())
		if !talk.IsTimeRange(timeText) {
			continue
		}

		records = append(records, p.parseSlots(ctx, day, timeText, row, state)...)
	}

	return records
}

// parseSlots builds the records of one talk row.
func (p *Parser) parseSlots(ctx context.Context, day talk.Day, timeText string, row Row, state *GridState) []*talk.Record {
	var records []*talk.Record

	for i, cell := range row.Slots() {
		if cell == nil {
			// Covered by a rowspan from an earlier row
			continue
		}

		state.Span(i, rowspan(cell))

		if talk.Normalize(cell.Text()) == "" {
			continue
		}

		rec := talk.NewRecord(day, timeText, state.Room(i), state.SessionChair(i))
		fillFromCell(rec, cell)

		if rec.HasURL() && p.details != nil {
			rec.Details = p.details(ctx, rec.URL)
		}

		records = append(records, rec)
	}

	return records
}

// tableRows returns the rows of table, excluding rows of nested tables.
func tableRows(table *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.ParentsFiltered("table").First().IsSelection(table) {
			rows = append(rows, tr)
		}
	})
	return rows
}

// rowCells returns the row's own data cells.
func rowCells(tr *goquery.Selection) []*goquery.Selection {
	var cells []*goquery.Selection
	tr.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, td)
	})
	return cells
}
