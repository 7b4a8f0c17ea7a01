package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/confgrab/internal/logger"
	"github.com/pfrederiksen/confgrab/internal/talk"
)

func TestWriteJSON(t *testing.T) {
	rec := talk.NewRecord(talk.Monday, "09:00–09:30", "Théâtre", "Dr. Smith")
	rec.Title = "Q&A <live>"

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []*talk.Record{rec}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n    {\n        \"day\": \"Monday\",\n        \"time\": "), "got %q", out)
	assert.Contains(t, out, `"location": "Théâtre"`)
	assert.Contains(t, out, `"title": "Q&A <live>"`)
	assert.Less(t, strings.Index(out, `"session_chair"`), strings.Index(out, `"title"`))
	assert.Less(t, strings.Index(out, `"url"`), strings.Index(out, `"details"`))
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	linked := talk.NewRecord(talk.Monday, "09:00-09:30", "Theatre", "")
	linked.Title = "Keynote"
	linked.URL = "/talks/keynote/"
	linked.Details = "Intro."

	plain := talk.NewRecord(talk.Monday, "09:30-10:00", "Room 2", "")
	plain.Title = "Break"

	out := RenderTable([]*talk.Record{linked, plain})
	assert.Contains(t, out, "Keynote")
	assert.Contains(t, out, "6 chars")
	assert.Contains(t, out, "Break")
	assert.Contains(t, out, "2 talks")
}

func TestWriteMetrics(t *testing.T) {
	m := logger.NewMetrics()
	m.IncrCounter("details.fetched")
	m.AddCounter("program.records", 3)
	m.RecordTiming("details.fetch", 20*time.Millisecond)

	var buf bytes.Buffer
	WriteMetrics(&buf, m.GetSnapshot())

	out := buf.String()
	assert.Contains(t, out, "details.fetched: 1")
	assert.Contains(t, out, "program.records: 3")
	assert.Contains(t, out, "details.fetch: count=1")
	assert.Less(t, strings.Index(out, "details.fetched"), strings.Index(out, "program.records"))
}
