package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chriserin/specdraw/internal/db"
	"github.com/chriserin/specdraw/internal/parser"
)

// lipgloss renders without escape codes when the output is not a terminal.

func TestParseSummary(t *testing.T) {
	var buf bytes.Buffer
	spec := &parser.Specification{Title: "Shop", Classes: make([]parser.ClassDef, 2)}
	ParseSummary(&buf, spec, "regex", 1)
	assert.Equal(t, "Shop  regex  2 classes, 0 components, 0 use cases  1 warnings\n", buf.String())
}

func TestParseSummary_Untitled(t *testing.T) {
	var buf bytes.Buffer
	ParseSummary(&buf, &parser.Specification{}, "llm", 0)
	assert.Equal(t, "(untitled)  llm  0 classes, 0 components, 0 use cases\n", buf.String())
}

func TestDiagnosticLine(t *testing.T) {
	var buf bytes.Buffer
	DiagnosticLine(&buf, parser.ParseError{Line: 7, Message: "unmatched attribute line"})
	assert.Equal(t, "warn  line 7: unmatched attribute line\n", buf.String())
}

func TestHistoryRow(t *testing.T) {
	var buf bytes.Buffer
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)
	HistoryRow(&buf, db.ParseRecord{ID: 3, Title: "Shop", Source: "regex", CreatedAt: created}, 3, 6)
	assert.Equal(t, "#3   Shop    regex  2025-03-01 12:00:00\n", buf.String())
}

func TestWrittenLine(t *testing.T) {
	var buf bytes.Buffer
	WrittenLine(&buf, "out/main.py")
	SummaryLine(&buf, 1, "out")
	assert.Equal(t, "new  out/main.py\nwrote 1 files to out\n", buf.String())
}
