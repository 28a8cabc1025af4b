package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/specdraw/internal/db"
	"github.com/chriserin/specdraw/internal/parser"
)

var (
	newStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	llmStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// WrittenLine reports a file written to disk.
func WrittenLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func SummaryLine(w io.Writer, count int, dir string) {
	fmt.Fprintf(w, "wrote %d files to %s\n", count, dir)
}

// Header prints a bold section title such as a diagram name.
func Header(w io.Writer, title string) {
	fmt.Fprintln(w, headerStyle.Render(title))
}

func sourceLabel(source string) string {
	if source == "llm" {
		return llmStyle.Render(source)
	}
	return faintStyle.Render(source)
}

// ParseSummary prints one line of counts for a parsed specification.
func ParseSummary(w io.Writer, spec *parser.Specification, source string, diagnostics int) {
	title := spec.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "%s  %s  %d classes, %d components, %d use cases",
		headerStyle.Render(title), sourceLabel(source),
		len(spec.Classes), len(spec.Architecture.Components), len(spec.UseCases))
	if diagnostics > 0 {
		fmt.Fprint(w, "  "+warnStyle.Render(fmt.Sprintf("%d warnings", diagnostics)))
	}
	fmt.Fprintln(w)
}

// DiagnosticLine prints a skipped-line warning prefixed with its line number.
func DiagnosticLine(w io.Writer, d parser.ParseError) {
	fmt.Fprintf(w, "%s  line %d: %s\n", warnStyle.Render("warn"), d.Line, d.Message)
}

// HistoryRow prints one stored parse, padding the id and title columns.
func HistoryRow(w io.Writer, r db.ParseRecord, idWidth, titleWidth int) {
	id := fmt.Sprintf("#%d", r.ID)
	fmt.Fprintf(w, "%-*s  %-*s  %s  %s\n",
		idWidth, id,
		titleWidth, r.Title,
		sourceLabel(r.Source),
		faintStyle.Render(r.CreatedAt.Local().Format(time.DateTime)))
}
