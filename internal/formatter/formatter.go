// package formatter renders API records as plain text, Markdown, CSV or JSON and exports them to files
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/spotx/internal/shared"
)

// Format is an output format selected with --format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Formats lists the accepted values of --format.
var Formats = []Format{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// ParseFormat resolves a format name. "md" is accepted for Markdown and the empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	case FormatText, FormatMarkdown, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format %q (want one of %v)", shared.ErrUnrecognizedValue, s, Formats)
	}
}

// Field is a labelled value shown above a table.
type Field struct {
	Label string
	Value string
}

// Table is the tabular view of a record. Fields describe the record itself and Rows its items.
type Table struct {
	Title   string
	Fields  []Field
	Headers []string
	Rows    [][]string
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1DB954"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B3B3B3"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Render writes the tables in format. JSON output encodes value instead, which should be the record
// the tables were built from.
func Render(w io.Writer, format Format, value any, tables ...Table) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(value, "", "  ")
		data = append(data, '\n')
	case FormatCSV:
		data, err = ToCSV(tables...)
	case FormatMarkdown:
		data = ToMarkdown(tables...)
	case FormatText, "":
		data = ToText(tables...)
	default:
		return fmt.Errorf("%w: format %q", shared.ErrUnrecognizedValue, format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// ToText renders styled headings, aligned fields and padded columns.
func ToText(tables ...Table) []byte {
	var buf bytes.Buffer

	for i, t := range tables {
		if i > 0 {
			buf.WriteString("\n")
		}
		if t.Title != "" {
			buf.WriteString(titleStyle.Render(t.Title) + "\n")
		}

		labelWidth := 0
		for _, f := range t.Fields {
			labelWidth = max(labelWidth, lipgloss.Width(f.Label)+1)
		}
		for _, f := range t.Fields {
			label := labelStyle.Render(padRight(f.Label+":", labelWidth))
			fmt.Fprintf(&buf, "%s %s\n", label, f.Value)
		}

		if len(t.Headers) == 0 {
			continue
		}
		if len(t.Fields) > 0 || t.Title != "" {
			buf.WriteString("\n")
		}

		widths := columnWidths(t)
		cells := make([]string, len(t.Headers))
		for c, h := range t.Headers {
			cells[c] = headerStyle.Render(padRight(h, widths[c]))
		}
		buf.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")

		for _, row := range t.Rows {
			for c := range cells {
				cells[c] = padRight(cell(row, c), widths[c])
			}
			buf.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
		}
	}

	return buf.Bytes()
}

// ToMarkdown renders each table as a heading, a bold field list and a pipe table.
func ToMarkdown(tables ...Table) []byte {
	var buf bytes.Buffer

	for i, t := range tables {
		if i > 0 {
			buf.WriteString("\n")
		}
		level := "#"
		if i > 0 {
			level = "##"
		}
		if t.Title != "" {
			fmt.Fprintf(&buf, "%s %s\n\n", level, t.Title)
		}

		for _, f := range t.Fields {
			fmt.Fprintf(&buf, "**%s**: %s\n", f.Label, escapeMarkdown(f.Value))
		}
		if len(t.Fields) > 0 {
			buf.WriteString("\n")
		}

		if len(t.Headers) == 0 {
			continue
		}

		buf.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
		buf.WriteString("|" + strings.Repeat(" --- |", len(t.Headers)) + "\n")
		for _, row := range t.Rows {
			cells := make([]string, len(t.Headers))
			for c := range cells {
				cells[c] = escapeMarkdown(cell(row, c))
			}
			buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}

	return buf.Bytes()
}

// ToCSV writes the headers and rows of every table. Fields and titles are not part of CSV output.
func ToCSV(tables ...Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, t := range tables {
		if len(t.Headers) == 0 {
			continue
		}
		if err := writer.Write(t.Headers); err != nil {
			return nil, fmt.Errorf("failed to write CSV headers: %w", err)
		}
		for _, row := range t.Rows {
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func columnWidths(t Table) []int {
	widths := make([]int, len(t.Headers))
	for c, h := range t.Headers {
		widths[c] = lipgloss.Width(h)
		for _, row := range t.Rows {
			widths[c] = max(widths[c], lipgloss.Width(cell(row, c)))
		}
	}
	return widths
}

func cell(row []string, c int) string {
	if c < len(row) {
		return row[c]
	}
	return ""
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
