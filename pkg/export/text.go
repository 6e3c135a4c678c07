package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

const textTemplate = `{{.Title}}

Window: {{.Window.From.Format "2006-01-02"}} to {{.Window.To.Format "2006-01-02"}} ({{.Window.Days}} days)
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}} (schema v{{.SchemaVersion}})
{{range .Sections}}
=== {{.Title}} ===
{{if .Unavailable}}{{.Note}}
{{else if eq .Kind "summary-cards"}}{{range .Cards}}
- {{.Label}}: {{.Value}}{{if .Hint}} ({{.Hint}}){{end}}{{end}}
{{else if eq .Kind "table"}}{{renderTable .Table}}{{else}}{{.Narrative}}
{{end}}{{end}}`

func renderText(doc *domain.ReportDocument) ([]byte, error) {
	funcMap := template.FuncMap{
		"renderTable": renderTable,
	}

	t, err := template.New("report").Funcs(funcMap).Parse(textTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render report %q: %w", doc.Type, err)
	}
	return buf.Bytes(), nil
}

// renderTable lays a table out with per-column widths sized to the
// widest cell.
func renderTable(table *domain.Table) string {
	if table == nil || len(table.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	separator := func() string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("-", w+2)
		}
		return "+" + strings.Join(parts, "+") + "+"
	}

	formatRow := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = fmt.Sprintf(" %-*s ", widths[i], cell)
		}
		return "|" + strings.Join(parts, "|") + "|"
	}

	var b strings.Builder
	b.WriteString(separator() + "\n")
	b.WriteString(formatRow(table.Columns) + "\n")
	b.WriteString(separator() + "\n")
	for _, row := range table.Rows {
		b.WriteString(formatRow(row) + "\n")
	}
	b.WriteString(separator() + "\n")
	return b.String()
}
