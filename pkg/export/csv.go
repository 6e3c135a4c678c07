package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// renderCSV flattens the document into one CSV stream. Every row is
// prefixed with the section title so sections stay distinguishable, and
// section order is preserved.
func renderCSV(doc *domain.ReportDocument) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"report", string(doc.Type)},
		{"window", doc.Window.From.Format("2006-01-02"), doc.Window.To.Format("2006-01-02")},
		{"generated", doc.GeneratedAt.Format("2006-01-02 15:04")},
	}

	for _, section := range doc.Sections {
		if section.Unavailable {
			records = append(records, []string{section.Title, "unavailable", section.Note})
			continue
		}

		switch section.Kind {
		case domain.SectionSummaryCards:
			for _, card := range section.Cards {
				records = append(records, []string{section.Title, card.Label, card.Value})
			}
		case domain.SectionTable:
			if section.Table == nil {
				continue
			}
			records = append(records, append([]string{section.Title}, section.Table.Columns...))
			for _, row := range section.Table.Rows {
				records = append(records, append([]string{section.Title}, row...))
			}
		case domain.SectionNarrative:
			records = append(records, []string{section.Title, section.Narrative})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv for report %q: %w", doc.Type, err)
	}
	return buf.Bytes(), nil
}
