package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

func sampleDocument() *domain.ReportDocument {
	return &domain.ReportDocument{
		Type:          domain.ReportFinancial,
		Title:         "Financial Report",
		SchemaVersion: 1,
		Window: domain.TimeRange{
			From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		GeneratedAt: time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC),
		Sections: []domain.Section{
			{
				Title: "Financial Summary",
				Kind:  domain.SectionSummaryCards,
				Cards: []domain.Card{
					{Label: "Total Revenue", Value: "700.00"},
					{Label: "Net Profit", Value: "—", Hint: "data unavailable"},
				},
			},
			{
				Title: "Top Customers",
				Kind:  domain.SectionTable,
				Table: &domain.Table{
					Columns: []string{"Customer", "Revenue"},
					Rows:    [][]string{{"acme", "700.00"}},
				},
			},
			{
				Title:       "Outstanding Invoices",
				Kind:        domain.SectionTable,
				Unavailable: true,
				Note:        "data unavailable for invoices",
			},
			{
				Title:     "Notes",
				Kind:      domain.SectionNarrative,
				Narrative: "No active alerts.",
			},
		},
	}
}

func TestRender(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		_, err := Render(sampleDocument(), "pdf")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("repeat renders are byte identical", func(t *testing.T) {
		doc := sampleDocument()
		for _, format := range []Format{FormatText, FormatCSV} {
			first, err := Render(doc, format)
			require.NoError(t, err)
			second, err := Render(doc, format)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		}
	})
}

func TestRenderText(t *testing.T) {
	out, err := Render(sampleDocument(), FormatText)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "Financial Report")
	assert.Contains(t, text, "Window: 2026-08-01 to 2026-08-31 (30 days)")
	assert.Contains(t, text, "Generated: 2026-08-31 12:30 (schema v1)")

	assert.Contains(t, text, "=== Financial Summary ===")
	assert.Contains(t, text, "- Total Revenue: 700.00")
	assert.Contains(t, text, "- Net Profit: — (data unavailable)")

	assert.Contains(t, text, "| Customer | Revenue |")
	assert.Contains(t, text, "| acme     | 700.00  |")
	assert.Contains(t, text, "+----------+---------+")

	assert.Contains(t, text, "=== Outstanding Invoices ===\ndata unavailable for invoices")
	assert.Contains(t, text, "No active alerts.")
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(sampleDocument(), FormatCSV)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(out)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"report", "financial"}, records[0])
	assert.Equal(t, []string{"window", "2026-08-01", "2026-08-31"}, records[1])
	assert.Equal(t, []string{"generated", "2026-08-31 12:30"}, records[2])

	assert.Contains(t, records, []string{"Financial Summary", "Total Revenue", "700.00"})
	assert.Contains(t, records, []string{"Top Customers", "Customer", "Revenue"})
	assert.Contains(t, records, []string{"Top Customers", "acme", "700.00"})
	assert.Contains(t, records, []string{"Outstanding Invoices", "unavailable", "data unavailable for invoices"})
	assert.Contains(t, records, []string{"Notes", "No active alerts."})
}

func TestFilename(t *testing.T) {
	window := domain.TimeRange{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	generatedAt := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)

	assert.Equal(t,
		"financial-report_2026-08-01_2026-08-31_2026-08-31.txt",
		Filename(domain.ReportFinancial, window, generatedAt, FormatText))
	assert.Equal(t,
		"dashboard-report_2026-08-01_2026-08-31_2026-08-31.csv",
		Filename(domain.ReportDashboard, window, generatedAt, FormatCSV))
}
