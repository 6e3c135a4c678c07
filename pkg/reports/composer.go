// Package reports assembles metrics, alerts and raw record excerpts
// into fixed-schema report documents. Composition is a pure mapping: a
// missing domain yields a section with an explicit "data unavailable"
// marker, never a silently dropped section or an error.
package reports

import (
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// SchemaVersion is bumped whenever a report's section layout changes, so
// downstream renderers can rely on a stable structure.
const SchemaVersion = 1

// excerptRows bounds raw record excerpts embedded in reports.
const excerptRows = 10

var ErrUnknownReportType = errors.New("unknown report type")

// Titles lists the available report types in presentation order.
func Titles() []struct {
	Type  domain.ReportType
	Title string
} {
	return []struct {
		Type  domain.ReportType
		Title string
	}{
		{domain.ReportDashboard, "Operations Dashboard"},
		{domain.ReportFinancial, "Financial Report"},
		{domain.ReportOrders, "Orders Report"},
		{domain.ReportInventory, "Inventory Report"},
		{domain.ReportDelivery, "Delivery Report"},
		{domain.ReportHR, "HR Report"},
	}
}

// Compose builds the report document for one type from one cycle's
// snapshot, metrics and alerts. GeneratedAt is supplied by the caller so
// the same inputs always produce the same document.
func Compose(
	reportType domain.ReportType,
	snap *domain.Snapshot,
	ms domain.MetricSet,
	alerts []domain.Alert,
	generatedAt time.Time,
) (domain.ReportDocument, error) {
	var title string
	var sections []domain.Section

	switch reportType {
	case domain.ReportFinancial:
		title = "Financial Report"
		sections = composeFinancial(snap, ms)
	case domain.ReportInventory:
		title = "Inventory Report"
		sections = composeInventory(snap, ms)
	case domain.ReportDelivery:
		title = "Delivery Report"
		sections = composeDelivery(snap, ms)
	case domain.ReportOrders:
		title = "Orders Report"
		sections = composeOrders(snap, ms)
	case domain.ReportHR:
		title = "HR Report"
		sections = composeHR(snap, ms)
	case domain.ReportDashboard:
		title = "Operations Dashboard"
		sections = composeDashboard(snap, ms, alerts)
	default:
		return domain.ReportDocument{}, fmt.Errorf("%w: %q", ErrUnknownReportType, reportType)
	}

	return domain.ReportDocument{
		Type:          reportType,
		Title:         title,
		SchemaVersion: SchemaVersion,
		Window:        snap.Window,
		GeneratedAt:   generatedAt,
		Sections:      sections,
	}, nil
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }

func count(n int) string { return fmt.Sprintf("%d", n) }

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// unavailableSection is the explicit marker emitted when a section's
// source domain failed to fetch.
func unavailableSection(title string, kind domain.SectionKind, names ...domain.Name) domain.Section {
	note := "data unavailable"
	if len(names) == 1 {
		note = fmt.Sprintf("data unavailable for %s", names[0])
	} else if len(names) > 1 {
		note = "data unavailable for"
		for i, n := range names {
			if i > 0 {
				note += ","
			}
			note += " " + string(n)
		}
	}
	return domain.Section{Title: title, Kind: kind, Unavailable: true, Note: note}
}

// sectionOK reports whether every required domain fetched successfully.
func sectionOK(snap *domain.Snapshot, names ...domain.Name) bool {
	for _, name := range names {
		if !snap.OK(name) {
			return false
		}
	}
	return true
}

func cardValue(v domain.Value, format func(float64) string) domain.Card {
	if !v.Available {
		return domain.Card{Value: "—", Hint: "data unavailable"}
	}
	return domain.Card{Value: format(v.Amount)}
}

func cardCount(c domain.Count) domain.Card {
	if !c.Available {
		return domain.Card{Value: "—", Hint: "data unavailable"}
	}
	return domain.Card{Value: count(c.N)}
}

func withLabel(card domain.Card, label string) domain.Card {
	card.Label = label
	return card
}
