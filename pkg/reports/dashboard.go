package reports

import (
	"fmt"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// The dashboard is just another composition over the same cycle:
//  1. Key Metrics (summary-cards)
//  2. Active Alerts (table or narrative when empty)
//  3. Domain Status (table)
//
// Unavailable metrics render as marked cards rather than failing the
// section, so a partially degraded cycle still yields a dashboard.
func composeDashboard(snap *domain.Snapshot, ms domain.MetricSet, alerts []domain.Alert) []domain.Section {
	return []domain.Section{
		keyMetrics(ms),
		activeAlerts(alerts),
		domainStatus(snap),
	}
}

func keyMetrics(ms domain.MetricSet) domain.Section {
	return domain.Section{
		Title: "Key Metrics",
		Kind:  domain.SectionSummaryCards,
		Cards: []domain.Card{
			withLabel(cardValue(ms.TotalRevenue, money), "Revenue"),
			withLabel(cardValue(ms.NetProfit, money), "Net Profit"),
			withLabel(cardCount(ms.PendingOrders), "Pending Orders"),
			withLabel(cardCount(domain.Count{N: len(ms.LowStock.Items), Available: ms.LowStock.Available}), "Low Stock"),
			withLabel(cardValue(ms.OnTimeRate, pct), "On-Time Rate"),
			withLabel(cardValue(ms.AttendanceRate, pct), "Attendance"),
		},
	}
}

func activeAlerts(alerts []domain.Alert) domain.Section {
	title := "Active Alerts"
	if len(alerts) == 0 {
		return domain.Section{
			Title:     title,
			Kind:      domain.SectionNarrative,
			Narrative: "No active alerts.",
		}
	}

	table := &domain.Table{Columns: []string{"Priority", "Type", "Message", "Domain"}}
	for _, a := range alerts {
		table.Rows = append(table.Rows, []string{
			string(a.Priority), a.Type, a.Message, string(a.Domain),
		})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}

func domainStatus(snap *domain.Snapshot) domain.Section {
	table := &domain.Table{Columns: []string{"Domain", "Status", "Records"}}
	for _, name := range domain.AllDomains() {
		status := "ok"
		if !snap.OK(name) {
			status = "unavailable"
		}
		table.Rows = append(table.Rows, []string{
			string(name), status, fmt.Sprintf("%d", snap.Count(name)),
		})
	}
	return domain.Section{Title: "Domain Status", Kind: domain.SectionTable, Table: table}
}
