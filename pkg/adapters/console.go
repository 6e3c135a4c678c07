package adapters

import (
	"github.com/de-tools/ops-atlas/pkg/models/api"
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// MapMetricSetToApi flattens a metric set into the dashboard payload.
// The order is fixed so one snapshot always produces the same payload.
func MapMetricSetToApi(ms domain.MetricSet) []api.Metric {
	return []api.Metric{
		mapValue("total_revenue", "currency", ms.TotalRevenue),
		mapValue("total_expenses", "currency", ms.TotalExpenses),
		mapValue("net_profit", "currency", ms.NetProfit),
		mapValue("avg_order_value", "currency", ms.AvgOrderValue),
		mapValue("revenue_growth_pct", "percent", ms.RevenueGrowthPct),
		mapCount("completed_orders", ms.CompletedOrders),
		mapCount("pending_orders", ms.PendingOrders),
		mapValue("unpaid_invoices_total", "currency", ms.UnpaidInvoicesTotal),
		mapCount("unpaid_invoices", ms.UnpaidInvoices),
		mapCount("low_stock_items", domain.Count{N: len(ms.LowStock.Items), Available: ms.LowStock.Available}),
		mapValue("inventory_value", "currency", ms.InventoryValue),
		mapValue("on_time_rate", "percent", ms.OnTimeRate),
		mapCount("deliveries_in_transit", ms.DeliveriesInTransit),
		mapCount("total_employees", ms.TotalEmployees),
		mapCount("present_today", ms.PresentToday),
		mapValue("attendance_rate", "percent", ms.AttendanceRate),
	}
}

func mapValue(name, unit string, v domain.Value) api.Metric {
	m := api.Metric{Name: name, Unit: unit, Available: v.Available}
	if v.Available {
		amount := v.Amount
		m.Value = &amount
	}
	return m
}

func mapCount(name string, c domain.Count) api.Metric {
	m := api.Metric{Name: name, Available: c.Available}
	if c.Available {
		n := float64(c.N)
		m.Value = &n
	}
	return m
}

func MapAlertDomainToApi(a domain.Alert) api.Alert {
	return api.Alert{
		ID:       a.ID,
		Type:     a.Type,
		Priority: string(a.Priority),
		Message:  a.Message,
		Domain:   string(a.Domain),
		Source:   string(a.Source),
	}
}

func MapAlertsDomainToApi(alerts []domain.Alert) []api.Alert {
	out := make([]api.Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, MapAlertDomainToApi(a))
	}
	return out
}

// MapSnapshotStatusToApi reports the per-domain fetch outcomes in the
// canonical domain order, limited to the domains the cycle collected.
func MapSnapshotStatusToApi(snap *domain.Snapshot, collected []domain.Name) []api.DomainStatus {
	requested := make(map[domain.Name]bool, len(collected))
	for _, name := range collected {
		requested[name] = true
	}

	var out []api.DomainStatus
	for _, name := range domain.AllDomains() {
		if len(collected) > 0 && !requested[name] {
			continue
		}
		out = append(out, api.DomainStatus{
			Domain:  string(name),
			OK:      snap.OK(name),
			Records: snap.Count(name),
		})
	}
	return out
}

func MapReportDomainToApi(doc domain.ReportDocument) api.Report {
	report := api.Report{
		Type:          string(doc.Type),
		Title:         doc.Title,
		SchemaVersion: doc.SchemaVersion,
		From:          doc.Window.From,
		To:            doc.Window.To,
		GeneratedAt:   doc.GeneratedAt,
		Sections:      []api.Section{},
	}
	for _, s := range doc.Sections {
		report.Sections = append(report.Sections, mapSection(s))
	}
	return report
}

func mapSection(s domain.Section) api.Section {
	section := api.Section{
		Title:       s.Title,
		Kind:        string(s.Kind),
		Unavailable: s.Unavailable,
		Note:        s.Note,
		Narrative:   s.Narrative,
	}
	for _, c := range s.Cards {
		section.Cards = append(section.Cards, api.Card{Label: c.Label, Value: c.Value, Hint: c.Hint})
	}
	if s.Table != nil {
		section.Table = &api.Table{Columns: s.Table.Columns, Rows: s.Table.Rows}
	}
	return section
}
