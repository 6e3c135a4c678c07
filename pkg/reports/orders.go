package reports

import (
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// The orders report schema, in order:
//  1. Orders Summary (summary-cards), from orders
//  2. Top Customers (table), from orders
//  3. Recent Orders (table), from orders
func composeOrders(snap *domain.Snapshot, ms domain.MetricSet) []domain.Section {
	return []domain.Section{
		ordersSummary(snap, ms),
		topCustomers(snap, ms),
		recentOrders(snap),
	}
}

func ordersSummary(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Orders Summary"
	if !snap.Orders.OK {
		return unavailableSection(title, domain.SectionSummaryCards, domain.DomainOrders)
	}

	return domain.Section{
		Title: title,
		Kind:  domain.SectionSummaryCards,
		Cards: []domain.Card{
			withLabel(cardCount(ms.CompletedOrders), "Completed"),
			withLabel(cardCount(ms.PendingOrders), "Pending"),
			withLabel(cardValue(ms.TotalRevenue, money), "Revenue"),
			withLabel(cardValue(ms.AvgOrderValue, money), "Avg Order Value"),
			withLabel(cardValue(ms.RevenueGrowthPct, pct), "Growth"),
		},
	}
}

func recentOrders(snap *domain.Snapshot) domain.Section {
	title := "Recent Orders"
	if !snap.Orders.OK {
		return unavailableSection(title, domain.SectionTable, domain.DomainOrders)
	}

	table := &domain.Table{Columns: []string{"Order", "Customer", "Status", "Total", "Placed"}}
	for _, o := range snap.Orders.Items {
		if len(table.Rows) == excerptRows {
			break
		}
		table.Rows = append(table.Rows, []string{
			o.ID, o.Customer, string(o.Status), money(o.Total), day(o.PlacedAt),
		})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}
