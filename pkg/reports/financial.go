package reports

import (
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// The financial report schema, in order:
//  1. Financial Summary (summary-cards), from orders + expenses
//  2. Expense Breakdown (table), from expenses
//  3. Top Customers (table), from orders
//  4. Outstanding Invoices (table), from invoices
func composeFinancial(snap *domain.Snapshot, ms domain.MetricSet) []domain.Section {
	return []domain.Section{
		financialSummary(snap, ms),
		expenseBreakdown(snap),
		topCustomers(snap, ms),
		outstandingInvoices(snap),
	}
}

func financialSummary(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Financial Summary"
	if !sectionOK(snap, domain.DomainOrders, domain.DomainExpenses) {
		var failed []domain.Name
		for _, name := range []domain.Name{domain.DomainOrders, domain.DomainExpenses} {
			if !snap.OK(name) {
				failed = append(failed, name)
			}
		}
		return unavailableSection(title, domain.SectionSummaryCards, failed...)
	}

	return domain.Section{
		Title: title,
		Kind:  domain.SectionSummaryCards,
		Cards: []domain.Card{
			withLabel(cardValue(ms.TotalRevenue, money), "Total Revenue"),
			withLabel(cardValue(ms.TotalExpenses, money), "Total Expenses"),
			withLabel(cardValue(ms.NetProfit, money), "Net Profit"),
			withLabel(cardValue(ms.RevenueGrowthPct, pct), "Revenue Growth"),
			withLabel(cardValue(ms.UnpaidInvoicesTotal, money), "Unpaid Invoices"),
		},
	}
}

func expenseBreakdown(snap *domain.Snapshot) domain.Section {
	title := "Expense Breakdown"
	if !snap.Expenses.OK {
		return unavailableSection(title, domain.SectionTable, domain.DomainExpenses)
	}

	// Group by category preserving first-seen order.
	index := make(map[string]int)
	type group struct {
		category string
		total    float64
		items    int
	}
	var groups []group
	for _, e := range snap.Expenses.Items {
		category := e.Category
		if category == "" {
			category = "uncategorized"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, group{category: category})
		}
		groups[i].total += e.Amount
		groups[i].items++
	}

	table := &domain.Table{Columns: []string{"Category", "Entries", "Total"}}
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{g.category, count(g.items), money(g.total)})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}

func topCustomers(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Top Customers"
	if !ms.TopCustomers.Available {
		return unavailableSection(title, domain.SectionTable, domain.DomainOrders)
	}

	table := &domain.Table{Columns: []string{"Customer", "Revenue"}}
	for _, entry := range ms.TopCustomers.Items {
		table.Rows = append(table.Rows, []string{entry.Label, money(entry.Value)})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}

func outstandingInvoices(snap *domain.Snapshot) domain.Section {
	title := "Outstanding Invoices"
	if !snap.Invoices.OK {
		return unavailableSection(title, domain.SectionTable, domain.DomainInvoices)
	}

	table := &domain.Table{Columns: []string{"Invoice", "Customer", "Status", "Amount", "Due"}}
	for _, inv := range snap.Invoices.Items {
		if inv.Status == domain.InvoicePaid {
			continue
		}
		if len(table.Rows) == excerptRows {
			break
		}
		table.Rows = append(table.Rows, []string{
			inv.ID, inv.Customer, string(inv.Status), money(inv.Amount), day(inv.DueAt),
		})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}
