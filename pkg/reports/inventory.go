package reports

import (
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// The inventory report schema, in order:
//  1. Inventory Summary (summary-cards), from materials
//  2. Low Stock Materials (table), from materials
//  3. Top Materials by Stock Value (table), from materials
//  4. Recent Material Orders (table), from material_orders
func composeInventory(snap *domain.Snapshot, ms domain.MetricSet) []domain.Section {
	return []domain.Section{
		inventorySummary(snap, ms),
		lowStockMaterials(snap, ms),
		topMaterials(snap, ms),
		recentMaterialOrders(snap),
	}
}

func inventorySummary(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Inventory Summary"
	if !snap.Materials.OK {
		return unavailableSection(title, domain.SectionSummaryCards, domain.DomainMaterials)
	}

	critical := 0
	for _, item := range ms.LowStock.Items {
		if item.Critical {
			critical++
		}
	}

	return domain.Section{
		Title: title,
		Kind:  domain.SectionSummaryCards,
		Cards: []domain.Card{
			withLabel(cardValue(ms.InventoryValue, money), "Inventory Value"),
			{Label: "Materials Tracked", Value: count(len(snap.Materials.Items))},
			{Label: "Low Stock", Value: count(len(ms.LowStock.Items))},
			{Label: "Critical Stock", Value: count(critical)},
		},
	}
}

func lowStockMaterials(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Low Stock Materials"
	if !ms.LowStock.Available {
		return unavailableSection(title, domain.SectionTable, domain.DomainMaterials)
	}

	table := &domain.Table{Columns: []string{"Material", "Current", "Minimum", "Severity"}}
	for _, item := range ms.LowStock.Items {
		severity := "low"
		if item.Critical {
			severity = "critical"
		}
		name := item.Name
		if name == "" {
			name = item.MaterialID
		}
		table.Rows = append(table.Rows, []string{
			name, money(item.Current), money(item.Minimum), severity,
		})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}

func topMaterials(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Top Materials by Stock Value"
	if !ms.TopMaterials.Available {
		return unavailableSection(title, domain.SectionTable, domain.DomainMaterials)
	}

	table := &domain.Table{Columns: []string{"Material", "Stock Value"}}
	for _, entry := range ms.TopMaterials.Items {
		label := entry.Label
		if label == "" {
			label = entry.Key
		}
		table.Rows = append(table.Rows, []string{label, money(entry.Value)})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}

func recentMaterialOrders(snap *domain.Snapshot) domain.Section {
	title := "Recent Material Orders"
	if !snap.MaterialOrders.OK {
		return unavailableSection(title, domain.SectionTable, domain.DomainMaterialOrders)
	}

	table := &domain.Table{Columns: []string{"Order", "Supplier", "Material", "Quantity", "Cost", "Status"}}
	for _, mo := range snap.MaterialOrders.Items {
		if len(table.Rows) == excerptRows {
			break
		}
		table.Rows = append(table.Rows, []string{
			mo.ID, mo.Supplier, mo.MaterialID, money(mo.Quantity), money(mo.Cost), mo.Status,
		})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}
