package reports

import (
	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// The delivery report schema, in order:
//  1. Delivery Summary (summary-cards), from deliveries
//  2. Deliveries (table), from deliveries
func composeDelivery(snap *domain.Snapshot, ms domain.MetricSet) []domain.Section {
	return []domain.Section{
		deliverySummary(snap, ms),
		deliveryExcerpt(snap),
	}
}

func deliverySummary(snap *domain.Snapshot, ms domain.MetricSet) domain.Section {
	title := "Delivery Summary"
	if !snap.Deliveries.OK {
		return unavailableSection(title, domain.SectionSummaryCards, domain.DomainDeliveries)
	}

	return domain.Section{
		Title: title,
		Kind:  domain.SectionSummaryCards,
		Cards: []domain.Card{
			withLabel(cardValue(ms.OnTimeRate, pct), "On-Time Rate"),
			withLabel(cardCount(ms.DeliveredCount), "Delivered"),
			withLabel(cardCount(ms.DeliveriesInTransit), "In Transit"),
			{Label: "Total Deliveries", Value: count(len(snap.Deliveries.Items))},
		},
	}
}

func deliveryExcerpt(snap *domain.Snapshot) domain.Section {
	title := "Deliveries"
	if !snap.Deliveries.OK {
		return unavailableSection(title, domain.SectionTable, domain.DomainDeliveries)
	}

	table := &domain.Table{Columns: []string{"Delivery", "Order", "Status", "Dispatched", "Delivered"}}
	for _, d := range snap.Deliveries.Items {
		if len(table.Rows) == excerptRows {
			break
		}
		delivered := ""
		if d.DeliveredAt != nil {
			delivered = day(*d.DeliveredAt)
		}
		table.Rows = append(table.Rows, []string{
			d.ID, d.OrderID, string(d.Status), day(d.DispatchedAt), delivered,
		})
	}
	return domain.Section{Title: title, Kind: domain.SectionTable, Table: table}
}
