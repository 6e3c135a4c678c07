package sources

import (
	"context"
	"strings"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

// Field resolution order for delivery records:
//
//	id:         id, delivery_id
//	order:      order_id, order
//	status:     status, delivery_status, state
//	dispatched: dispatched_at, shipped_at, created_at, date
//	delivered:  delivered_at, completed_at
var (
	deliveryIDFields         = []string{"id", "delivery_id"}
	deliveryOrderFields      = []string{"order_id", "order"}
	deliveryStatusFields     = []string{"status", "delivery_status", "state"}
	deliveryDispatchedFields = []string{"dispatched_at", "shipped_at", "created_at", "date"}
	deliveryDeliveredFields  = []string{"delivered_at", "completed_at"}
)

type deliveriesAdapter struct {
	store client.RecordLister
	path  string
}

func NewDeliveriesAdapter(store client.RecordLister) Adapter {
	return &deliveriesAdapter{store: store, path: "/api/deliveries"}
}

func (a *deliveriesAdapter) Domain() domain.Name { return domain.DomainDeliveries }

func (a *deliveriesAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.Delivery, 0, len(rows))
	for _, row := range rows {
		id, ok := pickString(row, deliveryIDFields...)
		if !ok {
			continue
		}
		orderID, _ := pickString(row, deliveryOrderFields...)
		status, _ := pickString(row, deliveryStatusFields...)
		dispatchedAt, _ := pickTime(row, deliveryDispatchedFields...)

		d := domain.Delivery{
			ID:           id,
			OrderID:      orderID,
			Status:       normalizeDeliveryStatus(status),
			DispatchedAt: dispatchedAt,
		}
		if deliveredAt, ok := pickTime(row, deliveryDeliveredFields...); ok {
			d.DeliveredAt = &deliveredAt
		}
		items = append(items, d)
	}

	snap.Deliveries = domain.Collected(items)
	return nil
}

func normalizeDeliveryStatus(s string) domain.DeliveryStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "delivered", "completed", "done":
		return domain.DeliveryDelivered
	case "in_transit", "in transit", "intransit", "shipped", "out_for_delivery":
		return domain.DeliveryInTransit
	case "failed", "returned", "cancelled", "canceled":
		return domain.DeliveryFailed
	default:
		return domain.DeliveryPending
	}
}
