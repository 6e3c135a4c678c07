package sources

import (
	"context"
	"strings"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

// Field resolution order for order records:
//
//	id:       id, order_id, order_number
//	customer: customer_name, customer, client_name, client
//	status:   status, order_status, state
//	total:    total_amount, total, amount, grand_total
//	placed:   placed_at, created_at, order_date, date
var (
	orderIDFields       = []string{"id", "order_id", "order_number"}
	orderCustomerFields = []string{"customer_name", "customer", "client_name", "client"}
	orderStatusFields   = []string{"status", "order_status", "state"}
	orderTotalFields    = []string{"total_amount", "total", "amount", "grand_total"}
	orderPlacedFields   = []string{"placed_at", "created_at", "order_date", "date"}
)

type ordersAdapter struct {
	store client.RecordLister
	path  string
}

func NewOrdersAdapter(store client.RecordLister) Adapter {
	return &ordersAdapter{store: store, path: "/api/orders"}
}

func (a *ordersAdapter) Domain() domain.Name { return domain.DomainOrders }

func (a *ordersAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		id, ok := pickString(row, orderIDFields...)
		if !ok {
			continue
		}
		total, _ := pickFloat(row, orderTotalFields...)
		customer, _ := pickString(row, orderCustomerFields...)
		status, _ := pickString(row, orderStatusFields...)
		placedAt, _ := pickTime(row, orderPlacedFields...)

		items = append(items, domain.Order{
			ID:       id,
			Customer: customer,
			Status:   normalizeOrderStatus(status),
			Total:    total,
			PlacedAt: placedAt,
		})
	}

	snap.Orders = domain.Collected(items)
	return nil
}

func normalizeOrderStatus(s string) domain.OrderStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed", "complete", "done", "fulfilled":
		return domain.OrderCompleted
	case "cancelled", "canceled", "rejected":
		return domain.OrderCancelled
	default:
		return domain.OrderPending
	}
}
