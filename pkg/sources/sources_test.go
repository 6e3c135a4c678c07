package sources

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

type stubLister struct {
	rows []client.Row
	err  error
	path string
}

func (s *stubLister) List(_ context.Context, path string, _ domain.TimeRange) ([]client.Row, error) {
	s.path = path
	return s.rows, s.err
}

func testWindow() domain.TimeRange {
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return domain.TimeRange{From: to.AddDate(0, 0, -30), To: to}
}

func TestOrdersAdapter(t *testing.T) {
	t.Run("resolves field aliases in order", func(t *testing.T) {
		lister := &stubLister{rows: []client.Row{
			// total_amount outranks total when both are present.
			{"id": "o1", "total_amount": 120.0, "total": 999.0, "status": "Completed", "customer_name": "acme"},
			{"order_id": "o2", "grand_total": 55.5, "order_status": "pending", "client": "globex"},
		}}

		snap := &domain.Snapshot{Window: testWindow()}
		require.NoError(t, NewOrdersAdapter(lister).Fetch(context.Background(), testWindow(), snap))

		require.True(t, snap.Orders.OK)
		require.Len(t, snap.Orders.Items, 2)
		assert.Equal(t, "/api/orders", lister.path)

		assert.Equal(t, 120.0, snap.Orders.Items[0].Total)
		assert.Equal(t, domain.OrderCompleted, snap.Orders.Items[0].Status)
		assert.Equal(t, "acme", snap.Orders.Items[0].Customer)

		assert.Equal(t, "o2", snap.Orders.Items[1].ID)
		assert.Equal(t, 55.5, snap.Orders.Items[1].Total)
		assert.Equal(t, domain.OrderPending, snap.Orders.Items[1].Status)
		assert.Equal(t, "globex", snap.Orders.Items[1].Customer)
	})

	t.Run("skips rows without an id", func(t *testing.T) {
		lister := &stubLister{rows: []client.Row{
			{"total": 10.0},
			{"id": "o1", "total": 20.0},
		}}

		snap := &domain.Snapshot{Window: testWindow()}
		require.NoError(t, NewOrdersAdapter(lister).Fetch(context.Background(), testWindow(), snap))
		require.Len(t, snap.Orders.Items, 1)
		assert.Equal(t, "o1", snap.Orders.Items[0].ID)
	})

	t.Run("wraps transport failure as unavailable", func(t *testing.T) {
		lister := &stubLister{err: fmt.Errorf("connection refused")}

		snap := &domain.Snapshot{Window: testWindow()}
		err := NewOrdersAdapter(lister).Fetch(context.Background(), testWindow(), snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.False(t, snap.Orders.OK)
	})

	t.Run("empty response is ok, not failed", func(t *testing.T) {
		lister := &stubLister{rows: []client.Row{}}

		snap := &domain.Snapshot{Window: testWindow()}
		require.NoError(t, NewOrdersAdapter(lister).Fetch(context.Background(), testWindow(), snap))
		assert.True(t, snap.Orders.OK)
		assert.Empty(t, snap.Orders.Items)
	})
}

func TestMaterialsAdapter(t *testing.T) {
	lister := &stubLister{rows: []client.Row{
		{"sku": "m1", "material_name": "Flour", "current_stock": 2.0, "minimum_stock_level": 10.0, "unit_price": 1.5},
		{"id": "m2", "name": "Sugar", "stock": "8", "min_stock": 10.0, "price": 2.0},
	}}

	snap := &domain.Snapshot{Window: testWindow()}
	require.NoError(t, NewMaterialsAdapter(lister).Fetch(context.Background(), testWindow(), snap))

	require.Len(t, snap.Materials.Items, 2)
	assert.Equal(t, "m1", snap.Materials.Items[0].ID)
	assert.Equal(t, 2.0, snap.Materials.Items[0].CurrentStock)
	assert.Equal(t, 10.0, snap.Materials.Items[0].MinimumStock)

	// Numeric strings are parsed.
	assert.Equal(t, 8.0, snap.Materials.Items[1].CurrentStock)
}

func TestDeliveriesAdapter(t *testing.T) {
	lister := &stubLister{rows: []client.Row{
		{"id": "d1", "status": "Delivered", "delivered_at": "2026-08-20T10:00:00Z"},
		{"id": "d2", "delivery_status": "in_transit"},
		{"id": "d3", "state": "returned"},
	}}

	snap := &domain.Snapshot{Window: testWindow()}
	require.NoError(t, NewDeliveriesAdapter(lister).Fetch(context.Background(), testWindow(), snap))

	require.Len(t, snap.Deliveries.Items, 3)
	assert.Equal(t, domain.DeliveryDelivered, snap.Deliveries.Items[0].Status)
	require.NotNil(t, snap.Deliveries.Items[0].DeliveredAt)
	assert.Equal(t, domain.DeliveryInTransit, snap.Deliveries.Items[1].Status)
	assert.Equal(t, domain.DeliveryFailed, snap.Deliveries.Items[2].Status)
	assert.Nil(t, snap.Deliveries.Items[2].DeliveredAt)
}

func TestEmployeesAdapter(t *testing.T) {
	lister := &stubLister{rows: []client.Row{
		{"employee_id": "p1", "full_name": "Dana", "dept": "kitchen", "is_active": false},
		{"id": "p2", "name": "Robin", "department": "front"},
	}}

	snap := &domain.Snapshot{Window: testWindow()}
	require.NoError(t, NewEmployeesAdapter(lister).Fetch(context.Background(), testWindow(), snap))

	require.Len(t, snap.Employees.Items, 2)
	assert.False(t, snap.Employees.Items[0].Active)
	// No active flag defaults to active.
	assert.True(t, snap.Employees.Items[1].Active)
}

func TestAttendanceAdapter(t *testing.T) {
	lister := &stubLister{rows: []client.Row{
		{"employee_id": "p1", "date": "2026-08-31", "status": "present"},
		{"staff_id": "p2", "attendance_date": "2026-08-31", "attendance_status": "on_leave"},
	}}

	snap := &domain.Snapshot{Window: testWindow()}
	require.NoError(t, NewAttendanceAdapter(lister).Fetch(context.Background(), testWindow(), snap))

	require.Len(t, snap.Attendance.Items, 2)
	assert.Equal(t, domain.AttendancePresent, snap.Attendance.Items[0].Status)
	assert.Equal(t, domain.AttendanceLeave, snap.Attendance.Items[1].Status)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	lister := &stubLister{}

	require.NoError(t, registry.Register(NewOrdersAdapter(lister)))
	require.NoError(t, registry.Register(NewExpensesAdapter(lister)))

	t.Run("rejects duplicates", func(t *testing.T) {
		err := registry.Register(NewOrdersAdapter(lister))
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("lists domains in canonical order", func(t *testing.T) {
		assert.Equal(t, []domain.Name{domain.DomainOrders, domain.DomainExpenses}, registry.Domains())
	})

	t.Run("lookup", func(t *testing.T) {
		adapter, ok := registry.Get(domain.DomainOrders)
		require.True(t, ok)
		assert.Equal(t, domain.DomainOrders, adapter.Domain())

		_, ok = registry.Get(domain.DomainDeliveries)
		assert.False(t, ok)
	})
}
