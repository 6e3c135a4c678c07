// Package metrics derives every KPI from a snapshot. All computations
// are pure and deterministic: the same snapshot always produces the same
// metric set, record ordering never changes sums or groupings, and a
// failed source domain surfaces as Available=false rather than a fake
// zero.
package metrics

import (
	"time"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

const defaultTopN = 5

// Calculator computes metric sets from snapshots. TopN bounds the
// ranking metrics.
type Calculator struct {
	TopN int
}

func NewCalculator(topN int) *Calculator {
	if topN <= 0 {
		topN = defaultTopN
	}
	return &Calculator{TopN: topN}
}

// Compute derives the full metric set from one snapshot.
func (c *Calculator) Compute(snap *domain.Snapshot) domain.MetricSet {
	var ms domain.MetricSet
	c.computeOrders(snap, &ms)
	c.computeFinance(snap, &ms)
	c.computeInventory(snap, &ms)
	c.computeDelivery(snap, &ms)
	c.computeHR(snap, &ms)
	return ms
}

func (c *Calculator) computeOrders(snap *domain.Snapshot, ms *domain.MetricSet) {
	ok := snap.Orders.OK

	var revenue float64
	var completed, pending int
	var prevRevenue, currRevenue float64
	prevHalf, currHalf := snap.Window.Halves()
	customers := newAccumulator()

	for _, order := range snap.Orders.Items {
		switch order.Status {
		case domain.OrderCompleted:
			completed++
			revenue += order.Total
			customers.add(order.Customer, order.Customer, order.Total)
			if prevHalf.Contains(order.PlacedAt) {
				prevRevenue += order.Total
			} else if currHalf.Contains(order.PlacedAt) {
				currRevenue += order.Total
			}
		case domain.OrderPending:
			pending++
		}
	}

	ms.TotalRevenue = domain.Value{Amount: revenue, Available: ok}
	ms.CompletedOrders = domain.Count{N: completed, Available: ok}
	ms.PendingOrders = domain.Count{N: pending, Available: ok}
	ms.AvgOrderValue = domain.Value{Amount: SafeDiv(revenue, float64(completed)), Available: ok}
	ms.RevenueGrowthPct = domain.Value{Amount: GrowthPct(currRevenue, prevRevenue), Available: ok}
	ms.TopCustomers = domain.Ranking{Items: customers.top(c.TopN), Available: ok}
}

func (c *Calculator) computeFinance(snap *domain.Snapshot, ms *domain.MetricSet) {
	var expenses float64
	for _, e := range snap.Expenses.Items {
		expenses += e.Amount
	}
	ms.TotalExpenses = domain.Value{Amount: expenses, Available: snap.Expenses.OK}

	// Net profit needs both sides of the ledger.
	profitOK := snap.Orders.OK && snap.Expenses.OK
	ms.NetProfit = domain.Value{
		Amount:    ms.TotalRevenue.Amount - expenses,
		Available: profitOK,
	}

	var unpaidTotal float64
	var unpaidCount int
	for _, inv := range snap.Invoices.Items {
		if inv.Status != domain.InvoicePaid {
			unpaidTotal += inv.Amount
			unpaidCount++
		}
	}
	ms.UnpaidInvoicesTotal = domain.Value{Amount: unpaidTotal, Available: snap.Invoices.OK}
	ms.UnpaidInvoices = domain.Count{N: unpaidCount, Available: snap.Invoices.OK}
}

func (c *Calculator) computeInventory(snap *domain.Snapshot, ms *domain.MetricSet) {
	ok := snap.Materials.OK

	var low []domain.StockItem
	var inventoryValue float64
	materials := newAccumulator()

	for _, m := range snap.Materials.Items {
		inventoryValue += m.CurrentStock * m.UnitPrice
		materials.add(m.ID, m.Name, m.CurrentStock*m.UnitPrice)

		if m.CurrentStock <= m.MinimumStock {
			low = append(low, domain.StockItem{
				MaterialID: m.ID,
				Name:       m.Name,
				Current:    m.CurrentStock,
				Minimum:    m.MinimumStock,
				Critical:   m.CurrentStock <= 0.5*m.MinimumStock,
			})
		}
	}

	ms.LowStock = domain.StockList{Items: low, Available: ok}
	ms.InventoryValue = domain.Value{Amount: inventoryValue, Available: ok}
	ms.TopMaterials = domain.Ranking{Items: materials.top(c.TopN), Available: ok}
}

func (c *Calculator) computeDelivery(snap *domain.Snapshot, ms *domain.MetricSet) {
	ok := snap.Deliveries.OK

	// The on-time denominator counts only deliveries with a determinate
	// outcome (Delivered or Failed); pending and in-transit deliveries
	// are excluded until they resolve.
	var delivered, decided, inTransit int
	for _, d := range snap.Deliveries.Items {
		switch d.Status {
		case domain.DeliveryDelivered:
			delivered++
			decided++
		case domain.DeliveryFailed:
			decided++
		case domain.DeliveryInTransit:
			inTransit++
		}
	}

	ms.OnTimeRate = domain.Value{Amount: SafePct(float64(delivered), float64(decided)), Available: ok}
	ms.DeliveriesInTransit = domain.Count{N: inTransit, Available: ok}
	ms.DeliveredCount = domain.Count{N: delivered, Available: ok}
	ms.DecidedDeliveries = domain.Count{N: decided, Available: ok}
}

func (c *Calculator) computeHR(snap *domain.Snapshot, ms *domain.MetricSet) {
	active := make(map[string]bool)
	for _, e := range snap.Employees.Items {
		if e.Active {
			active[e.ID] = true
		}
	}
	ms.TotalEmployees = domain.Count{N: len(active), Available: snap.Employees.OK}

	// "Today" is the calendar day the window closes on, so the rate
	// stays a pure function of the snapshot.
	today := snap.Window.To

	// Each employee counts once regardless of how many check-ins the
	// feed recorded; rows for staff outside the active roster are
	// skipped when the roster was collected, keeping the rate within
	// [0, 100].
	present := make(map[string]bool)
	for _, a := range snap.Attendance.Items {
		if a.Status != domain.AttendancePresent || !sameDay(a.Date, today) {
			continue
		}
		if snap.Employees.OK && !active[a.EmployeeID] {
			continue
		}
		present[a.EmployeeID] = true
	}
	ms.PresentToday = domain.Count{N: len(present), Available: snap.Attendance.OK}

	rateOK := snap.Employees.OK && snap.Attendance.OK
	ms.AttendanceRate = domain.Value{
		Amount:    SafePct(float64(len(present)), float64(len(active))),
		Available: rateOK,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
