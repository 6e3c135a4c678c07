package domain

// Value is a derived numeric metric. Available is false when the source
// domain the metric depends on failed to fetch: the amount is then
// meaningless and must be rendered as "data unavailable", never as a
// real zero.
type Value struct {
	Amount    float64
	Available bool
}

// Count is a derived integer metric with the same availability contract
// as Value.
type Count struct {
	N         int
	Available bool
}

// StockItem is one material flagged by the low-stock metric. Critical is
// set when the current stock is at or below half the minimum level.
type StockItem struct {
	MaterialID string
	Name       string
	Current    float64
	Minimum    float64
	Critical   bool
}

// RankedEntry is one row of a top-N ranking, ordered by Value descending
// with ties broken by first appearance in the snapshot.
type RankedEntry struct {
	Key   string
	Label string
	Value float64
}

// StockList is a list metric over materials.
type StockList struct {
	Items     []StockItem
	Available bool
}

// Ranking is a top-N list metric.
type Ranking struct {
	Items     []RankedEntry
	Available bool
}

// MetricSet is every KPI derived from one snapshot. It is a pure,
// deterministic function of the snapshot: recomputing from the same
// snapshot yields bit-identical values.
type MetricSet struct {
	// Orders / finance
	TotalRevenue     Value
	TotalExpenses    Value
	NetProfit        Value
	AvgOrderValue    Value
	RevenueGrowthPct Value
	CompletedOrders  Count
	PendingOrders    Count
	TopCustomers     Ranking

	// Invoices
	UnpaidInvoicesTotal Value
	UnpaidInvoices      Count

	// Inventory
	LowStock       StockList
	InventoryValue Value
	TopMaterials   Ranking

	// Delivery
	OnTimeRate          Value
	DeliveriesInTransit Count
	DeliveredCount      Count
	// DecidedDeliveries counts deliveries with a determinate outcome,
	// the denominator of OnTimeRate.
	DecidedDeliveries Count

	// HR
	TotalEmployees Count
	PresentToday   Count
	AttendanceRate Value
}
