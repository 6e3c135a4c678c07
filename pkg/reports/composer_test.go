package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

var (
	window = domain.TimeRange{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	generatedAt = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
)

// fullSnapshot returns a snapshot where every domain collected
// successfully, with a handful of records to excerpt.
func fullSnapshot() *domain.Snapshot {
	snap := &domain.Snapshot{CycleID: "cycle-1", Window: window}
	snap.Orders = domain.Collected([]domain.Order{
		{ID: "o1", Customer: "acme", Status: domain.OrderCompleted, Total: 700},
		{ID: "o2", Customer: "globex", Status: domain.OrderPending, Total: 300},
	})
	snap.Expenses = domain.Collected([]domain.Expense{
		{ID: "e1", Category: "rent", Amount: 200},
		{ID: "e2", Category: "supplies", Amount: 50},
		{ID: "e3", Category: "rent", Amount: 100},
	})
	snap.Invoices = domain.Collected([]domain.Invoice{
		{ID: "i1", Customer: "acme", Status: domain.InvoicePaid, Amount: 700},
		{ID: "i2", Customer: "globex", Status: domain.InvoiceUnpaid, Amount: 300, DueAt: window.To},
	})
	snap.Materials = domain.Collected([]domain.Material{
		{ID: "m1", Name: "Flour", CurrentStock: 2, MinimumStock: 10, UnitPrice: 1.5},
	})
	snap.MaterialOrders = domain.Collected([]domain.MaterialOrder{
		{ID: "mo1", Supplier: "millco", MaterialID: "m1", Quantity: 50, Cost: 75},
	})
	snap.Deliveries = domain.Collected([]domain.Delivery{
		{ID: "d1", OrderID: "o1", Status: domain.DeliveryDelivered},
	})
	snap.Employees = domain.Collected([]domain.Employee{
		{ID: "p1", Name: "Dana", Department: "kitchen", Salary: 2000, Active: true},
		{ID: "p2", Name: "Robin", Department: "kitchen", Salary: 1800, Active: true},
		{ID: "p3", Name: "Sam", Department: "front", Salary: 1500, Active: false},
	})
	snap.Attendance = domain.Collected([]domain.AttendanceEntry{
		{EmployeeID: "p1", Date: window.To, Status: domain.AttendancePresent},
	})
	snap.Notifications = domain.Collected([]domain.Notification{})
	return snap
}

func fullMetrics() domain.MetricSet {
	return domain.MetricSet{
		TotalRevenue:        domain.Value{Amount: 700, Available: true},
		TotalExpenses:       domain.Value{Amount: 350, Available: true},
		NetProfit:           domain.Value{Amount: 350, Available: true},
		AvgOrderValue:       domain.Value{Amount: 700, Available: true},
		RevenueGrowthPct:    domain.Value{Amount: 0, Available: true},
		CompletedOrders:     domain.Count{N: 1, Available: true},
		PendingOrders:       domain.Count{N: 1, Available: true},
		TopCustomers:        domain.Ranking{Items: []domain.RankedEntry{{Key: "acme", Label: "acme", Value: 700}}, Available: true},
		UnpaidInvoicesTotal: domain.Value{Amount: 300, Available: true},
		UnpaidInvoices:      domain.Count{N: 1, Available: true},
		LowStock:            domain.StockList{Items: []domain.StockItem{{MaterialID: "m1", Name: "Flour", Current: 2, Minimum: 10, Critical: true}}, Available: true},
		InventoryValue:      domain.Value{Amount: 3, Available: true},
		TopMaterials:        domain.Ranking{Items: []domain.RankedEntry{{Key: "m1", Label: "m1", Value: 75}}, Available: true},
		OnTimeRate:          domain.Value{Amount: 100, Available: true},
		DeliveriesInTransit: domain.Count{N: 0, Available: true},
		DeliveredCount:      domain.Count{N: 1, Available: true},
		TotalEmployees:      domain.Count{N: 2, Available: true},
		PresentToday:        domain.Count{N: 1, Available: true},
		AttendanceRate:      domain.Value{Amount: 100, Available: true},
	}
}

func sectionTitles(doc domain.ReportDocument) []string {
	titles := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		titles[i] = s.Title
	}
	return titles
}

func TestCompose(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := Compose("weekly", fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownReportType)
	})

	t.Run("document envelope", func(t *testing.T) {
		doc, err := Compose(domain.ReportFinancial, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)
		assert.Equal(t, domain.ReportFinancial, doc.Type)
		assert.Equal(t, "Financial Report", doc.Title)
		assert.Equal(t, SchemaVersion, doc.SchemaVersion)
		assert.Equal(t, window, doc.Window)
		assert.Equal(t, generatedAt, doc.GeneratedAt)
	})

	t.Run("same inputs produce the same document", func(t *testing.T) {
		snap := fullSnapshot()
		ms := fullMetrics()
		first, err := Compose(domain.ReportDashboard, snap, ms, nil, generatedAt)
		require.NoError(t, err)
		second, err := Compose(domain.ReportDashboard, snap, ms, nil, generatedAt)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestFinancialReport(t *testing.T) {
	t.Run("fixed section order", func(t *testing.T) {
		doc, err := Compose(domain.ReportFinancial, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Financial Summary", "Expense Breakdown", "Top Customers", "Outstanding Invoices",
		}, sectionTitles(doc))
	})

	t.Run("summary cards", func(t *testing.T) {
		doc, err := Compose(domain.ReportFinancial, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		summary := doc.Sections[0]
		require.Equal(t, domain.SectionSummaryCards, summary.Kind)
		require.Len(t, summary.Cards, 5)
		assert.Equal(t, domain.Card{Label: "Total Revenue", Value: "700.00"}, summary.Cards[0])
		assert.Equal(t, domain.Card{Label: "Net Profit", Value: "350.00"}, summary.Cards[2])
		assert.Equal(t, domain.Card{Label: "Revenue Growth", Value: "0.0%"}, summary.Cards[3])
	})

	t.Run("expense breakdown groups by category in first-seen order", func(t *testing.T) {
		doc, err := Compose(domain.ReportFinancial, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		breakdown := doc.Sections[1]
		require.NotNil(t, breakdown.Table)
		assert.Equal(t, [][]string{
			{"rent", "2", "300.00"},
			{"supplies", "1", "50.00"},
		}, breakdown.Table.Rows)
	})

	t.Run("outstanding invoices excludes paid", func(t *testing.T) {
		doc, err := Compose(domain.ReportFinancial, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		invoices := doc.Sections[3]
		require.NotNil(t, invoices.Table)
		require.Len(t, invoices.Table.Rows, 1)
		assert.Equal(t, "i2", invoices.Table.Rows[0][0])
	})

	t.Run("failed domain yields an explicit marker while the rest is populated", func(t *testing.T) {
		snap := fullSnapshot()
		snap.Invoices = domain.Result[domain.Invoice]{}

		doc, err := Compose(domain.ReportFinancial, snap, fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		invoices := doc.Sections[3]
		assert.True(t, invoices.Unavailable)
		assert.Equal(t, "data unavailable for invoices", invoices.Note)
		assert.Nil(t, invoices.Table)

		assert.False(t, doc.Sections[0].Unavailable)
		assert.False(t, doc.Sections[1].Unavailable)
	})
}

func TestHRReport(t *testing.T) {
	t.Run("fully populated", func(t *testing.T) {
		doc, err := Compose(domain.ReportHR, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)
		assert.Equal(t, []string{"Workforce Summary", "Departments"}, sectionTitles(doc))

		summary := doc.Sections[0]
		require.Len(t, summary.Cards, 3)
		assert.Equal(t, domain.Card{Label: "Active Employees", Value: "2"}, summary.Cards[0])
		assert.Equal(t, domain.Card{Label: "Attendance Rate", Value: "100.0%"}, summary.Cards[2])
	})

	t.Run("departments skip inactive employees", func(t *testing.T) {
		doc, err := Compose(domain.ReportHR, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		departments := doc.Sections[1]
		require.NotNil(t, departments.Table)
		assert.Equal(t, [][]string{{"kitchen", "2", "3800.00"}}, departments.Table.Rows)
	})

	t.Run("employees failure marks both sections", func(t *testing.T) {
		snap := fullSnapshot()
		snap.Employees = domain.Result[domain.Employee]{}

		doc, err := Compose(domain.ReportHR, snap, fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		assert.True(t, doc.Sections[0].Unavailable)
		assert.Equal(t, "data unavailable for employees", doc.Sections[0].Note)
		assert.True(t, doc.Sections[1].Unavailable)
	})

	t.Run("attendance failure names only the failed domain", func(t *testing.T) {
		snap := fullSnapshot()
		snap.Attendance = domain.Result[domain.AttendanceEntry]{}

		doc, err := Compose(domain.ReportHR, snap, fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		assert.True(t, doc.Sections[0].Unavailable)
		assert.Equal(t, "data unavailable for attendance", doc.Sections[0].Note)
		// Departments only needs employees.
		assert.False(t, doc.Sections[1].Unavailable)
	})
}

func TestDashboardReport(t *testing.T) {
	t.Run("no alerts renders a narrative", func(t *testing.T) {
		doc, err := Compose(domain.ReportDashboard, fullSnapshot(), fullMetrics(), nil, generatedAt)
		require.NoError(t, err)
		assert.Equal(t, []string{"Key Metrics", "Active Alerts", "Domain Status"}, sectionTitles(doc))

		alerts := doc.Sections[1]
		assert.Equal(t, domain.SectionNarrative, alerts.Kind)
		assert.Equal(t, "No active alerts.", alerts.Narrative)
	})

	t.Run("alerts render as a table", func(t *testing.T) {
		doc, err := Compose(domain.ReportDashboard, fullSnapshot(), fullMetrics(), []domain.Alert{
			{Priority: domain.PriorityCritical, Type: "inventory", Message: "1 material(s) critically below minimum stock", Domain: domain.DomainMaterials},
		}, generatedAt)
		require.NoError(t, err)

		alerts := doc.Sections[1]
		require.NotNil(t, alerts.Table)
		require.Len(t, alerts.Table.Rows, 1)
		assert.Equal(t, "inventory", alerts.Table.Rows[0][1])
	})

	t.Run("unavailable metrics render as marked cards", func(t *testing.T) {
		ms := fullMetrics()
		ms.TotalRevenue = domain.Value{}
		ms.NetProfit = domain.Value{}

		doc, err := Compose(domain.ReportDashboard, fullSnapshot(), ms, nil, generatedAt)
		require.NoError(t, err)

		cards := doc.Sections[0].Cards
		assert.Equal(t, domain.Card{Label: "Revenue", Value: "—", Hint: "data unavailable"}, cards[0])
		assert.Equal(t, domain.Card{Label: "Net Profit", Value: "—", Hint: "data unavailable"}, cards[1])
		assert.False(t, doc.Sections[0].Unavailable)
	})

	t.Run("domain status lists every domain in canonical order", func(t *testing.T) {
		snap := fullSnapshot()
		snap.MarkFailed(domain.DomainDeliveries)

		doc, err := Compose(domain.ReportDashboard, snap, fullMetrics(), nil, generatedAt)
		require.NoError(t, err)

		status := doc.Sections[2]
		require.NotNil(t, status.Table)
		require.Len(t, status.Table.Rows, len(domain.AllDomains()))
		assert.Equal(t, []string{"orders", "ok", "2"}, status.Table.Rows[0])
		assert.Equal(t, []string{"deliveries", "unavailable", "0"}, status.Table.Rows[5])
	})
}

func TestTitles(t *testing.T) {
	titles := Titles()
	require.Len(t, titles, 6)
	assert.Equal(t, domain.ReportDashboard, titles[0].Type)

	// Every listed type composes without error.
	for _, entry := range titles {
		_, err := Compose(entry.Type, fullSnapshot(), fullMetrics(), nil, generatedAt)
		assert.NoError(t, err)
	}
}
