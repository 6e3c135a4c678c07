package domain

import "time"

// TimeRange is the aggregation window of one cycle.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Days returns the window length in whole days, never below 1.
func (r TimeRange) Days() int {
	d := int(r.To.Sub(r.From).Hours() / 24)
	if d < 1 {
		return 1
	}
	return d
}

// Halves splits the window into a previous and a current half of equal
// length. Growth metrics compare the two halves so they stay a pure
// function of a single snapshot.
func (r TimeRange) Halves() (prev TimeRange, curr TimeRange) {
	mid := r.From.Add(r.To.Sub(r.From) / 2)
	return TimeRange{From: r.From, To: mid}, TimeRange{From: mid, To: r.To}
}

// Contains reports whether t falls inside the window. The lower bound is
// inclusive, the upper bound exclusive.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// Result holds one domain's records for a snapshot. OK distinguishes a
// genuinely empty domain from a failed fetch: a failed fetch leaves
// Items empty and OK false.
type Result[R any] struct {
	Items []R
	OK    bool
}

// Collected wraps a successful fetch result.
func Collected[R any](items []R) Result[R] {
	return Result[R]{Items: items, OK: true}
}

// Principal is the explicit caller context for a cycle: who asks, and
// which domains they may read. An empty Domains slice means all.
type Principal struct {
	User    string
	Role    string
	Domains []Name
}

// Allowed reports whether the principal may collect the given domain.
func (p Principal) Allowed(name Name) bool {
	if len(p.Domains) == 0 {
		return true
	}
	for _, d := range p.Domains {
		if d == name {
			return true
		}
	}
	return false
}

// Snapshot is the immutable consolidated view across all domains for one
// aggregation cycle. It is built once by the collector and never mutated
// afterwards; every downstream stage is a pure function of it.
type Snapshot struct {
	CycleID string
	Window  TimeRange
	TakenAt time.Time

	Orders         Result[Order]
	Expenses       Result[Expense]
	Invoices       Result[Invoice]
	Materials      Result[Material]
	MaterialOrders Result[MaterialOrder]
	Deliveries     Result[Delivery]
	Employees      Result[Employee]
	Attendance     Result[AttendanceEntry]
	Notifications  Result[Notification]
}

// MarkFailed records a failed fetch for the named domain. Each collector
// goroutine touches only its own domain's slot, so no locking is needed.
func (s *Snapshot) MarkFailed(name Name) {
	switch name {
	case DomainOrders:
		s.Orders = Result[Order]{}
	case DomainExpenses:
		s.Expenses = Result[Expense]{}
	case DomainInvoices:
		s.Invoices = Result[Invoice]{}
	case DomainMaterials:
		s.Materials = Result[Material]{}
	case DomainMaterialOrders:
		s.MaterialOrders = Result[MaterialOrder]{}
	case DomainDeliveries:
		s.Deliveries = Result[Delivery]{}
	case DomainEmployees:
		s.Employees = Result[Employee]{}
	case DomainAttendance:
		s.Attendance = Result[AttendanceEntry]{}
	case DomainNotifications:
		s.Notifications = Result[Notification]{}
	}
}

// OK reports whether the named domain's fetch succeeded.
func (s *Snapshot) OK(name Name) bool {
	switch name {
	case DomainOrders:
		return s.Orders.OK
	case DomainExpenses:
		return s.Expenses.OK
	case DomainInvoices:
		return s.Invoices.OK
	case DomainMaterials:
		return s.Materials.OK
	case DomainMaterialOrders:
		return s.MaterialOrders.OK
	case DomainDeliveries:
		return s.Deliveries.OK
	case DomainEmployees:
		return s.Employees.OK
	case DomainAttendance:
		return s.Attendance.OK
	case DomainNotifications:
		return s.Notifications.OK
	}
	return false
}

// Count returns the number of records held for the named domain.
func (s *Snapshot) Count(name Name) int {
	switch name {
	case DomainOrders:
		return len(s.Orders.Items)
	case DomainExpenses:
		return len(s.Expenses.Items)
	case DomainInvoices:
		return len(s.Invoices.Items)
	case DomainMaterials:
		return len(s.Materials.Items)
	case DomainMaterialOrders:
		return len(s.MaterialOrders.Items)
	case DomainDeliveries:
		return len(s.Deliveries.Items)
	case DomainEmployees:
		return len(s.Employees.Items)
	case DomainAttendance:
		return len(s.Attendance.Items)
	case DomainNotifications:
		return len(s.Notifications.Items)
	}
	return 0
}
