package domain

import "time"

// Name identifies one operational domain served by the console backend.
type Name string

const (
	DomainOrders         Name = "orders"
	DomainExpenses       Name = "expenses"
	DomainInvoices       Name = "invoices"
	DomainMaterials      Name = "materials"
	DomainMaterialOrders Name = "material_orders"
	DomainDeliveries     Name = "deliveries"
	DomainEmployees      Name = "employees"
	DomainAttendance     Name = "attendance"
	DomainNotifications  Name = "notifications"
)

// AllDomains lists every domain in a fixed order. Collection, reporting
// and status payloads all iterate this slice so output ordering is stable.
func AllDomains() []Name {
	return []Name{
		DomainOrders,
		DomainExpenses,
		DomainInvoices,
		DomainMaterials,
		DomainMaterialOrders,
		DomainDeliveries,
		DomainEmployees,
		DomainAttendance,
		DomainNotifications,
	}
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

type Order struct {
	ID       string
	Customer string
	Status   OrderStatus
	Total    float64
	PlacedAt time.Time
}

type Expense struct {
	ID         string
	Category   string
	Amount     float64
	IncurredAt time.Time
}

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceUnpaid  InvoiceStatus = "Unpaid"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

type Invoice struct {
	ID       string
	Customer string
	Status   InvoiceStatus
	Amount   float64
	IssuedAt time.Time
	DueAt    time.Time
}

type Material struct {
	ID           string
	Name         string
	Unit         string
	CurrentStock float64
	MinimumStock float64
	UnitPrice    float64
}

type MaterialOrder struct {
	ID         string
	Supplier   string
	MaterialID string
	Quantity   float64
	Cost       float64
	Status     string
	OrderedAt  time.Time
}

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliveryInTransit DeliveryStatus = "InTransit"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryFailed    DeliveryStatus = "Failed"
)

type Delivery struct {
	ID           string
	OrderID      string
	Status       DeliveryStatus
	DispatchedAt time.Time
	DeliveredAt  *time.Time
}

type Employee struct {
	ID         string
	Name       string
	Role       string
	Department string
	Salary     float64
	Active     bool
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLeave   AttendanceStatus = "Leave"
)

type AttendanceEntry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     AttendanceStatus
}

// Notification is one entry of the optional pre-computed business
// notifications feed.
type Notification struct {
	ID       string
	Type     string
	Priority string
	Message  string
	Domain   string
}
