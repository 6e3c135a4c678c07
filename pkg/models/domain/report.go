package domain

import "time"

// ReportType names one report composition.
type ReportType string

const (
	ReportFinancial ReportType = "financial"
	ReportInventory ReportType = "inventory"
	ReportDelivery  ReportType = "delivery"
	ReportOrders    ReportType = "orders"
	ReportHR        ReportType = "hr"
	ReportDashboard ReportType = "dashboard"
)

// SectionKind tells the renderer how to lay a section out.
type SectionKind string

const (
	SectionSummaryCards SectionKind = "summary-cards"
	SectionTable        SectionKind = "table"
	SectionNarrative    SectionKind = "narrative"
)

// Card is one labeled value in a summary-cards section.
type Card struct {
	Label string
	Value string
	Hint  string
}

// Table is the payload of a table section.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Section is one block of a report document. When Unavailable is set the
// section's domain failed to fetch; Note carries the marker text and the
// payload fields are empty.
type Section struct {
	Title       string
	Kind        SectionKind
	Unavailable bool
	Note        string

	Cards     []Card
	Table     *Table
	Narrative string
}

// ReportDocument is a fully composed report: a fixed, versioned sequence
// of sections ready for display or export. GeneratedAt is supplied by
// the caller so renders are reproducible.
type ReportDocument struct {
	Type          ReportType
	Title         string
	SchemaVersion int
	Window        TimeRange
	GeneratedAt   time.Time
	Sections      []Section
}
