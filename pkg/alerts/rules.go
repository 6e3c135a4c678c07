package alerts

import (
	"fmt"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

// Rule maps a named condition over the metric set to an alert template.
// Expression is a CEL boolean over three activation variables:
//
//	metrics:   map[string]double, every scalar metric by name
//	available: map[string]bool, whether each metric could be computed
//	ok:        map[string]bool, per-domain fetch success
//
// Message is a text/template with `metric` and `money` helper functions
// for interpolating values.
type Rule struct {
	Name       string          `mapstructure:"name"`
	Type       string          `mapstructure:"type"`
	Priority   domain.Priority `mapstructure:"priority"`
	Domain     domain.Name     `mapstructure:"domain"`
	Expression string          `mapstructure:"expression"`
	Message    string          `mapstructure:"message"`
}

// Thresholds are the tunable limits the default rule table is built
// from.
type Thresholds struct {
	AttendanceMinPct  float64
	OnTimeMinPct      float64
	PendingOrdersMax  int
	UnpaidInvoicesMax int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AttendanceMinPct:  75,
		OnTimeMinPct:      80,
		PendingOrdersMax:  10,
		UnpaidInvoicesMax: 5,
	}
}

// DefaultRules builds the built-in rule table. A rule only fires when
// its metrics are available, so an unavailable domain never raises a
// phantom alert. Percentage rules additionally require a non-empty
// population: zero employees or zero decided deliveries stays quiet.
func DefaultRules(t Thresholds) []Rule {
	return []Rule{
		{
			Name:       "negative_net_profit",
			Type:       "finance",
			Priority:   domain.PriorityCritical,
			Domain:     domain.DomainExpenses,
			Expression: `available["net_profit"] && metrics["net_profit"] < 0.0`,
			Message:    `Net profit is negative: {{money (metric "net_profit")}}`,
		},
		{
			Name:       "critical_stock",
			Type:       "inventory",
			Priority:   domain.PriorityCritical,
			Domain:     domain.DomainMaterials,
			Expression: `available["low_stock_items"] && metrics["critical_stock_items"] > 0.0`,
			Message:    `{{metric "critical_stock_items" | printf "%.0f"}} material(s) critically below minimum stock`,
		},
		{
			Name:       "low_stock",
			Type:       "inventory",
			Priority:   domain.PriorityWarning,
			Domain:     domain.DomainMaterials,
			Expression: `available["low_stock_items"] && metrics["low_stock_items"] > 0.0 && metrics["critical_stock_items"] == 0.0`,
			Message:    `{{metric "low_stock_items" | printf "%.0f"}} material(s) at or below minimum stock`,
		},
		{
			Name:       "low_attendance",
			Type:       "hr",
			Priority:   domain.PriorityWarning,
			Domain:     domain.DomainAttendance,
			Expression: fmt.Sprintf(`available["attendance_rate"] && metrics["total_employees"] > 0.0 && metrics["attendance_rate"] < %.1f`, t.AttendanceMinPct),
			Message:    `Attendance rate is {{metric "attendance_rate" | printf "%.1f"}}%`,
		},
		{
			Name:       "late_deliveries",
			Type:       "delivery",
			Priority:   domain.PriorityWarning,
			Domain:     domain.DomainDeliveries,
			Expression: fmt.Sprintf(`available["on_time_rate"] && metrics["decided_deliveries"] > 0.0 && metrics["on_time_rate"] < %.1f`, t.OnTimeMinPct),
			Message:    `On-time delivery rate is {{metric "on_time_rate" | printf "%.1f"}}%`,
		},
		{
			Name:       "unpaid_invoices",
			Type:       "finance",
			Priority:   domain.PriorityWarning,
			Domain:     domain.DomainInvoices,
			Expression: fmt.Sprintf(`available["unpaid_invoices"] && metrics["unpaid_invoices"] > %d.0`, t.UnpaidInvoicesMax),
			Message:    `{{metric "unpaid_invoices" | printf "%.0f"}} invoices unpaid, totalling {{money (metric "unpaid_invoices_total")}}`,
		},
		{
			Name:       "pending_orders_pileup",
			Type:       "orders",
			Priority:   domain.PriorityInfo,
			Domain:     domain.DomainOrders,
			Expression: fmt.Sprintf(`available["pending_orders"] && metrics["pending_orders"] > %d.0`, t.PendingOrdersMax),
			Message:    `{{metric "pending_orders" | printf "%.0f"}} orders are waiting to be processed`,
		},
	}
}
