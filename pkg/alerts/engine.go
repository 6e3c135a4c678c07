// Package alerts evaluates business alert rules against a snapshot and
// its metric set. Rule conditions are CEL expressions compiled once at
// load time; evaluation is pure and deterministic for a given snapshot.
package alerts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
)

type compiledRule struct {
	rule    Rule
	program cel.Program
	message *template.Template
}

// Engine holds the compiled rule table.
type Engine struct {
	rules []compiledRule
}

// NewEngine compiles every rule. A rule that fails to compile is a
// configuration error and rejects the whole table, so bad rules are
// caught at startup rather than silently skipped at evaluation time.
func NewEngine(rules []Rule) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("metrics", cel.MapType(cel.StringType, cel.DoubleType)),
		cel.Variable("available", cel.MapType(cel.StringType, cel.BoolType)),
		cel.Variable("ok", cel.MapType(cel.StringType, cel.BoolType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	engine := &Engine{}
	for _, rule := range rules {
		ast, issues := env.Compile(rule.Expression)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %q: invalid expression: %w", rule.Name, issues.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("rule %q: expression must evaluate to bool, got %s", rule.Name, ast.OutputType())
		}

		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %q: failed to build program: %w", rule.Name, err)
		}

		tmpl, err := template.New(rule.Name).Funcs(messageFuncs(nil)).Parse(rule.Message)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid message template: %w", rule.Name, err)
		}

		engine.rules = append(engine.rules, compiledRule{rule: rule, program: program, message: tmpl})
	}
	return engine, nil
}

// Evaluate runs every rule against the snapshot's metric set and returns
// the alerts that fired, in rule-table order. Alert IDs derive from the
// cycle and rule names, so re-evaluating the same snapshot yields an
// identical list.
func (e *Engine) Evaluate(logger zerolog.Logger, snap *domain.Snapshot, ms domain.MetricSet) []domain.Alert {
	values, avail := flatten(ms)
	okFlags := make(map[string]bool, len(domain.AllDomains()))
	for _, name := range domain.AllDomains() {
		okFlags[string(name)] = snap.OK(name)
	}

	activation := map[string]any{
		"metrics":   values,
		"available": avail,
		"ok":        okFlags,
	}

	var alerts []domain.Alert
	for _, cr := range e.rules {
		out, _, err := cr.program.Eval(activation)
		if err != nil {
			logger.Warn().Err(err).Str("rule", cr.rule.Name).Msg("rule evaluation failed")
			continue
		}
		fired, ok := out.Value().(bool)
		if !ok || !fired {
			continue
		}

		message, err := renderMessage(cr, values)
		if err != nil {
			logger.Warn().Err(err).Str("rule", cr.rule.Name).Msg("message rendering failed")
			continue
		}

		alerts = append(alerts, domain.Alert{
			ID:       fmt.Sprintf("%s/%s", snap.CycleID, cr.rule.Name),
			Type:     cr.rule.Type,
			Priority: cr.rule.Priority,
			Message:  message,
			Domain:   cr.rule.Domain,
			Source:   domain.AlertSourceLocal,
		})
	}
	return alerts
}

func renderMessage(cr compiledRule, values map[string]float64) (string, error) {
	tmpl, err := cr.message.Clone()
	if err != nil {
		return "", err
	}
	tmpl = tmpl.Funcs(messageFuncs(values))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func messageFuncs(values map[string]float64) template.FuncMap {
	return template.FuncMap{
		"metric": func(name string) float64 {
			return values[name]
		},
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}
}

// flatten exposes the metric set to rule expressions as flat maps. The
// lists contribute their sizes: low_stock_items, critical_stock_items.
func flatten(ms domain.MetricSet) (map[string]float64, map[string]bool) {
	values := make(map[string]float64)
	avail := make(map[string]bool)

	set := func(name string, amount float64, available bool) {
		values[name] = amount
		avail[name] = available
	}

	set("total_revenue", ms.TotalRevenue.Amount, ms.TotalRevenue.Available)
	set("total_expenses", ms.TotalExpenses.Amount, ms.TotalExpenses.Available)
	set("net_profit", ms.NetProfit.Amount, ms.NetProfit.Available)
	set("avg_order_value", ms.AvgOrderValue.Amount, ms.AvgOrderValue.Available)
	set("revenue_growth_pct", ms.RevenueGrowthPct.Amount, ms.RevenueGrowthPct.Available)
	set("completed_orders", float64(ms.CompletedOrders.N), ms.CompletedOrders.Available)
	set("pending_orders", float64(ms.PendingOrders.N), ms.PendingOrders.Available)
	set("unpaid_invoices_total", ms.UnpaidInvoicesTotal.Amount, ms.UnpaidInvoicesTotal.Available)
	set("unpaid_invoices", float64(ms.UnpaidInvoices.N), ms.UnpaidInvoices.Available)
	set("inventory_value", ms.InventoryValue.Amount, ms.InventoryValue.Available)
	set("on_time_rate", ms.OnTimeRate.Amount, ms.OnTimeRate.Available)
	set("deliveries_in_transit", float64(ms.DeliveriesInTransit.N), ms.DeliveriesInTransit.Available)
	set("decided_deliveries", float64(ms.DecidedDeliveries.N), ms.DecidedDeliveries.Available)
	set("total_employees", float64(ms.TotalEmployees.N), ms.TotalEmployees.Available)
	set("present_today", float64(ms.PresentToday.N), ms.PresentToday.Available)
	set("attendance_rate", ms.AttendanceRate.Amount, ms.AttendanceRate.Available)

	var critical int
	for _, item := range ms.LowStock.Items {
		if item.Critical {
			critical++
		}
	}
	set("low_stock_items", float64(len(ms.LowStock.Items)), ms.LowStock.Available)
	set("critical_stock_items", float64(critical), ms.LowStock.Available)

	return values, avail
}
