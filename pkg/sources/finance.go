package sources

import (
	"context"
	"strings"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

// Field resolution order for expense records:
//
//	id:       id, expense_id
//	category: category, expense_type, type
//	amount:   amount, total_amount, total, cost
//	incurred: incurred_at, expense_date, created_at, date
var (
	expenseIDFields       = []string{"id", "expense_id"}
	expenseCategoryFields = []string{"category", "expense_type", "type"}
	expenseAmountFields   = []string{"amount", "total_amount", "total", "cost"}
	expenseIncurredFields = []string{"incurred_at", "expense_date", "created_at", "date"}
)

type expensesAdapter struct {
	store client.RecordLister
	path  string
}

func NewExpensesAdapter(store client.RecordLister) Adapter {
	return &expensesAdapter{store: store, path: "/api/expenses"}
}

func (a *expensesAdapter) Domain() domain.Name { return domain.DomainExpenses }

func (a *expensesAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.Expense, 0, len(rows))
	for _, row := range rows {
		id, ok := pickString(row, expenseIDFields...)
		if !ok {
			continue
		}
		amount, _ := pickFloat(row, expenseAmountFields...)
		category, _ := pickString(row, expenseCategoryFields...)
		incurredAt, _ := pickTime(row, expenseIncurredFields...)

		items = append(items, domain.Expense{
			ID:         id,
			Category:   category,
			Amount:     amount,
			IncurredAt: incurredAt,
		})
	}

	snap.Expenses = domain.Collected(items)
	return nil
}

// Field resolution order for invoice records:
//
//	id:       id, invoice_id, invoice_number
//	customer: customer_name, customer, client_name, client
//	status:   status, payment_status
//	amount:   amount, total_amount, total
//	issued:   issued_at, invoice_date, created_at, date
//	due:      due_at, due_date
var (
	invoiceIDFields       = []string{"id", "invoice_id", "invoice_number"}
	invoiceCustomerFields = []string{"customer_name", "customer", "client_name", "client"}
	invoiceStatusFields   = []string{"status", "payment_status"}
	invoiceAmountFields   = []string{"amount", "total_amount", "total"}
	invoiceIssuedFields   = []string{"issued_at", "invoice_date", "created_at", "date"}
	invoiceDueFields      = []string{"due_at", "due_date"}
)

type invoicesAdapter struct {
	store client.RecordLister
	path  string
}

func NewInvoicesAdapter(store client.RecordLister) Adapter {
	return &invoicesAdapter{store: store, path: "/api/invoices"}
}

func (a *invoicesAdapter) Domain() domain.Name { return domain.DomainInvoices }

func (a *invoicesAdapter) Fetch(ctx context.Context, window domain.TimeRange, snap *domain.Snapshot) error {
	rows, err := a.store.List(ctx, a.path, window)
	if err != nil {
		return unavailable(a.Domain(), err)
	}

	items := make([]domain.Invoice, 0, len(rows))
	for _, row := range rows {
		id, ok := pickString(row, invoiceIDFields...)
		if !ok {
			continue
		}
		amount, _ := pickFloat(row, invoiceAmountFields...)
		customer, _ := pickString(row, invoiceCustomerFields...)
		status, _ := pickString(row, invoiceStatusFields...)
		issuedAt, _ := pickTime(row, invoiceIssuedFields...)
		dueAt, _ := pickTime(row, invoiceDueFields...)

		items = append(items, domain.Invoice{
			ID:       id,
			Customer: customer,
			Status:   normalizeInvoiceStatus(status),
			Amount:   amount,
			IssuedAt: issuedAt,
			DueAt:    dueAt,
		})
	}

	snap.Invoices = domain.Collected(items)
	return nil
}

func normalizeInvoiceStatus(s string) domain.InvoiceStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid", "settled":
		return domain.InvoicePaid
	case "overdue", "late":
		return domain.InvoiceOverdue
	default:
		return domain.InvoiceUnpaid
	}
}
