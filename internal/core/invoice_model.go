package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CollectionAccountsPayable    = "accounts-payable"
	CollectionAccountsReceivable = "accounts-receivable"
)

// Invoice is a payable (counterparty is a vendor) or a receivable
// (counterparty is a customer).
type Invoice struct {
	ID           int             `json:"id" yaml:"id"`
	Number       string          `json:"number" yaml:"number"`
	Counterparty string          `json:"counterparty" yaml:"counterparty"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	IssueDate    string          `json:"issueDate" yaml:"issueDate"`
	DueDate      string          `json:"dueDate" yaml:"dueDate"`
	Status       string          `json:"status" yaml:"status"`
	Description  string          `json:"description" yaml:"description"`
}

// Outstanding reports whether the invoice still awaits payment.
func (i Invoice) Outstanding() bool { return i.Status != "Paid" }

// Overdue reports whether an unpaid invoice is past its due date.
func (i Invoice) Overdue(today time.Time) bool {
	return (i.Status == "Pending" || i.Status == "Overdue") && isBefore(i.DueDate, today)
}

type InvoiceForm struct {
	Number       string `form:"number" json:"number" validate:"required"`
	Counterparty string `form:"counterparty" json:"counterparty" validate:"required"`
	Amount       string `form:"amount" json:"amount" validate:"required,posdecimal"`
	IssueDate    string `form:"issueDate" json:"issueDate" validate:"required,isodate" jsonschema:"format=date"`
	DueDate      string `form:"dueDate" json:"dueDate" validate:"required,isodate" jsonschema:"format=date"`
	Status       string `form:"status" json:"status,omitempty" validate:"oneof=Pending Paid Overdue" jsonschema:"enum=Pending,enum=Paid,enum=Overdue"`
	Description  string `form:"description" json:"description,omitempty"`
}

var InvoiceStatuses = []string{"Pending", "Paid", "Overdue"}

// PayablesSchema describes vendor invoices.
func PayablesSchema() *Schema[Invoice, InvoiceForm] {
	return invoiceSchema(CollectionAccountsPayable, "Accounts Payable", "Vendor", seedPayables)
}

// ReceivablesSchema describes customer invoices.
func ReceivablesSchema() *Schema[Invoice, InvoiceForm] {
	return invoiceSchema(CollectionAccountsReceivable, "Accounts Receivable", "Customer", seedReceivables)
}

func invoiceSchema(name, title, party string, seed func() []Invoice) *Schema[Invoice, InvoiceForm] {
	return &Schema[Invoice, InvoiceForm]{
		Name:     name,
		Title:    title,
		Singular: "Invoice",
		Labels: map[string]string{
			"number":       "Invoice number",
			"counterparty": party,
		},
		Normalize: func(f Fields) {
			defaultIfEmpty(f, "status", "Pending")
		},
		Rules: func(form *InvoiceForm, others []Invoice, today time.Time, errs FieldErrors) {
			if anyMatch(others, form.Number, func(i Invoice) string { return i.Number }) {
				errs.Add("number", "An invoice with this number already exists")
			}
			if isAfter(form.IssueDate, today) {
				errs.Add("issueDate", "Issue date cannot be in the future")
			}
			if endsBefore(form.IssueDate, form.DueDate) {
				errs.Add("dueDate", "Due date must be on or after the issue date")
			}
			if form.Status == "Pending" && isBefore(form.DueDate, today) {
				errs.Add("dueDate", "Due date cannot be in the past for pending invoices")
			}
		},
		Build: func(form *InvoiceForm, id int) Invoice {
			return Invoice{
				ID:           id,
				Number:       form.Number,
				Counterparty: form.Counterparty,
				Amount:       mustAmount(form.Amount),
				IssueDate:    form.IssueDate,
				DueDate:      form.DueDate,
				Status:       form.Status,
				Description:  form.Description,
			}
		},
		ID: func(i Invoice) int { return i.ID },
		SearchText: func(i Invoice) []string {
			return []string{i.Number, i.Counterparty, i.Description}
		},
		Category: func(i Invoice) string { return i.Counterparty },
		Status:   func(i Invoice) string { return i.Status },
		Columns: []Column[Invoice]{
			{"ID", func(i Invoice) string { return itoa(i.ID) }},
			{"Invoice", func(i Invoice) string { return i.Number }},
			{party, func(i Invoice) string { return i.Counterparty }},
			{"Amount", func(i Invoice) string { return i.Amount.StringFixed(2) }},
			{"Issued", func(i Invoice) string { return i.IssueDate }},
			{"Due", func(i Invoice) string { return i.DueDate }},
			{"Status", func(i Invoice) string { return i.Status }},
		},
		Seed: seed,
	}
}
