package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const CollectionGeneralLedger = "general-ledger"

// AccountingEntry is one general ledger line. Exactly one of Debit and
// Credit is positive.
type AccountingEntry struct {
	ID          int             `json:"id" yaml:"id"`
	Date        string          `json:"date" yaml:"date"`
	Account     string          `json:"account" yaml:"account"`
	Description string          `json:"description" yaml:"description"`
	Debit       decimal.Decimal `json:"debit" yaml:"debit"`
	Credit      decimal.Decimal `json:"credit" yaml:"credit"`
	Reference   string          `json:"reference" yaml:"reference"`
}

type AccountingEntryForm struct {
	Date        string `form:"date" json:"date" validate:"required,isodate" jsonschema:"format=date"`
	Account     string `form:"account" json:"account" validate:"required"`
	Description string `form:"description" json:"description" validate:"required"`
	Debit       string `form:"debit" json:"debit,omitempty" validate:"omitempty,nonnegdecimal"`
	Credit      string `form:"credit" json:"credit,omitempty" validate:"omitempty,nonnegdecimal"`
	Reference   string `form:"reference" json:"reference,omitempty"`
}

func AccountingEntrySchema() *Schema[AccountingEntry, AccountingEntryForm] {
	return &Schema[AccountingEntry, AccountingEntryForm]{
		Name:     CollectionGeneralLedger,
		Title:    "General Ledger",
		Singular: "Entry",
		Rules: func(form *AccountingEntryForm, others []AccountingEntry, today time.Time, errs FieldErrors) {
			if !errs.Has("debit") && !errs.Has("credit") {
				debit, credit := mustAmount(form.Debit), mustAmount(form.Credit)
				switch {
				case debit.IsPositive() && credit.IsPositive():
					errs.Add("amount", "Enter either a debit or a credit amount, not both")
				case !debit.IsPositive() && !credit.IsPositive():
					errs.Add("amount", "Enter a debit or a credit amount")
				}
			}
			if isAfter(form.Date, today) {
				errs.Add("date", "Date cannot be in the future")
			}
			if anyMatch(others, form.Reference, func(e AccountingEntry) string { return e.Reference }) {
				errs.Add("reference", "An entry with this reference already exists")
			}
		},
		Build: func(form *AccountingEntryForm, id int) AccountingEntry {
			return AccountingEntry{
				ID:          id,
				Date:        form.Date,
				Account:     form.Account,
				Description: form.Description,
				Debit:       mustAmount(form.Debit),
				Credit:      mustAmount(form.Credit),
				Reference:   form.Reference,
			}
		},
		ID: func(e AccountingEntry) int { return e.ID },
		SearchText: func(e AccountingEntry) []string {
			return []string{e.Account, e.Description, e.Reference}
		},
		Category: func(e AccountingEntry) string { return e.Account },
		Columns: []Column[AccountingEntry]{
			{"ID", func(e AccountingEntry) string { return itoa(e.ID) }},
			{"Date", func(e AccountingEntry) string { return e.Date }},
			{"Account", func(e AccountingEntry) string { return e.Account }},
			{"Description", func(e AccountingEntry) string { return e.Description }},
			{"Debit", func(e AccountingEntry) string { return e.Debit.StringFixed(2) }},
			{"Credit", func(e AccountingEntry) string { return e.Credit.StringFixed(2) }},
			{"Reference", func(e AccountingEntry) string { return e.Reference }},
		},
		Seed: seedLedger,
	}
}

// LedgerTotals sums debits and credits.
func LedgerTotals(entries []AccountingEntry) (debit, credit decimal.Decimal) {
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit
}
