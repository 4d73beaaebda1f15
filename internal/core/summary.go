package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryInput is a snapshot of every collection the dashboard aggregates.
type SummaryInput struct {
	Employees   []Employee
	JobOpenings []JobOpening
	Trainings   []TrainingProgram
	Ledger      []AccountingEntry
	Payables    []Invoice
	Receivables []Invoice
	Payroll     []PayrollEmployee
}

type LedgerSummary struct {
	Entries     int             `json:"entries"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balanced    bool            `json:"balanced"`
}

type InvoiceSummary struct {
	Count       int             `json:"count"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Overdue     int             `json:"overdue"`
}

type PayrollSummary struct {
	ActiveStaff int             `json:"activeStaff"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
}

// Summary is the dashboard's key figures.
type Summary struct {
	Employees         int            `json:"employees"`
	Headcount         map[string]int `json:"headcount"`
	OpenPositions     int            `json:"openPositions"`
	Applicants        int            `json:"applicants"`
	UpcomingTrainings int            `json:"upcomingTrainings"`
	Ledger            LedgerSummary  `json:"ledger"`
	Payables          InvoiceSummary `json:"payables"`
	Receivables       InvoiceSummary `json:"receivables"`
	Payroll           PayrollSummary `json:"payroll"`
}

// Summarize computes the dashboard figures as of today.
func Summarize(in SummaryInput, today time.Time) Summary {
	s := Summary{
		Employees: len(in.Employees),
		Headcount: make(map[string]int, len(EmployeeStatuses)),
	}
	for _, st := range EmployeeStatuses {
		s.Headcount[st] = 0
	}
	for _, e := range in.Employees {
		s.Headcount[e.Status]++
	}

	for _, j := range in.JobOpenings {
		if j.Status == "Open" {
			s.OpenPositions++
			s.Applicants += j.Applicants
		}
	}
	for _, t := range in.Trainings {
		if t.Status == "Upcoming" {
			s.UpcomingTrainings++
		}
	}

	debit, credit := LedgerTotals(in.Ledger)
	s.Ledger = LedgerSummary{
		Entries:     len(in.Ledger),
		TotalDebit:  debit,
		TotalCredit: credit,
		Balanced:    debit.Equal(credit),
	}

	s.Payables = summarizeInvoices(in.Payables, today)
	s.Receivables = summarizeInvoices(in.Receivables, today)

	monthly := decimal.Zero
	for _, p := range in.Payroll {
		if p.Status != "Active" {
			continue
		}
		s.Payroll.ActiveStaff++
		monthly = monthly.Add(p.MonthlyCost())
	}
	s.Payroll.MonthlyCost = monthly.Round(2)
	return s
}

func summarizeInvoices(invoices []Invoice, today time.Time) InvoiceSummary {
	out := InvoiceSummary{Count: len(invoices), Outstanding: decimal.Zero}
	for _, i := range invoices {
		if i.Outstanding() {
			out.Outstanding = out.Outstanding.Add(i.Amount)
		}
		if i.Overdue(today) {
			out.Overdue++
		}
	}
	return out
}
