package core_test

import (
	"testing"

	"erp-dashboard/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerFields(debit, credit string) core.Fields {
	return core.Fields{
		"date":        "2024-06-01",
		"account":     "Cash",
		"description": "Deposit",
		"debit":       debit,
		"credit":      credit,
	}
}

func TestAccountingEntry_ExactlyOneOfDebitCredit(t *testing.T) {
	tests := []struct {
		name          string
		debit, credit string
		want          core.FieldErrors
	}{
		{"debit only", "100.00", "", core.FieldErrors{}},
		{"credit only", "0", "42.5", core.FieldErrors{}},
		{"both positive", "10", "10", core.FieldErrors{"amount": "Enter either a debit or a credit amount, not both"}},
		{"both zero", "0", "0.00", core.FieldErrors{"amount": "Enter a debit or a credit amount"}},
		{"both empty", "", "", core.FieldErrors{"amount": "Enter a debit or a credit amount"}},
		{"negative debit", "-5", "", core.FieldErrors{"debit": "Debit must be a valid amount"}},
		{"garbage credit", "", "ten", core.FieldErrors{"credit": "Credit must be a valid amount"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := core.AccountingEntrySchema().Validate(ledgerFields(tt.debit, tt.credit), nil, 0, today)
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestAccountingEntry_Build(t *testing.T) {
	s := core.AccountingEntrySchema()
	existing := []core.AccountingEntry{{ID: 7, Reference: "JE-1"}}

	f := ledgerFields("", "250.10")
	f["reference"] = "je-1"
	_, err := s.Submit(f, existing, 0, today)
	fe, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "An entry with this reference already exists", fe["reference"])

	f["reference"] = "JE-2"
	e, err := s.Submit(f, existing, 0, today)
	require.NoError(t, err)
	assert.Equal(t, 8, e.ID)
	assert.True(t, e.Debit.IsZero())
	assert.True(t, e.Credit.Equal(decimal.RequireFromString("250.10")))
}

func TestAccountingEntry_FutureDate(t *testing.T) {
	f := ledgerFields("1", "")
	f["date"] = "2024-07-01"
	_, errs := core.AccountingEntrySchema().Validate(f, nil, 0, today)
	assert.Equal(t, core.FieldErrors{"date": "Date cannot be in the future"}, errs)
}

func invoiceFields() core.Fields {
	return core.Fields{
		"number":       "INV-9",
		"counterparty": "Acme",
		"amount":       "199.99",
		"issueDate":    "2024-05-01",
		"dueDate":      "2024-07-01",
	}
}

func TestInvoice_DueDateRules(t *testing.T) {
	s := core.PayablesSchema()

	f := invoiceFields()
	f["dueDate"] = "2024-06-01"
	_, errs := s.Validate(f, nil, 0, today)
	assert.Equal(t, core.FieldErrors{"dueDate": "Due date cannot be in the past for pending invoices"}, errs)

	f["status"] = "Paid"
	_, errs = s.Validate(f, nil, 0, today)
	assert.Empty(t, errs, "a paid invoice may be past due")

	f = invoiceFields()
	f["dueDate"] = "2024-04-01"
	f["status"] = "Paid"
	_, errs = s.Validate(f, nil, 0, today)
	assert.Equal(t, core.FieldErrors{"dueDate": "Due date must be on or after the issue date"}, errs)

	f = invoiceFields()
	f["issueDate"] = "2024-06-20"
	_, errs = s.Validate(f, nil, 0, today)
	assert.Equal(t, "Issue date cannot be in the future", errs["issueDate"])
}

func TestInvoice_CounterpartyLabels(t *testing.T) {
	f := invoiceFields()
	delete(f, "counterparty")
	f["amount"] = "0"

	_, errs := core.PayablesSchema().Validate(f, nil, 0, today)
	assert.Equal(t, "Vendor is required", errs["counterparty"])
	assert.Equal(t, "Amount must be a positive number", errs["amount"])

	_, errs = core.ReceivablesSchema().Validate(f, nil, 0, today)
	assert.Equal(t, "Customer is required", errs["counterparty"])
}

func TestAmounts_PlainDecimalOnly(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"199.99", true},
		{"5", true},
		{"1234.5", true},
		{"1e5", false},
		{"1e2000000", false},
		{"1E2", false},
		{"0.001", false},
		{"+5", false},
		{"1234567890123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			f := invoiceFields()
			f["amount"] = tt.amount
			_, errs := core.PayablesSchema().Validate(f, nil, 0, today)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, core.FieldErrors{"amount": "Amount must be a positive number"}, errs)
			}

			_, errs = core.AccountingEntrySchema().Validate(ledgerFields(tt.amount, ""), nil, 0, today)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, core.FieldErrors{"debit": "Debit must be a valid amount"}, errs)
			}
		})
	}
}

func TestInvoice_NumberUnique(t *testing.T) {
	existing := []core.Invoice{{ID: 3, Number: "inv-9"}}
	inv, err := core.ReceivablesSchema().Submit(invoiceFields(), existing, 3, today)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.ID)
	assert.Equal(t, "Pending", inv.Status)

	_, errs := core.ReceivablesSchema().Validate(invoiceFields(), existing, 0, today)
	assert.Equal(t, "An invoice with this number already exists", errs["number"])
}

func TestJobOpening_Rules(t *testing.T) {
	s := core.JobOpeningSchema()
	existing := []core.JobOpening{{ID: 1, Title: "Engineer", Department: "Engineering"}}
	f := core.Fields{
		"title":      "engineer",
		"department": "Engineering",
		"location":   "Remote",
		"postedDate": "2024-06-01",
	}

	_, errs := s.Validate(f, existing, 0, today)
	assert.Equal(t, core.FieldErrors{"title": "A job opening with this title already exists in this department"}, errs)

	f["department"] = "Sales"
	job, err := s.Submit(f, existing, 0, today)
	require.NoError(t, err)
	assert.Equal(t, 2, job.ID)
	assert.Equal(t, "Full-time", job.EmploymentType)
	assert.Equal(t, "Open", job.Status)
	assert.Equal(t, 0, job.Applicants)

	f["applicants"] = "-1"
	f["postedDate"] = "2025-01-01"
	_, errs = s.Validate(f, existing, 0, today)
	assert.Equal(t, core.FieldErrors{
		"applicants": "Applicants must be a whole number of zero or more",
		"postedDate": "Posted date cannot be in the future",
	}, errs)
}

func TestTrainingProgram_Rules(t *testing.T) {
	s := core.TrainingProgramSchema()
	base := func() core.Fields {
		return core.Fields{
			"title":      "Go 101",
			"instructor": "Rob",
			"category":   "Technical",
			"startDate":  "2024-07-01",
			"endDate":    "2024-07-05",
			"capacity":   "10",
		}
	}

	p, err := s.Submit(base(), nil, 0, today)
	require.NoError(t, err)
	assert.Equal(t, "Upcoming", p.Status)
	assert.Equal(t, 10, p.Capacity)

	f := base()
	f["endDate"] = "2024-06-30"
	_, errs := s.Validate(f, nil, 0, today)
	assert.Equal(t, core.FieldErrors{"endDate": "End date must be on or after the start date"}, errs)

	f = base()
	f["enrolled"] = "11"
	_, errs = s.Validate(f, nil, 0, today)
	assert.Equal(t, core.FieldErrors{"enrolled": "Enrolled cannot exceed capacity"}, errs)

	f = base()
	f["startDate"] = "2024-06-01"
	_, errs = s.Validate(f, nil, 0, today)
	assert.Equal(t, core.FieldErrors{"startDate": "Start date cannot be in the past for upcoming programs"}, errs)

	f["status"] = "Completed"
	_, errs = s.Validate(f, nil, 0, today)
	assert.Empty(t, errs)

	f = base()
	f["capacity"] = "0"
	f["category"] = "Cooking"
	_, errs = s.Validate(f, []core.TrainingProgram{{ID: 1, Title: "GO 101"}}, 0, today)
	assert.Equal(t, core.FieldErrors{
		"capacity": "Capacity must be a whole number greater than zero",
		"category": "Category must be one of: Technical, Leadership, Compliance, Soft Skills, Safety",
		"title":    "A training program with this title already exists",
	}, errs)
}

func TestPayroll_Rules(t *testing.T) {
	s := core.PayrollSchema()
	existing := []core.PayrollEmployee{{ID: 4, Name: "Ann Lee", Email: "ann@x.com"}}
	f := core.Fields{
		"name":       "Bob Ray",
		"email":      "",
		"department": "Sales",
		"position":   "Rep",
		"salary":     "52000",
	}

	p, err := s.Submit(f, existing, 0, today)
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
	assert.Equal(t, "Monthly", p.PayFrequency)
	assert.Equal(t, "4333.33", p.PayPerPeriod().StringFixed(2))

	f["payFrequency"] = "Weekly"
	p, err = s.Submit(f, existing, 0, today)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", p.PayPerPeriod().StringFixed(2))

	f["name"] = "ann lee"
	f["email"] = "ANN@x.com"
	f["salary"] = "0"
	_, errs := s.Validate(f, existing, 0, today)
	assert.Equal(t, core.FieldErrors{
		"name":   "An employee with this name already exists in payroll",
		"email":  "An employee with this email already exists",
		"salary": "Salary must be a positive number",
	}, errs)
}
