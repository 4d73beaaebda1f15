package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const CollectionPayroll = "payroll"

// PayrollEmployee is a member of staff on the payroll register. Salary is
// annual.
type PayrollEmployee struct {
	ID           int             `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Email        string          `json:"email" yaml:"email"`
	Department   string          `json:"department" yaml:"department"`
	Position     string          `json:"position" yaml:"position"`
	Salary       decimal.Decimal `json:"salary" yaml:"salary"`
	PayFrequency string          `json:"payFrequency" yaml:"payFrequency"`
	Status       string          `json:"status" yaml:"status"`
	BankAccount  string          `json:"bankAccount" yaml:"bankAccount"`
}

var (
	twelve     = decimal.NewFromInt(12)
	payPeriods = map[string]int64{"Monthly": 12, "Bi-weekly": 26, "Weekly": 52}
)

// PayPerPeriod is the gross amount of one pay run.
func (p PayrollEmployee) PayPerPeriod() decimal.Decimal {
	n, ok := payPeriods[p.PayFrequency]
	if !ok {
		n = 12
	}
	return p.Salary.Div(decimal.NewFromInt(n)).Round(2)
}

// MonthlyCost spreads the annual salary evenly over twelve months.
func (p PayrollEmployee) MonthlyCost() decimal.Decimal {
	return p.Salary.Div(twelve)
}

type PayrollEmployeeForm struct {
	Name         string `form:"name" json:"name" validate:"required"`
	Email        string `form:"email" json:"email,omitempty" validate:"omitempty,basicemail" jsonschema:"format=email"`
	Department   string `form:"department" json:"department" validate:"required"`
	Position     string `form:"position" json:"position" validate:"required"`
	Salary       string `form:"salary" json:"salary" validate:"required,posdecimal"`
	PayFrequency string `form:"payFrequency" json:"payFrequency,omitempty" validate:"oneof=Monthly Bi-weekly Weekly" jsonschema:"enum=Monthly,enum=Bi-weekly,enum=Weekly"`
	Status       string `form:"status" json:"status,omitempty" validate:"oneof=Active 'On Leave' Terminated" jsonschema:"enum=Active,enum=On Leave,enum=Terminated"`
	BankAccount  string `form:"bankAccount" json:"bankAccount,omitempty"`
}

func PayrollSchema() *Schema[PayrollEmployee, PayrollEmployeeForm] {
	return &Schema[PayrollEmployee, PayrollEmployeeForm]{
		Name:     CollectionPayroll,
		Title:    "Payroll",
		Singular: "Employee",
		Labels:   map[string]string{"payFrequency": "Pay frequency"},
		Normalize: func(f Fields) {
			f["email"] = strings.ToLower(f["email"])
			defaultIfEmpty(f, "payFrequency", "Monthly")
			defaultIfEmpty(f, "status", "Active")
		},
		Rules: func(form *PayrollEmployeeForm, others []PayrollEmployee, _ time.Time, errs FieldErrors) {
			if anyMatch(others, form.Name, func(p PayrollEmployee) string { return p.Name }) {
				errs.Add("name", "An employee with this name already exists in payroll")
			}
			if anyMatch(others, form.Email, func(p PayrollEmployee) string { return p.Email }) {
				errs.Add("email", "An employee with this email already exists")
			}
		},
		Build: func(form *PayrollEmployeeForm, id int) PayrollEmployee {
			return PayrollEmployee{
				ID:           id,
				Name:         form.Name,
				Email:        form.Email,
				Department:   form.Department,
				Position:     form.Position,
				Salary:       mustAmount(form.Salary),
				PayFrequency: form.PayFrequency,
				Status:       form.Status,
				BankAccount:  form.BankAccount,
			}
		},
		ID: func(p PayrollEmployee) int { return p.ID },
		SearchText: func(p PayrollEmployee) []string {
			return []string{p.Name, p.Email, p.Position}
		},
		Category: func(p PayrollEmployee) string { return p.Department },
		Status:   func(p PayrollEmployee) string { return p.Status },
		Columns: []Column[PayrollEmployee]{
			{"ID", func(p PayrollEmployee) string { return itoa(p.ID) }},
			{"Name", func(p PayrollEmployee) string { return p.Name }},
			{"Department", func(p PayrollEmployee) string { return p.Department }},
			{"Position", func(p PayrollEmployee) string { return p.Position }},
			{"Salary", func(p PayrollEmployee) string { return p.Salary.StringFixed(2) }},
			{"Frequency", func(p PayrollEmployee) string { return p.PayFrequency }},
			{"Per Period", func(p PayrollEmployee) string { return p.PayPerPeriod().StringFixed(2) }},
			{"Status", func(p PayrollEmployee) string { return p.Status }},
		},
		Seed: seedPayroll,
	}
}
