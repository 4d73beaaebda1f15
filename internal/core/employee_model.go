package core

import (
	"strings"
	"time"
)

const CollectionEmployees = "employees"

// Employee is one row of the HR employee directory.
type Employee struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Email      string `json:"email" yaml:"email"`
	Department string `json:"department" yaml:"department"`
	Position   string `json:"position" yaml:"position"`
	Manager    string `json:"manager" yaml:"manager"`
	Status     string `json:"status" yaml:"status"`
	StartDate  string `json:"startDate" yaml:"startDate"`
}

// EmployeeForm holds the submitted employee fields.
type EmployeeForm struct {
	Name       string `form:"name" json:"name" validate:"required"`
	Email      string `form:"email" json:"email" validate:"required,basicemail" jsonschema:"format=email"`
	Department string `form:"department" json:"department" validate:"required"`
	Position   string `form:"position" json:"position" validate:"required"`
	Manager    string `form:"manager" json:"manager,omitempty"`
	Status     string `form:"status" json:"status,omitempty" validate:"oneof=Active Inactive 'On Leave' Terminated" jsonschema:"enum=Active,enum=Inactive,enum=On Leave,enum=Terminated"`
	StartDate  string `form:"startDate" json:"startDate" validate:"required,isodate" jsonschema:"format=date"`
}

var EmployeeStatuses = []string{"Active", "Inactive", "On Leave", "Terminated"}

func EmployeeSchema() *Schema[Employee, EmployeeForm] {
	return &Schema[Employee, EmployeeForm]{
		Name:     CollectionEmployees,
		Title:    "Employees",
		Singular: "Employee",
		Normalize: func(f Fields) {
			f["email"] = strings.ToLower(f["email"])
			defaultIfEmpty(f, "status", "Active")
		},
		Rules: func(form *EmployeeForm, others []Employee, today time.Time, errs FieldErrors) {
			if anyMatch(others, form.Email, func(e Employee) string { return e.Email }) {
				errs.Add("email", "An employee with this email already exists")
			}
			if isAfter(form.StartDate, today) {
				errs.Add("startDate", "Start date cannot be in the future")
			}
		},
		Build: func(form *EmployeeForm, id int) Employee {
			return Employee{
				ID:         id,
				Name:       form.Name,
				Email:      form.Email,
				Department: form.Department,
				Position:   form.Position,
				Manager:    form.Manager,
				Status:     form.Status,
				StartDate:  form.StartDate,
			}
		},
		ID: func(e Employee) int { return e.ID },
		SearchText: func(e Employee) []string {
			return []string{e.Name, e.Email, e.Position}
		},
		Category: func(e Employee) string { return e.Department },
		Status:   func(e Employee) string { return e.Status },
		Columns: []Column[Employee]{
			{"ID", func(e Employee) string { return itoa(e.ID) }},
			{"Name", func(e Employee) string { return e.Name }},
			{"Email", func(e Employee) string { return e.Email }},
			{"Department", func(e Employee) string { return e.Department }},
			{"Position", func(e Employee) string { return e.Position }},
			{"Manager", func(e Employee) string { return e.Manager }},
			{"Status", func(e Employee) string { return e.Status }},
			{"Start Date", func(e Employee) string { return e.StartDate }},
		},
		Seed: seedEmployees,
	}
}
