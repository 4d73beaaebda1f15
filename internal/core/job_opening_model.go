package core

import (
	"strings"
	"time"
)

const CollectionJobOpenings = "job-openings"

// JobOpening is a position advertised by the recruitment screen.
type JobOpening struct {
	ID             int    `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Department     string `json:"department" yaml:"department"`
	Location       string `json:"location" yaml:"location"`
	EmploymentType string `json:"employmentType" yaml:"employmentType"`
	Status         string `json:"status" yaml:"status"`
	PostedDate     string `json:"postedDate" yaml:"postedDate"`
	Applicants     int    `json:"applicants" yaml:"applicants"`
	SalaryRange    string `json:"salaryRange" yaml:"salaryRange"`
	Description    string `json:"description" yaml:"description"`
}

type JobOpeningForm struct {
	Title          string `form:"title" json:"title" validate:"required"`
	Department     string `form:"department" json:"department" validate:"required"`
	Location       string `form:"location" json:"location" validate:"required"`
	EmploymentType string `form:"employmentType" json:"employmentType,omitempty" validate:"oneof=Full-time Part-time Contract Internship" jsonschema:"enum=Full-time,enum=Part-time,enum=Contract,enum=Internship"`
	Status         string `form:"status" json:"status,omitempty" validate:"oneof=Open 'On Hold' Closed" jsonschema:"enum=Open,enum=On Hold,enum=Closed"`
	PostedDate     string `form:"postedDate" json:"postedDate" validate:"required,isodate" jsonschema:"format=date"`
	Applicants     string `form:"applicants" json:"applicants,omitempty" validate:"nonnegint"`
	SalaryRange    string `form:"salaryRange" json:"salaryRange,omitempty"`
	Description    string `form:"description" json:"description,omitempty"`
}

var JobOpeningStatuses = []string{"Open", "On Hold", "Closed"}

func JobOpeningSchema() *Schema[JobOpening, JobOpeningForm] {
	return &Schema[JobOpening, JobOpeningForm]{
		Name:     CollectionJobOpenings,
		Title:    "Job Openings",
		Singular: "Job opening",
		Labels:   map[string]string{"employmentType": "Employment type"},
		Normalize: func(f Fields) {
			defaultIfEmpty(f, "employmentType", "Full-time")
			defaultIfEmpty(f, "status", "Open")
			defaultIfEmpty(f, "applicants", "0")
		},
		Rules: func(form *JobOpeningForm, others []JobOpening, today time.Time, errs FieldErrors) {
			for _, o := range others {
				if strings.EqualFold(o.Title, form.Title) && strings.EqualFold(o.Department, form.Department) {
					errs.Add("title", "A job opening with this title already exists in this department")
					break
				}
			}
			if isAfter(form.PostedDate, today) {
				errs.Add("postedDate", "Posted date cannot be in the future")
			}
		},
		Build: func(form *JobOpeningForm, id int) JobOpening {
			return JobOpening{
				ID:             id,
				Title:          form.Title,
				Department:     form.Department,
				Location:       form.Location,
				EmploymentType: form.EmploymentType,
				Status:         form.Status,
				PostedDate:     form.PostedDate,
				Applicants:     atoiOr(form.Applicants, 0),
				SalaryRange:    form.SalaryRange,
				Description:    form.Description,
			}
		},
		ID: func(j JobOpening) int { return j.ID },
		SearchText: func(j JobOpening) []string {
			return []string{j.Title, j.Location, j.Description}
		},
		Category: func(j JobOpening) string { return j.Department },
		Status:   func(j JobOpening) string { return j.Status },
		Columns: []Column[JobOpening]{
			{"ID", func(j JobOpening) string { return itoa(j.ID) }},
			{"Title", func(j JobOpening) string { return j.Title }},
			{"Department", func(j JobOpening) string { return j.Department }},
			{"Location", func(j JobOpening) string { return j.Location }},
			{"Type", func(j JobOpening) string { return j.EmploymentType }},
			{"Status", func(j JobOpening) string { return j.Status }},
			{"Posted", func(j JobOpening) string { return j.PostedDate }},
			{"Applicants", func(j JobOpening) string { return itoa(j.Applicants) }},
			{"Salary Range", func(j JobOpening) string { return j.SalaryRange }},
		},
		Seed: seedJobOpenings,
	}
}
