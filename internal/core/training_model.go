package core

import "time"

const CollectionTrainingPrograms = "training-programs"

type TrainingProgram struct {
	ID         int    `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Instructor string `json:"instructor" yaml:"instructor"`
	Category   string `json:"category" yaml:"category"`
	StartDate  string `json:"startDate" yaml:"startDate"`
	EndDate    string `json:"endDate" yaml:"endDate"`
	Capacity   int    `json:"capacity" yaml:"capacity"`
	Enrolled   int    `json:"enrolled" yaml:"enrolled"`
	Status     string `json:"status" yaml:"status"`
}

type TrainingProgramForm struct {
	Title      string `form:"title" json:"title" validate:"required"`
	Instructor string `form:"instructor" json:"instructor" validate:"required"`
	Category   string `form:"category" json:"category" validate:"required,oneof=Technical Leadership Compliance 'Soft Skills' Safety" jsonschema:"enum=Technical,enum=Leadership,enum=Compliance,enum=Soft Skills,enum=Safety"`
	StartDate  string `form:"startDate" json:"startDate" validate:"required,isodate" jsonschema:"format=date"`
	EndDate    string `form:"endDate" json:"endDate" validate:"required,isodate" jsonschema:"format=date"`
	Capacity   string `form:"capacity" json:"capacity" validate:"required,posint"`
	Enrolled   string `form:"enrolled" json:"enrolled,omitempty" validate:"nonnegint"`
	Status     string `form:"status" json:"status,omitempty" validate:"oneof=Upcoming 'In Progress' Completed Cancelled" jsonschema:"enum=Upcoming,enum=In Progress,enum=Completed,enum=Cancelled"`
}

var TrainingCategories = []string{"Technical", "Leadership", "Compliance", "Soft Skills", "Safety"}

func TrainingProgramSchema() *Schema[TrainingProgram, TrainingProgramForm] {
	return &Schema[TrainingProgram, TrainingProgramForm]{
		Name:     CollectionTrainingPrograms,
		Title:    "Training Programs",
		Singular: "Training program",
		Normalize: func(f Fields) {
			defaultIfEmpty(f, "enrolled", "0")
			defaultIfEmpty(f, "status", "Upcoming")
		},
		Rules: func(form *TrainingProgramForm, others []TrainingProgram, today time.Time, errs FieldErrors) {
			if anyMatch(others, form.Title, func(t TrainingProgram) string { return t.Title }) {
				errs.Add("title", "A training program with this title already exists")
			}
			if endsBefore(form.StartDate, form.EndDate) {
				errs.Add("endDate", "End date must be on or after the start date")
			}
			if !errs.Has("capacity") && !errs.Has("enrolled") &&
				atoiOr(form.Enrolled, 0) > atoiOr(form.Capacity, 0) {
				errs.Add("enrolled", "Enrolled cannot exceed capacity")
			}
			if form.Status == "Upcoming" && isBefore(form.StartDate, today) {
				errs.Add("startDate", "Start date cannot be in the past for upcoming programs")
			}
		},
		Build: func(form *TrainingProgramForm, id int) TrainingProgram {
			return TrainingProgram{
				ID:         id,
				Title:      form.Title,
				Instructor: form.Instructor,
				Category:   form.Category,
				StartDate:  form.StartDate,
				EndDate:    form.EndDate,
				Capacity:   atoiOr(form.Capacity, 0),
				Enrolled:   atoiOr(form.Enrolled, 0),
				Status:     form.Status,
			}
		},
		ID: func(t TrainingProgram) int { return t.ID },
		SearchText: func(t TrainingProgram) []string {
			return []string{t.Title, t.Instructor}
		},
		Category: func(t TrainingProgram) string { return t.Category },
		Status:   func(t TrainingProgram) string { return t.Status },
		Columns: []Column[TrainingProgram]{
			{"ID", func(t TrainingProgram) string { return itoa(t.ID) }},
			{"Title", func(t TrainingProgram) string { return t.Title }},
			{"Instructor", func(t TrainingProgram) string { return t.Instructor }},
			{"Category", func(t TrainingProgram) string { return t.Category }},
			{"Start", func(t TrainingProgram) string { return t.StartDate }},
			{"End", func(t TrainingProgram) string { return t.EndDate }},
			{"Enrolled", func(t TrainingProgram) string { return itoa(t.Enrolled) + "/" + itoa(t.Capacity) }},
			{"Status", func(t TrainingProgram) string { return t.Status }},
		},
		Seed: seedTrainingPrograms,
	}
}
