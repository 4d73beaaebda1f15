package core

import (
	"errors"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrRecordNotFound is returned when an id does not exist in a collection.
var ErrRecordNotFound = errors.New("record not found")

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Filter narrows a list view. Empty or "All" Category and Status match
// everything.
type Filter struct {
	Search   string
	Category string
	Status   string
	Fuzzy    bool
}

// Column is one column of a tabular rendering of T.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Schema describes one record collection: how its form is validated, how a
// record is built from a valid form, and how records are listed.
// T is the stored record, F the string-only form struct decoded from Fields.
type Schema[T any, F any] struct {
	Name     string // storage key
	Title    string // "Employees"
	Singular string // "Employee"
	Labels   map[string]string

	// Normalize runs on the trimmed copy of the fields before decoding:
	// defaults, case folding.
	Normalize func(f Fields)
	// Rules adds the record-level checks. others excludes the record being
	// edited.
	Rules func(form *F, others []T, today time.Time, errs FieldErrors)
	Build func(form *F, id int) T

	ID         func(T) int
	SearchText func(T) []string
	Category   func(T) string
	Status     func(T) string
	Columns    []Column[T]
	Seed       func() []T
}

// Validate runs every rule against fields and returns the decoded form
// together with the errors. editingID is 0 for a new record.
func (s *Schema[T, F]) Validate(fields Fields, existing []T, editingID int, today time.Time) (*F, FieldErrors) {
	f := fields.Clone()
	if s.Normalize != nil {
		s.Normalize(f)
	}

	form := new(F)
	if err := decodeFields(f, form); err != nil {
		return form, FieldErrors{"_form": "The form could not be read"}
	}

	errs := structErrors(form, s.Labels)
	if s.Rules != nil {
		s.Rules(form, s.others(existing, editingID), today, errs)
	}
	return form, errs
}

// Submit validates fields and builds the record. A new record (editingID 0)
// gets NextID(existing); an edited one keeps editingID. The caller stores it.
func (s *Schema[T, F]) Submit(fields Fields, existing []T, editingID int, today time.Time) (T, error) {
	form, errs := s.Validate(fields, existing, editingID, today)
	if len(errs) > 0 {
		var zero T
		return zero, &ValidationError{Fields: errs}
	}
	id := editingID
	if id == 0 {
		id = s.NextID(existing)
	}
	return s.Build(form, id), nil
}

// NextID is one more than the largest id in records, or 1.
func (s *Schema[T, F]) NextID(records []T) int {
	next := 1
	for _, r := range records {
		if id := s.ID(r); id >= next {
			next = id + 1
		}
	}
	return next
}

// Find returns the index of the record with id, or -1.
func (s *Schema[T, F]) Find(records []T, id int) int {
	for i, r := range records {
		if s.ID(r) == id {
			return i
		}
	}
	return -1
}

func (s *Schema[T, F]) others(records []T, editingID int) []T {
	if editingID == 0 {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if s.ID(r) != editingID {
			out = append(out, r)
		}
	}
	return out
}

// Match applies f to one record.
func (s *Schema[T, F]) Match(r T, f Filter) bool {
	if !choiceMatches(f.Category, s.Category, r) || !choiceMatches(f.Status, s.Status, r) {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" || s.SearchText == nil {
		return true
	}
	for _, text := range s.SearchText(r) {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
		if f.Fuzzy && fuzzy.MatchNormalizedFold(needle, text) {
			return true
		}
	}
	return false
}

// Filter returns the matching records in their stored order.
func (s *Schema[T, F]) Filter(records []T, f Filter) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if s.Match(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func choiceMatches[T any](want string, get func(T) string, r T) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") || get == nil {
		return true
	}
	return strings.EqualFold(get(r), want)
}

// Message is the banner text shown after a successful operation.
func (s *Schema[T, F]) Message(op Operation) string {
	switch op {
	case OpCreate:
		return s.Singular + " added successfully"
	case OpUpdate:
		return s.Singular + " updated successfully"
	case OpDelete:
		return s.Singular + " deleted successfully"
	}
	return s.Singular + " saved"
}

// Headers returns the column headers.
func (s *Schema[T, F]) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

// Rows renders records as string rows in column order.
func (s *Schema[T, F]) Rows(records []T) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(s.Columns))
		for j, c := range s.Columns {
			row[j] = c.Value(r)
		}
		rows[i] = row
	}
	return rows
}
