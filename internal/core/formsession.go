package core

import (
	"context"
	"errors"
	"maps"
	"time"
)

// FormState is the lifecycle of a create/edit form.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormInvalid
)

func (s FormState) String() string {
	switch s {
	case FormOpen:
		return "open"
	case FormInvalid:
		return "invalid"
	}
	return "closed"
}

// BannerTTL is how long the success banner stays visible.
const BannerTTL = 3 * time.Second

var ErrFormClosed = errors.New("form is not open")

// SubmitFunc validates and stores one submission. editingID is 0 when
// creating. A *ValidationError keeps the form open.
type SubmitFunc func(ctx context.Context, fields Fields, editingID int) (message string, err error)

// FormSession drives one modal form: Closed, then Open, then zero or more
// Invalid rounds, then Closed again with a success banner.
type FormSession struct {
	submit SubmitFunc

	state     FormState
	editingID int
	fields    Fields
	errs      FieldErrors

	banner   string
	bannerAt time.Time
}

func NewFormSession(submit SubmitFunc) *FormSession {
	return &FormSession{submit: submit}
}

// Open starts a form. initial pre-fills the fields when editing.
func (s *FormSession) Open(editingID int, initial Fields) {
	s.state = FormOpen
	s.editingID = editingID
	s.fields = Fields{}
	maps.Copy(s.fields, initial)
	s.errs = nil
}

// Set changes one field. Editing a field clears its error.
func (s *FormSession) Set(key, value string) error {
	if s.state == FormClosed {
		return ErrFormClosed
	}
	s.fields[key] = value
	delete(s.errs, key)
	return nil
}

// Submit hands the current fields to the submit function. On validation
// failure the form stays open with the errors and they are returned; on
// success it closes and shows the banner.
func (s *FormSession) Submit(ctx context.Context, now time.Time) (FieldErrors, error) {
	if s.state == FormClosed {
		return nil, ErrFormClosed
	}
	msg, err := s.submit(ctx, maps.Clone(s.fields), s.editingID)
	if err != nil {
		if fe, ok := AsValidationError(err); ok {
			s.state = FormInvalid
			s.errs = fe
			return fe, nil
		}
		return nil, err
	}
	s.reset()
	s.banner = msg
	s.bannerAt = now
	return nil, nil
}

// Cancel closes the form and discards everything typed into it.
func (s *FormSession) Cancel() {
	s.reset()
}

func (s *FormSession) reset() {
	s.state = FormClosed
	s.editingID = 0
	s.fields = nil
	s.errs = nil
}

// Banner returns the success message while it is still visible at now.
func (s *FormSession) Banner(now time.Time) string {
	if s.banner == "" || now.Sub(s.bannerAt) >= BannerTTL {
		return ""
	}
	return s.banner
}

func (s *FormSession) State() FormState { return s.state }
func (s *FormSession) EditingID() int { return s.editingID }
func (s *FormSession) Fields() Fields { return maps.Clone(s.fields) }
func (s *FormSession) Errors() FieldErrors { return maps.Clone(s.errs) }
