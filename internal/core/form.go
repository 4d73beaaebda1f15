package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

// Fields is the raw input of one form submission. Every value is a string,
// including numbers and dates, matching what an HTML form posts.
type Fields map[string]string

// Clone returns a copy with every value trimmed.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error.
func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// ValidationError rejects a submission. It is the only failure a user can
// correct by editing the form.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into its field errors.
func AsValidationError(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

// DateLayout is the wire format of every date field.
const DateLayout = "2006-01-02"

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	oneOfParamsRegex = regexp.MustCompile(`'[^']*'|\S+`)

	validate    = newValidator()
	formDecoder = form.NewDecoder()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"basicemail": func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		},
		"isodate": func(fl validator.FieldLevel) bool {
			_, ok := ParseDate(fl.Field().String())
			return ok
		},
		"posdecimal": func(fl validator.FieldLevel) bool {
			d, ok := parseAmount(fl.Field().String())
			return ok && d.IsPositive()
		},
		"nonnegdecimal": func(fl validator.FieldLevel) bool {
			_, ok := parseAmount(fl.Field().String())
			return ok
		},
		"posint": func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Field().String())
			return err == nil && n > 0
		},
		"nonnegint": func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Field().String())
			return err == nil && n >= 0
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

// decodeFields fills the form struct pointed to by dst from fields.
func decodeFields(fields Fields, dst any) error {
	values := make(url.Values, len(fields))
	for k, v := range fields {
		values.Set(k, v)
	}
	return formDecoder.Decode(dst, values)
}

// structErrors runs the struct tag rules of the form pointed to by src.
func structErrors(src any, labels map[string]string) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(src)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		panic(fmt.Sprintf("validate %T: %v", src, err))
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), ruleMessage(fe.Tag(), fe.Param(), fieldLabel(fe.Field(), labels)))
	}
	return errs
}

func ruleMessage(tag, param, label string) string {
	switch tag {
	case "required":
		return label + " is required"
	case "basicemail":
		return "Please enter a valid email address"
	case "isodate":
		return label + " must be a valid date (YYYY-MM-DD)"
	case "oneof":
		opts := oneOfParamsRegex.FindAllString(param, -1)
		for i, o := range opts {
			opts[i] = strings.Trim(o, "'")
		}
		return label + " must be one of: " + strings.Join(opts, ", ")
	case "posdecimal":
		return label + " must be a positive number"
	case "nonnegdecimal":
		return label + " must be a valid amount"
	case "posint":
		return label + " must be a whole number greater than zero"
	case "nonnegint":
		return label + " must be a whole number of zero or more"
	}
	return label + " is invalid"
}

func fieldLabel(field string, labels map[string]string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return Humanize(field)
}

// Humanize turns a camelCase field name into a sentence-case label:
// "startDate" becomes "Start date".
func Humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FieldsFrom converts a decoded JSON object into Fields. Numbers and
// booleans are stringified; null becomes empty. Nested values are rejected.
func FieldsFrom(m map[string]any) (Fields, error) {
	out := make(Fields, len(m))
	for k, v := range m {
		switch tv := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = tv
		case bool:
			out[k] = strconv.FormatBool(tv)
		case float64:
			out[k] = strconv.FormatFloat(tv, 'f', -1, 64)
		case json.Number:
			out[k] = tv.String()
		default:
			return nil, fmt.Errorf("field %q: expected a string, number or boolean", k)
		}
	}
	return out, nil
}
