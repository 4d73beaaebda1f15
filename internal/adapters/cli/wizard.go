package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/core"

	"github.com/invopop/jsonschema"
)

var errInputClosed = errors.New("input closed before the form was submitted")

type formField struct {
	key     string
	label   string
	choices []string
}

// formFields lists the properties of a record schema in declaration order.
func formFields(s *jsonschema.Schema) []formField {
	var out []formField
	if s == nil || s.Properties == nil {
		return out
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		f := formField{key: pair.Key, label: core.Humanize(pair.Key)}
		for _, v := range pair.Value.Enum {
			f.choices = append(f.choices, fmt.Sprint(v))
		}
		out = append(out, f)
	}
	return out
}

// runForm walks the user through a create or edit form. After a rejected
// submission only the fields with errors are asked again.
func (r *runner) runForm(ctx context.Context, c app.CollectionService, editingID int) error {
	info := c.Info()
	var initial core.Fields
	if editingID > 0 {
		var err error
		if initial, err = c.Fields(ctx, editingID); err != nil {
			return err
		}
	}

	form := core.NewFormSession(func(ctx context.Context, fields core.Fields, id int) (string, error) {
		var (
			res *app.MutationResult
			err error
		)
		if id == 0 {
			res, err = c.Create(ctx, fields)
		} else {
			res, err = c.Update(ctx, id, fields)
		}
		if err != nil {
			return "", err
		}
		return res.Message, nil
	})
	form.Open(editingID, initial)

	verb := "New"
	if editingID > 0 {
		verb = fmt.Sprintf("Edit #%d:", editingID)
	}
	fmt.Fprintf(r.out, "%s %s. Enter keeps the value in brackets, '-' clears it, 'cancel' aborts.\n", verb, info.Singular)

	all := formFields(c.Schema())
	pending := all
	for {
		for _, f := range pending {
			if msg, ok := form.Errors()[f.key]; ok {
				fmt.Fprintf(r.out, "  ! %s\n", msg)
			}
			value, err := r.prompt(f, form.Fields()[f.key])
			if errors.Is(err, errCancelled) {
				form.Cancel()
				fmt.Fprintln(r.out, "Cancelled.")
				return nil
			}
			if err != nil {
				form.Cancel()
				return err
			}
			if err := form.Set(f.key, value); err != nil {
				return err
			}
		}

		errs, err := form.Submit(ctx, r.clock())
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			fmt.Fprintln(r.out, form.Banner(r.clock()))
			return nil
		}

		printFieldErrors(r.out, errs)
		pending = failing(all, errs)
	}
}

// failing returns the fields named in errs, or every field when the errors
// are not tied to a single input.
func failing(all []formField, errs core.FieldErrors) []formField {
	var out []formField
	for _, f := range all {
		if errs.Has(f.key) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}

var errCancelled = errors.New("cancelled")

func (r *runner) prompt(f formField, current string) (string, error) {
	label := f.label
	if len(f.choices) > 0 {
		label += " (" + strings.Join(f.choices, "/") + ")"
	}
	if current != "" {
		fmt.Fprintf(r.out, "  %s [%s]: ", label, current)
	} else {
		fmt.Fprintf(r.out, "  %s: ", label)
	}

	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errInputClosed
		}
		return "", err
	}
	line = strings.TrimSpace(line)
	switch {
	case strings.EqualFold(line, "cancel"):
		return "", errCancelled
	case line == "-":
		return "", nil
	case line == "":
		return current, nil
	}
	return line, nil
}
