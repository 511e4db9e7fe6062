package election

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord is wrapped by every ValidationError.
var ErrInvalidRecord = errors.New("invalid election record")

// ErrDuplicateID is returned when two catalog records share an id.
var ErrDuplicateID = errors.New("duplicate election id")

// ValidationError lists what is wrong with a record, keyed by JSON field path.
type ValidationError struct {
	ID     string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidRecord, e.ID, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRecord }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the field constraints and the round invariants of r:
// one date per round, rounds numbered 1..n, and fixed consecutive rounds
// in chronological order.
func Validate(r Record) error {
	fields := map[string]string{}

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			fields[fieldPath(fe)] = friendlyMessage(fe)
		}
	}

	if len(r.Dates) != r.Rounds {
		fields["dates"] = fmt.Sprintf("has %d entries, want %d (rounds)", len(r.Dates), r.Rounds)
	}
	for i, rd := range r.Dates {
		if rd.Round != i+1 {
			fields[fmt.Sprintf("dates[%d].round", i)] = fmt.Sprintf("must be %d", i+1)
		}
		if rd.Date.IsZero() {
			fields[fmt.Sprintf("dates[%d].date", i)] = "is required"
			continue
		}
		if i == 0 {
			continue
		}
		prev := r.Dates[i-1]
		if prev.IsDateFixed && rd.IsDateFixed && rd.Date.Before(prev.Date) {
			fields[fmt.Sprintf("dates[%d].date", i)] = "is before the previous round"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{ID: r.ID, Fields: fields}
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
