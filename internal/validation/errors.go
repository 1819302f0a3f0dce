package validation

import (
	"errors"
	"strings"

	"travel-admin/internal/locale"
)

var (
	ErrInvalid         = errors.New("validation failed")
	ErrUnknownCategory = errors.New("unknown required category")
)

type FieldError struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Errors collects every failing field of one submission.
type Errors struct {
	Fields []FieldError `json:"errors"`

	locale locale.Locale
}

func newErrors(l locale.Locale) *Errors {
	return &Errors{locale: l}
}

func (e *Errors) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{
		Field:   field,
		Reason:  reason,
		Message: locale.Message(e.locale, reason),
	})
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Reason returns the first reason recorded for field, or "".
func (e *Errors) Reason(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Reason
		}
	}
	return ""
}

func (e *Errors) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
