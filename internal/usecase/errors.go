package usecase

import (
	"strings"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// InputError lists every field a submission is missing.
type InputError struct {
	Fields []*entity.ValidationError
}

func (e *InputError) Error() string {
	return "missing fields: " + strings.Join(e.FieldNames(), ", ")
}

func (e *InputError) Is(target error) bool {
	return target == entity.ErrValidation
}

func (e *InputError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// TechnicalError wraps failures of the store that are not the caller's fault.
type TechnicalError struct {
	Op  string
	Err error
}

func (e *TechnicalError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}
