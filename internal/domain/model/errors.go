package model

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidInput is matched by every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid farmer data")

	ErrAssessmentNotFound = errors.New("credit assessment not found")
	ErrAlreadyCompleted   = errors.New("credit assessment already completed")

	// ErrDuplicateApplication is returned when a loan application has
	// already been assessed for the tenant.
	ErrDuplicateApplication = errors.New("loan application already assessed")
	ErrVersionConflict      = errors.New("credit assessment was modified concurrently")
)

// Violation names one rejected field.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// InvalidInputError reports farmer data that cannot be scored.
type InvalidInputError struct {
	Violations []Violation
}

func invalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Violations: []Violation{{Field: field, Reason: reason}}}
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
