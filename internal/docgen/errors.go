package docgen

import (
	"errors"
	"strings"
)

// FieldError names one offending request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every constraint violation in a request.
// It is returned before any provider call is made.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// NewValidationError builds a single-field validation error. Flow inputs
// use this for their own constraint checks.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ErrGenerationFailed marks a fatal text-generation failure: the provider
// errored or returned no pages or no theme. The whole pipeline aborts and
// no partial document is produced.
var ErrGenerationFailed = errors.New("docgen: text generation returned no usable document")
