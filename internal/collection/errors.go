package collection

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when an operation needs an acting user and
// none was supplied.
var ErrUnauthorized = errors.New("no authenticated user")

// FieldError reports a draft or patch value that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Required builds the FieldError for an empty mandatory field.
func Required(field string) *FieldError {
	return &FieldError{Field: field, Reason: "is required"}
}

// Undeclared builds the FieldError for a value outside an enumeration.
func Undeclared(field, value string) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf("%q is not an accepted value", value)}
}
