package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned both for absent rows and rows outside the caller's
// scope. Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not_found")

// ValidationError reports a malformed query or request parameter.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

func NewValidationError(field, code string) error {
	return &ValidationError{Field: field, Code: code}
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
