package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing row and a row owned by another user.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNoFields       = errors.New("no fields to update")
)

// FieldError rejects a single key of a partial update.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}
