package common

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a requested record does not exist. Repositories
// translate pgx.ErrNoRows into this sentinel so upper layers never depend
// on driver error types.
var ErrNotFound = errors.New("registro no encontrado")

// ValidationError carries per-field validation failures. Fields maps a
// request field name to its ordered list of messages; API clients bind the
// keys to form fields, so they must match the wire names verbatim.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidationError wraps a field error map in a ValidationError.
func NewValidationError(fields map[string][]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConflictError reports an integrity conflict: a delete refused because
// dependent records exist, or a write that violated a store-level
// uniqueness/foreign-key constraint after passing pre-validation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
