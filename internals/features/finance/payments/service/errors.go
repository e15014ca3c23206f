// file: internals/features/finance/payments/service/errors.go
package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced to callers. Controllers map these onto HTTP codes.
var (
	ErrNotFound          = errors.New("payment not found")
	ErrInvalidState      = errors.New("transition not allowed from current status")
	ErrMissingField      = errors.New("required field missing")
	ErrConflictRetryable = errors.New("concurrent update conflict, retry the operation")

	// ErrDuplicateReceipt travels between the repository and the engine when
	// the receipt unique index rejects a row. Never surfaced to callers: the
	// engine retries with a recomputed sequence.
	ErrDuplicateReceipt = errors.New("duplicate receipt number")
)

// ValidationError carries the offending fields so the caller can render them.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(msgs, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

func invalidState(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, detail)
}
