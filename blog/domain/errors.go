package domain

import "fmt"

// ValidationError reports a value that failed a static format, length, or
// range constraint. The entity being mutated is left in its last valid state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DomainError reports an operation whose state-dependent guard failed.
// It carries the entity id, its current status, and the attempted operation
// so callers can build a precise user-facing message.
type DomainError struct {
	Op     string
	ID     string
	Status string
	Reason string
}

func (e *DomainError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s %s (status %s): %s", e.Op, e.ID, e.Status, e.Reason)
}
