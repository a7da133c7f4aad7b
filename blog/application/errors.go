package application

import "fmt"

// NotFoundError reports an operation whose target does not exist. Plain
// lookups return absent values instead; only operations that require a
// target surface this.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ConflictError reports a uniqueness clash (slug, email, username).
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.Key)
}
