package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)

// Email is a validated email address. Immutable, compares by value.
type Email struct {
	value string
}

// NewEmail validates raw against a simple RFC-like pattern and wraps it.
func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, newValidationError("email", "%q is not a valid email address", raw)
	}
	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}

// IsZero reports whether e is the uninitialized email.
func (e Email) IsZero() bool {
	return e.value == ""
}
