package domain

import "regexp"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slug is a URL-friendly, human-readable secondary key for a post.
// It is immutable once constructed and compares by value.
type Slug struct {
	value string
}

// NewSlug validates raw against the slug format and wraps it.
func NewSlug(raw string) (Slug, error) {
	if !slugPattern.MatchString(raw) {
		return Slug{}, newValidationError("slug", "%q does not match the slug format", raw)
	}
	return Slug{value: raw}, nil
}

func (s Slug) String() string {
	return s.value
}

// IsZero reports whether s is the uninitialized slug.
func (s Slug) IsZero() bool {
	return s.value == ""
}
