package domain

import "testing"

func TestNewSlug(t *testing.T) {
	valid := []string{
		"hello",
		"hello-world",
		"my-first-post",
		"post-123",
		"123",
		"a",
	}
	for _, raw := range valid {
		t.Run("valid/"+raw, func(t *testing.T) {
			slug, err := NewSlug(raw)
			if err != nil {
				t.Fatalf("NewSlug(%q) returned error: %v", raw, err)
			}
			if slug.String() != raw {
				t.Errorf("slug round-trip: got %q, want %q", slug.String(), raw)
			}
		})
	}

	invalid := []string{
		"",
		"Hello",
		"hello world",
		"-hello",
		"hello-",
		"hello--world",
		"hello_world",
		"héllo",
		"hello!",
	}
	for _, raw := range invalid {
		t.Run("invalid/"+raw, func(t *testing.T) {
			if _, err := NewSlug(raw); err == nil {
				t.Errorf("NewSlug(%q) succeeded, want error", raw)
			}
		})
	}
}

func TestSlugIsZero(t *testing.T) {
	var zero Slug
	if !zero.IsZero() {
		t.Error("zero Slug should report IsZero")
	}
	slug, err := NewSlug("hello")
	if err != nil {
		t.Fatal(err)
	}
	if slug.IsZero() {
		t.Error("constructed Slug should not report IsZero")
	}
}

func TestNewEmail(t *testing.T) {
	valid := []string{
		"reader@example.com",
		"first.last@sub.example.org",
		"a+b@example.io",
	}
	for _, raw := range valid {
		t.Run("valid/"+raw, func(t *testing.T) {
			email, err := NewEmail(raw)
			if err != nil {
				t.Fatalf("NewEmail(%q) returned error: %v", raw, err)
			}
			if email.String() != raw {
				t.Errorf("email round-trip: got %q, want %q", email.String(), raw)
			}
		})
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@example.com",
		"two@@example.com",
		"spaces in@example.com",
		"user@example.c",
	}
	for _, raw := range invalid {
		t.Run("invalid/"+raw, func(t *testing.T) {
			if _, err := NewEmail(raw); err == nil {
				t.Errorf("NewEmail(%q) succeeded, want error", raw)
			}
		})
	}
}
