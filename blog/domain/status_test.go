package domain

import "testing"

func TestParsePostStatus(t *testing.T) {
	for _, s := range []string{"draft", "published", "archived"} {
		status, err := ParsePostStatus(s)
		if err != nil {
			t.Errorf("ParsePostStatus(%q) returned error: %v", s, err)
		}
		if string(status) != s {
			t.Errorf("ParsePostStatus(%q) = %q", s, status)
		}
	}
	for _, s := range []string{"", "Draft", "deleted"} {
		if _, err := ParsePostStatus(s); err == nil {
			t.Errorf("ParsePostStatus(%q) succeeded, want error", s)
		}
	}
}

func TestParseCommentStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected", "spam"} {
		status, err := ParseCommentStatus(s)
		if err != nil {
			t.Errorf("ParseCommentStatus(%q) returned error: %v", s, err)
		}
		if string(status) != s {
			t.Errorf("ParseCommentStatus(%q) = %q", s, status)
		}
	}
	for _, s := range []string{"", "Pending", "deleted"} {
		if _, err := ParseCommentStatus(s); err == nil {
			t.Errorf("ParseCommentStatus(%q) succeeded, want error", s)
		}
	}
}
