package domain

import (
	"strings"
	"testing"
)

func TestNewAuthor(t *testing.T) {
	email := mustEmail(t, "jane@example.com")

	author, err := NewAuthor(email, "janedoe", "Jane Doe", nil)
	if err != nil {
		t.Fatal(err)
	}
	if author.Username() != "janedoe" || author.DisplayName() != "Jane Doe" {
		t.Error("constructor fields mismatch")
	}
	if author.Bio() != "" || author.AvatarURL() != "" {
		t.Error("bio and avatar start empty")
	}

	tests := []struct {
		name        string
		email       Email
		username    string
		displayName string
	}{
		{"zero email", Email{}, "janedoe", "Jane"},
		{"username too short", email, "ab", "Jane"},
		{"username too long", email, strings.Repeat("u", 51), "Jane"},
		{"empty display name", email, "janedoe", ""},
		{"display name too long", email, "janedoe", strings.Repeat("d", 101)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAuthor(tt.email, tt.username, tt.displayName, nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	author, err := NewAuthor(mustEmail(t, "jane@example.com"), "janedoe", "Jane Doe", nil)
	if err != nil {
		t.Fatal(err)
	}

	bio := "Writes about distributed systems."
	avatar := "https://example.com/jane.png"
	if err := author.UpdateProfile(UpdateProfileParams{Bio: &bio, AvatarURL: &avatar}); err != nil {
		t.Fatal(err)
	}
	if author.Bio() != bio || author.AvatarURL() != avatar {
		t.Error("profile fields not applied")
	}
	if author.DisplayName() != "Jane Doe" {
		t.Error("absent fields must be unchanged")
	}

	empty := ""
	if err := author.UpdateProfile(UpdateProfileParams{Bio: &empty}); err != nil {
		t.Fatal(err)
	}
	if author.Bio() != "" {
		t.Error("bio should be clearable with the empty string")
	}

	if err := author.UpdateProfile(UpdateProfileParams{DisplayName: &empty}); err == nil {
		t.Error("empty display name should be rejected")
	}

	longBio := strings.Repeat("b", 1001)
	if err := author.UpdateProfile(UpdateProfileParams{Bio: &longBio}); err == nil {
		t.Error("overlong bio should be rejected")
	}
}

func TestAuthorRecordRoundTrip(t *testing.T) {
	author, err := NewAuthor(mustEmail(t, "jane@example.com"), "janedoe", "Jane Doe", nil)
	if err != nil {
		t.Fatal(err)
	}
	got := RehydrateAuthor(author.Record(), nil)
	if got.Record() != author.Record() {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got.Record(), author.Record())
	}
}
