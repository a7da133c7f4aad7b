package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	usernameMin    = 3
	usernameMax    = 50
	displayNameMax = 100
	bioMax         = 1000
)

// Author is the identity behind posts. Posts reference it by id plus a
// denormalized name/email snapshot; the author record itself lives in its
// own collection. Username uniqueness is enforced by the repository index,
// not by the entity.
type Author struct {
	id          primitive.ObjectID
	email       Email
	username    string
	displayName string
	bio         string
	avatarURL   string
	createdAt   time.Time
	updatedAt   time.Time
	clock       Clock
}

// NewAuthor creates an author with a generated id. A nil clock falls back
// to UTCNow.
func NewAuthor(email Email, username, displayName string, clock Clock) (*Author, error) {
	if clock == nil {
		clock = UTCNow
	}
	if email.IsZero() {
		return nil, newValidationError("email", "must not be empty")
	}
	if n := utf8.RuneCountInString(username); n < usernameMin || n > usernameMax {
		return nil, newValidationError("username", "must be %d-%d characters, got %d", usernameMin, usernameMax, n)
	}
	if n := utf8.RuneCountInString(displayName); n < 1 || n > displayNameMax {
		return nil, newValidationError("display_name", "must be 1-%d characters, got %d", displayNameMax, n)
	}
	now := clock()
	return &Author{
		id:          primitive.NewObjectID(),
		email:       email,
		username:    username,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
		clock:       clock,
	}, nil
}

// AuthorRecord is the flat snapshot of an author used by the persistence
// mapping.
type AuthorRecord struct {
	ID          primitive.ObjectID
	Email       Email
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RehydrateAuthor rebuilds an author from storage without revalidation.
func RehydrateAuthor(rec AuthorRecord, clock Clock) *Author {
	if clock == nil {
		clock = UTCNow
	}
	return &Author{
		id:          rec.ID,
		email:       rec.Email,
		username:    rec.Username,
		displayName: rec.DisplayName,
		bio:         rec.Bio,
		avatarURL:   rec.AvatarURL,
		createdAt:   rec.CreatedAt,
		updatedAt:   rec.UpdatedAt,
		clock:       clock,
	}
}

// Record extracts the persistence snapshot of the author.
func (a *Author) Record() AuthorRecord {
	return AuthorRecord{
		ID:          a.id,
		Email:       a.email,
		Username:    a.username,
		DisplayName: a.displayName,
		Bio:         a.bio,
		AvatarURL:   a.avatarURL,
		CreatedAt:   a.createdAt,
		UpdatedAt:   a.updatedAt,
	}
}

func (a *Author) ID() primitive.ObjectID { return a.id }
func (a *Author) Email() Email           { return a.email }
func (a *Author) Username() string       { return a.username }
func (a *Author) DisplayName() string    { return a.displayName }
func (a *Author) Bio() string            { return a.bio }
func (a *Author) AvatarURL() string      { return a.avatarURL }
func (a *Author) CreatedAt() time.Time   { return a.createdAt }
func (a *Author) UpdatedAt() time.Time   { return a.updatedAt }

// Equal reports identity equality by id.
func (a *Author) Equal(other *Author) bool {
	return other != nil && a.id == other.id
}

// UpdateProfileParams carries a partial profile update: nil fields are left
// unchanged. Bio and AvatarURL may be set to the empty string to clear them.
type UpdateProfileParams struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

// UpdateProfile applies a validated partial update and refreshes updated_at.
func (a *Author) UpdateProfile(u UpdateProfileParams) error {
	if u.DisplayName != nil {
		if n := utf8.RuneCountInString(*u.DisplayName); n < 1 || n > displayNameMax {
			return newValidationError("display_name", "must be 1-%d characters, got %d", displayNameMax, n)
		}
	}
	if u.Bio != nil {
		if n := utf8.RuneCountInString(*u.Bio); n > bioMax {
			return newValidationError("bio", "must be at most %d characters, got %d", bioMax, n)
		}
	}
	if u.DisplayName != nil {
		a.displayName = *u.DisplayName
	}
	if u.Bio != nil {
		a.bio = *u.Bio
	}
	if u.AvatarURL != nil {
		a.avatarURL = *u.AvatarURL
	}
	a.updatedAt = a.clock()
	return nil
}

// AuthorRepository stores author records. Absent lookups return (nil, nil).
type AuthorRepository interface {
	// Save performs an idempotent insert-or-replace keyed by the author id.
	Save(ctx context.Context, a *Author) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error)
	GetByEmail(ctx context.Context, email Email) (*Author, error)
	GetByUsername(ctx context.Context, username string) (*Author, error)
	List(ctx context.Context, skip, limit int) ([]*Author, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}
