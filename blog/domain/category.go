package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const categoryNameMax = 100

// Category is a lookup record for grouping posts. Posts store the category
// by name; keeping the category's post count consistent with actual
// published posts is the caller's responsibility and is not atomic with
// post writes.
type Category struct {
	ID          primitive.ObjectID
	Name        string
	Slug        Slug
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory validates the name and creates a category with a generated id.
func NewCategory(name string, slug Slug, description string, clock Clock) (*Category, error) {
	if clock == nil {
		clock = UTCNow
	}
	if n := utf8.RuneCountInString(name); n < 1 || n > categoryNameMax {
		return nil, newValidationError("name", "must be 1-%d characters, got %d", categoryNameMax, n)
	}
	if slug.IsZero() {
		return nil, newValidationError("slug", "must not be empty")
	}
	now := clock()
	return &Category{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Slug:        slug,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CategoryRepository stores category records. Absent lookups return
// (nil, nil).
type CategoryRepository interface {
	Save(ctx context.Context, c *Category) error
	GetBySlug(ctx context.Context, slug Slug) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}
