package application

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/blog/domain"
)

// CategoryService manages the category lookup collection.
type CategoryService struct {
	categories domain.CategoryRepository
	clock      domain.Clock
}

func NewCategoryService(categories domain.CategoryRepository, clock domain.Clock) *CategoryService {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &CategoryService{categories: categories, clock: clock}
}

// CreateCategory creates a category after checking slug availability.
func (s *CategoryService) CreateCategory(ctx context.Context, name, rawSlug, description string) (*domain.Category, error) {
	slug, err := domain.NewSlug(rawSlug)
	if err != nil {
		return nil, err
	}

	existing, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("could not check slug availability: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Resource: "category", Key: rawSlug}
	}

	category, err := domain.NewCategory(name, slug, description, s.clock)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns every category ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes a category. A miss is a NotFoundError.
func (s *CategoryService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	removed, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return &NotFoundError{Resource: "category", Key: id.Hex()}
	}
	return nil
}
