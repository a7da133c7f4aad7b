package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/blog/domain"
)

// AuthorService manages author records. Posts snapshot author data at
// creation time, so profile updates here do not rewrite existing posts.
type AuthorService struct {
	authors domain.AuthorRepository
	clock   domain.Clock
}

func NewAuthorService(authors domain.AuthorRepository, clock domain.Clock) *AuthorService {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &AuthorService{authors: authors, clock: clock}
}

// RegisterAuthor creates a new author after checking email and username
// availability.
func (s *AuthorService) RegisterAuthor(ctx context.Context, rawEmail, username, displayName string) (*domain.Author, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	existing, err := s.authors.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("could not check email availability: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Resource: "author email", Key: rawEmail}
	}

	existing, err = s.authors.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("could not check username availability: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Resource: "author username", Key: username}
	}

	author, err := domain.NewAuthor(email, username, displayName, s.clock)
	if err != nil {
		return nil, err
	}
	if err := s.authors.Save(ctx, author); err != nil {
		return nil, err
	}

	log.Info().Str("authorID", author.ID().Hex()).Str("username", username).Msg("Registered author")
	return author, nil
}

// GetAuthor loads an author by id. A missing author is a NotFoundError.
func (s *AuthorService) GetAuthor(ctx context.Context, id primitive.ObjectID) (*domain.Author, error) {
	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, &NotFoundError{Resource: "author", Key: id.Hex()}
	}
	return author, nil
}

// UpdateProfile applies a partial profile update and saves the author.
func (s *AuthorService) UpdateProfile(ctx context.Context, id primitive.ObjectID, u domain.UpdateProfileParams) (*domain.Author, error) {
	author, err := s.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := author.UpdateProfile(u); err != nil {
		return nil, err
	}
	if err := s.authors.Save(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor removes an author record. Existing posts keep their
// snapshotted author data. A miss is a NotFoundError.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	removed, err := s.authors.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return &NotFoundError{Resource: "author", Key: id.Hex()}
	}
	log.Info().Str("authorID", id.Hex()).Msg("Deleted author")
	return nil
}

// ListAuthors returns one page of authors.
func (s *AuthorService) ListAuthors(ctx context.Context, page, pageSize int) ([]*domain.Author, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return s.authors.List(ctx, (page-1)*pageSize, pageSize)
}
