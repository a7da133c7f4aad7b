package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/blog/domain"
	"github.com/arbelos/inkwell/blog/persistence"
)

func newAuthorService(t *testing.T) *AuthorService {
	t.Helper()
	return NewAuthorService(persistence.NewMemoryAuthorRepository(nil), nil)
}

func TestRegisterAuthor(t *testing.T) {
	ctx := context.Background()
	service := newAuthorService(t)

	author, err := service.RegisterAuthor(ctx, "jane@example.com", "janedoe", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "janedoe", author.Username())

	_, err = service.RegisterAuthor(ctx, "jane@example.com", "othername", "Other")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "author email", conflict.Resource)

	_, err = service.RegisterAuthor(ctx, "other@example.com", "janedoe", "Other")
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "author username", conflict.Resource)

	_, err = service.RegisterAuthor(ctx, "bad-email", "someone", "Someone")
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateAuthorProfile(t *testing.T) {
	ctx := context.Background()
	service := newAuthorService(t)

	author, err := service.RegisterAuthor(ctx, "jane@example.com", "janedoe", "Jane Doe")
	require.NoError(t, err)

	bio := "Backend developer."
	updated, err := service.UpdateProfile(ctx, author.ID(), domain.UpdateProfileParams{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio())

	reloaded, err := service.GetAuthor(ctx, author.ID())
	require.NoError(t, err)
	assert.Equal(t, bio, reloaded.Bio())

	_, err = service.UpdateProfile(ctx, primitive.NewObjectID(), domain.UpdateProfileParams{Bio: &bio})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteAuthor(t *testing.T) {
	ctx := context.Background()
	service := newAuthorService(t)

	author, err := service.RegisterAuthor(ctx, "jane@example.com", "janedoe", "Jane Doe")
	require.NoError(t, err)

	require.NoError(t, service.DeleteAuthor(ctx, author.ID()))

	err = service.DeleteAuthor(ctx, author.ID())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListAuthors(t *testing.T) {
	ctx := context.Background()
	service := newAuthorService(t)

	for _, username := range []string{"first", "second", "third"} {
		_, err := service.RegisterAuthor(ctx, username+"@example.com", username+"-user", username)
		require.NoError(t, err)
	}

	authors, err := service.ListAuthors(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, authors, 2)

	authors, err = service.ListAuthors(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, authors, 3)
}
