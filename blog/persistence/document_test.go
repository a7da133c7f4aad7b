package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arbelos/inkwell/blog/domain"
)

func fixedClock(t time.Time) domain.Clock {
	return func() time.Time { return t }
}

func buildPost(t *testing.T, clock domain.Clock) *domain.Post {
	t.Helper()
	slug, err := domain.NewSlug("mapping-round-trip")
	require.NoError(t, err)
	email, err := domain.NewEmail("jane@example.com")
	require.NoError(t, err)
	author, err := domain.NewAuthor(email, "janedoe", "Jane Doe", clock)
	require.NoError(t, err)

	post, err := domain.NewPost(domain.NewPostParams{
		Slug:     slug,
		Title:    "Mapping Round Trip",
		Content:  "Content long enough to satisfy validation.",
		Excerpt:  "A short excerpt.",
		Author:   author,
		Tags:     []string{"go", "mongo"},
		Category: "Engineering",
		Clock:    clock,
	})
	require.NoError(t, err)
	require.NoError(t, post.Publish())

	for _, name := range []string{"First Reader", "Second Reader", "Third Reader"} {
		readerMail, err := domain.NewEmail("reader@example.com")
		require.NoError(t, err)
		comment, err := domain.NewComment(name, readerMail, "Comment from "+name, clock)
		require.NoError(t, err)
		require.NoError(t, post.AddComment(comment))
	}
	comments := post.Comments()
	require.NoError(t, post.ApproveComment(comments[0].ID()))
	require.NoError(t, post.LikeComment(comments[1].ID()))

	return post
}

func TestPostDocumentRoundTrip(t *testing.T) {
	clock := fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	post := buildPost(t, clock)

	doc := toPostDocument(post)
	got, err := doc.toDomain(clock)
	require.NoError(t, err)

	require.Equal(t, post.Record(), got.Record())

	gotComments := got.Comments()
	require.Len(t, gotComments, 3)
	require.Equal(t, domain.CommentStatusApproved, gotComments[0].Status())
	require.Equal(t, 1, gotComments[1].Likes())
	require.Equal(t, domain.CommentStatusPending, gotComments[2].Status())
}

func TestPostDocumentCorruptFields(t *testing.T) {
	clock := fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	post := buildPost(t, clock)

	t.Run("bad slug", func(t *testing.T) {
		doc := toPostDocument(post)
		doc.Slug = "Not A Slug"
		_, err := doc.toDomain(clock)
		require.Error(t, err)
	})

	t.Run("bad status", func(t *testing.T) {
		doc := toPostDocument(post)
		doc.Status = "deleted"
		_, err := doc.toDomain(clock)
		require.Error(t, err)
	})

	t.Run("bad comment email", func(t *testing.T) {
		doc := toPostDocument(post)
		doc.Comments[0].AuthorEmail = "not-an-email"
		_, err := doc.toDomain(clock)
		require.Error(t, err)
	})
}

func TestAuthorDocumentRoundTrip(t *testing.T) {
	clock := fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	email, err := domain.NewEmail("jane@example.com")
	require.NoError(t, err)
	author, err := domain.NewAuthor(email, "janedoe", "Jane Doe", clock)
	require.NoError(t, err)

	bio := "Writes about storage engines."
	require.NoError(t, author.UpdateProfile(domain.UpdateProfileParams{Bio: &bio}))

	got, err := toAuthorDocument(author).toDomain(clock)
	require.NoError(t, err)
	require.Equal(t, author.Record(), got.Record())
}

func TestCategoryDocumentRoundTrip(t *testing.T) {
	clock := fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	slug, err := domain.NewSlug("engineering")
	require.NoError(t, err)
	category, err := domain.NewCategory("Engineering", slug, "Systems and tooling", clock)
	require.NoError(t, err)

	got, err := toCategoryDocument(category).toDomain()
	require.NoError(t, err)
	require.Equal(t, category, got)
}
