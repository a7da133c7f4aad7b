package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/blog/domain"
)

const excerptMaxChars = 500

// PostService drives the Post aggregate: it loads a post through the
// repository, invokes invariant-checked mutators on it, and saves the whole
// aggregate back in one write. Validation and domain errors from the
// aggregate propagate to the caller unchanged.
type PostService struct {
	posts      domain.PostRepository
	authors    domain.AuthorRepository
	categories domain.CategoryRepository
	renderer   ContentRenderer
	clock      domain.Clock
}

// NewPostService wires the service. A nil clock falls back to domain.UTCNow.
func NewPostService(
	posts domain.PostRepository,
	authors domain.AuthorRepository,
	categories domain.CategoryRepository,
	renderer ContentRenderer,
	clock domain.Clock,
) *PostService {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &PostService{
		posts:      posts,
		authors:    authors,
		categories: categories,
		renderer:   renderer,
		clock:      clock,
	}
}

// CreatePostInput carries the inputs for CreatePost. AuthorID, Excerpt,
// Tags, and Category are optional.
type CreatePostInput struct {
	Slug     string
	Title    string
	Content  string
	Excerpt  string
	AuthorID *primitive.ObjectID
	Tags     []string
	Category string
}

// CreatePost creates a draft post. The author, when given, is snapshotted
// into the post at creation time; a missing excerpt is derived from the
// first paragraph of the content.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*domain.Post, error) {
	slug, err := domain.NewSlug(in.Slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("could not check slug availability: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Resource: "post", Key: in.Slug}
	}

	var author *domain.Author
	if in.AuthorID != nil {
		author, err = s.authors.GetByID(ctx, *in.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("could not load author: %w", err)
		}
		if author == nil {
			return nil, &NotFoundError{Resource: "author", Key: in.AuthorID.Hex()}
		}
	}

	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = s.renderer.Excerpt(in.Content, excerptMaxChars)
	}

	post, err := domain.NewPost(domain.NewPostParams{
		Slug:     slug,
		Title:    in.Title,
		Content:  in.Content,
		Excerpt:  excerpt,
		Author:   author,
		Tags:     in.Tags,
		Category: in.Category,
		Clock:    s.clock,
	})
	if err != nil {
		return nil, err
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	log.Info().Str("postID", post.ID().Hex()).Str("slug", in.Slug).Msg("Created post")
	return post, nil
}

// GetPost loads a post by id. A missing post is a NotFoundError.
func (s *PostService) GetPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post", Key: id.Hex()}
	}
	return post, nil
}

// GetPostBySlug loads a post by its unique slug.
func (s *PostService) GetPostBySlug(ctx context.Context, rawSlug string) (*domain.Post, error) {
	slug, err := domain.NewSlug(rawSlug)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post", Key: rawSlug}
	}
	return post, nil
}

// RenderPostHTML converts the post content markdown to HTML for the public
// read path.
func (s *PostService) RenderPostHTML(post *domain.Post) (string, error) {
	return s.renderer.RenderHTML(post.Content())
}

// UpdatePost applies a partial content update and saves the aggregate.
func (s *PostService) UpdatePost(ctx context.Context, id primitive.ObjectID, u domain.UpdateContentParams) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.UpdateContent(u)
	})
}

// PublishPost transitions the post to published.
func (s *PostService) PublishPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.Publish()
	})
}

// UnpublishPost returns the post to draft.
func (s *PostService) UnpublishPost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.Unpublish()
	})
}

// ArchivePost retires a published post.
func (s *PostService) ArchivePost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.Archive()
	})
}

// UnarchivePost returns an archived post to published.
func (s *PostService) UnarchivePost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.Unarchive()
	})
}

// DeletePost removes the post. Deleting a missing post is a NotFoundError.
func (s *PostService) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	removed, err := s.posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return &NotFoundError{Resource: "post", Key: id.Hex()}
	}
	log.Info().Str("postID", id.Hex()).Msg("Deleted post")
	return nil
}

// PostPage is one pagination window of published posts plus the total used
// to compute page counts.
type PostPage struct {
	Posts    []*domain.Post
	Total    int64
	Page     int
	PageSize int
}

// ListPublished returns one page of published posts, newest first.
func (s *PostService) ListPublished(ctx context.Context, page, pageSize int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	posts, err := s.posts.FindPublished(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.posts.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListByTag returns one page of published posts carrying the tag.
func (s *PostService) ListByTag(ctx context.Context, tag string, page, pageSize int) ([]*domain.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return s.posts.FindByTag(ctx, tag, (page-1)*pageSize, pageSize)
}

// ListByAuthor returns one page of the author's posts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID primitive.ObjectID, page, pageSize int) ([]*domain.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return s.posts.FindByAuthor(ctx, authorID, (page-1)*pageSize, pageSize)
}

// AddCommentInput carries a comment submission.
type AddCommentInput struct {
	AuthorName  string
	AuthorEmail string
	Content     string
}

// AddComment attaches a new pending comment to a published post and returns
// a copy of it.
func (s *PostService) AddComment(ctx context.Context, postID primitive.ObjectID, in AddCommentInput) (*domain.Comment, error) {
	email, err := domain.NewEmail(in.AuthorEmail)
	if err != nil {
		return nil, err
	}
	comment, err := domain.NewComment(in.AuthorName, email, in.Content, s.clock)
	if err != nil {
		return nil, err
	}

	if _, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		return post.AddComment(comment)
	}); err != nil {
		return nil, err
	}
	return comment, nil
}

// RemoveComment deletes a comment from the post. A missing comment is a
// NotFoundError.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		if !post.RemoveComment(commentID) {
			return &NotFoundError{Resource: "comment", Key: commentID.Hex()}
		}
		return nil
	})
	return err
}

// ApproveComment approves a pending comment on the post.
func (s *PostService) ApproveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		return post.ApproveComment(commentID)
	})
	return err
}

// RejectComment rejects a pending comment on the post.
func (s *PostService) RejectComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		return post.RejectComment(commentID)
	})
	return err
}

// MarkCommentAsSpam flags a comment on the post as spam.
func (s *PostService) MarkCommentAsSpam(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		return post.MarkCommentAsSpam(commentID)
	})
	return err
}

// LikeComment increments a comment's like counter.
func (s *PostService) LikeComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		return post.LikeComment(commentID)
	})
	return err
}

// UnlikeComment decrements a comment's like counter, floored at zero.
func (s *PostService) UnlikeComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := s.mutate(ctx, postID, func(post *domain.Post) error {
		return post.UnlikeComment(commentID)
	})
	return err
}

// LikePost increments the post's like counter.
func (s *PostService) LikePost(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		post.Like()
		return nil
	})
}

// RecordView increments the post's view counter. Only published posts
// record views.
func (s *PostService) RecordView(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.RecordView()
	})
}

// AddTags merges tags into the post.
func (s *PostService) AddTags(ctx context.Context, id primitive.ObjectID, tags []string) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.AddTags(tags)
	})
}

// RemoveTag removes a tag from the post. A missing tag is a NotFoundError.
func (s *PostService) RemoveTag(ctx context.Context, id primitive.ObjectID, tag string) (*domain.Post, error) {
	return s.mutate(ctx, id, func(post *domain.Post) error {
		if !post.RemoveTag(tag) {
			return &NotFoundError{Resource: "tag", Key: tag}
		}
		return nil
	})
}

// SetPostCategory assigns the category identified by its slug to the post,
// or clears the category when categorySlug is nil. Keeping any per-category
// post counters in sync is a separate follow-up write by the caller, not
// atomic with this one.
func (s *PostService) SetPostCategory(ctx context.Context, id primitive.ObjectID, categorySlug *string) (*domain.Post, error) {
	var name *string
	if categorySlug != nil {
		slug, err := domain.NewSlug(*categorySlug)
		if err != nil {
			return nil, err
		}
		category, err := s.categories.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, &NotFoundError{Resource: "category", Key: *categorySlug}
		}
		name = &category.Name
	}
	return s.mutate(ctx, id, func(post *domain.Post) error {
		return post.SetCategory(name)
	})
}

// mutate runs the load-mutate-save cycle for a single aggregate. The whole
// aggregate is written back in one call; concurrent saves of the same id
// are last-writer-wins at the storage layer.
func (s *PostService) mutate(ctx context.Context, id primitive.ObjectID, fn func(*domain.Post) error) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post", Key: id.Hex()}
	}
	if err := fn(post); err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
