package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	titleMin   = 1
	titleMax   = 255
	contentMin = 10
	contentMax = 50000
	excerptMax = 500
	tagMax     = 50
)

// Post is the aggregate root of the blog core. It owns its comments, is the
// unit of consistency, and is loaded and saved whole. All mutation goes
// through invariant-checked methods; a failed guard or validation leaves the
// aggregate unmodified.
type Post struct {
	id          primitive.ObjectID
	slug        Slug
	title       string
	content     string
	excerpt     string
	authorID    *primitive.ObjectID
	authorName  string
	authorEmail string
	status      PostStatus
	tags        []string
	category    string
	viewsCount  int
	likesCount  int
	comments    []*Comment
	createdAt   time.Time
	updatedAt   time.Time
	publishedAt *time.Time
	clock       Clock
}

// NewPostParams carries the inputs for NewPost. Author, Excerpt, Tags,
// Category, and Clock are optional.
type NewPostParams struct {
	Slug     Slug
	Title    string
	Content  string
	Excerpt  string
	Author   *Author
	Tags     []string
	Category string
	Clock    Clock
}

// NewPost creates a draft post with a generated id. When an Author is given,
// its id, name, and email are copied into the post as a denormalized
// snapshot; the post never holds a live reference to the author.
func NewPost(p NewPostParams) (*Post, error) {
	clock := p.Clock
	if clock == nil {
		clock = UTCNow
	}
	if p.Slug.IsZero() {
		return nil, newValidationError("slug", "must not be empty")
	}
	if err := validateTitle(p.Title); err != nil {
		return nil, err
	}
	if err := validateContent(p.Content); err != nil {
		return nil, err
	}
	if err := validateExcerpt(p.Excerpt); err != nil {
		return nil, err
	}
	tags, err := dedupTags(nil, p.Tags)
	if err != nil {
		return nil, err
	}

	now := clock()
	post := &Post{
		id:        primitive.NewObjectID(),
		slug:      p.Slug,
		title:     p.Title,
		content:   p.Content,
		excerpt:   p.Excerpt,
		status:    PostStatusDraft,
		tags:      tags,
		category:  p.Category,
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}
	if p.Author != nil {
		id := p.Author.ID()
		post.authorID = &id
		post.authorName = p.Author.DisplayName()
		post.authorEmail = p.Author.Email().String()
	}
	return post, nil
}

// PostRecord is the flat snapshot of a post used by the persistence mapping.
type PostRecord struct {
	ID          primitive.ObjectID
	Slug        Slug
	Title       string
	Content     string
	Excerpt     string
	AuthorID    *primitive.ObjectID
	AuthorName  string
	AuthorEmail string
	Status      PostStatus
	Tags        []string
	Category    string
	ViewsCount  int
	LikesCount  int
	Comments    []CommentRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// RehydratePost rebuilds an aggregate from storage without revalidation.
// A nil clock falls back to UTCNow.
func RehydratePost(rec PostRecord, clock Clock) *Post {
	if clock == nil {
		clock = UTCNow
	}
	comments := make([]*Comment, 0, len(rec.Comments))
	for _, cr := range rec.Comments {
		comments = append(comments, RehydrateComment(cr))
	}
	return &Post{
		id:          rec.ID,
		slug:        rec.Slug,
		title:       rec.Title,
		content:     rec.Content,
		excerpt:     rec.Excerpt,
		authorID:    rec.AuthorID,
		authorName:  rec.AuthorName,
		authorEmail: rec.AuthorEmail,
		status:      rec.Status,
		tags:        append([]string(nil), rec.Tags...),
		category:    rec.Category,
		viewsCount:  rec.ViewsCount,
		likesCount:  rec.LikesCount,
		comments:    comments,
		createdAt:   rec.CreatedAt,
		updatedAt:   rec.UpdatedAt,
		publishedAt: rec.PublishedAt,
		clock:       clock,
	}
}

// Record extracts the persistence snapshot of the aggregate, embedded
// comments included.
func (p *Post) Record() PostRecord {
	comments := make([]CommentRecord, 0, len(p.comments))
	for _, c := range p.comments {
		comments = append(comments, c.Record())
	}
	return PostRecord{
		ID:          p.id,
		Slug:        p.slug,
		Title:       p.title,
		Content:     p.content,
		Excerpt:     p.excerpt,
		AuthorID:    p.authorID,
		AuthorName:  p.authorName,
		AuthorEmail: p.authorEmail,
		Status:      p.status,
		Tags:        append([]string(nil), p.tags...),
		Category:    p.category,
		ViewsCount:  p.viewsCount,
		LikesCount:  p.likesCount,
		Comments:    comments,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
		PublishedAt: p.publishedAt,
	}
}

func (p *Post) ID() primitive.ObjectID        { return p.id }
func (p *Post) Slug() Slug                    { return p.slug }
func (p *Post) Title() string                 { return p.title }
func (p *Post) Content() string               { return p.content }
func (p *Post) Excerpt() string               { return p.excerpt }
func (p *Post) AuthorID() *primitive.ObjectID { return p.authorID }
func (p *Post) AuthorName() string            { return p.authorName }
func (p *Post) AuthorEmail() string           { return p.authorEmail }
func (p *Post) Status() PostStatus            { return p.status }
func (p *Post) Category() string              { return p.category }
func (p *Post) ViewsCount() int               { return p.viewsCount }
func (p *Post) LikesCount() int               { return p.likesCount }
func (p *Post) CreatedAt() time.Time          { return p.createdAt }
func (p *Post) UpdatedAt() time.Time          { return p.updatedAt }
func (p *Post) PublishedAt() *time.Time       { return p.publishedAt }

// Tags returns a copy of the tag list in first-insertion order.
func (p *Post) Tags() []string {
	return append([]string(nil), p.tags...)
}

// Comments returns value copies of the owned comments in insertion order.
// The backing collection can only change through methods on the post.
func (p *Post) Comments() []Comment {
	out := make([]Comment, 0, len(p.comments))
	for _, c := range p.comments {
		out = append(out, *c)
	}
	return out
}

// Equal reports identity equality: two posts are the same aggregate iff
// their ids match.
func (p *Post) Equal(other *Post) bool {
	return other != nil && p.id == other.id
}

// IsPublished reports whether the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.status == PostStatusPublished
}

// CanReceiveComments reports whether new comments may be attached.
func (p *Post) CanReceiveComments() bool {
	return p.status == PostStatusPublished
}

// Publish makes the post public and stamps published_at.
func (p *Post) Publish() error {
	if p.status == PostStatusPublished {
		return p.domainErr("publish", "post is already published")
	}
	now := p.clock()
	p.status = PostStatusPublished
	p.publishedAt = &now
	p.updatedAt = now
	return nil
}

// Unpublish returns the post to draft and clears published_at.
func (p *Post) Unpublish() error {
	if p.status == PostStatusDraft {
		return p.domainErr("unpublish", "post is not published")
	}
	p.status = PostStatusDraft
	p.publishedAt = nil
	p.touch()
	return nil
}

// Archive retires a published post. published_at is kept so the post keeps
// its place in chronological listings if it is unarchived later.
func (p *Post) Archive() error {
	if p.status != PostStatusPublished {
		return p.domainErr("archive", "cannot archive a post that is not published")
	}
	p.status = PostStatusArchived
	p.touch()
	return nil
}

// Unarchive returns an archived post to published.
func (p *Post) Unarchive() error {
	if p.status != PostStatusArchived {
		return p.domainErr("unarchive", "cannot unarchive a post that is not archived")
	}
	p.status = PostStatusPublished
	p.touch()
	return nil
}

// AddComment appends a comment to the post. Only published posts accept
// comments, and only comments that are pending or approved.
func (p *Post) AddComment(c *Comment) error {
	if p.status != PostStatusPublished {
		return p.domainErr("add comment", "cannot comment on unpublished post")
	}
	if c.Status() != CommentStatusPending && c.Status() != CommentStatusApproved {
		return p.domainErr("add comment", "invalid comment status for new comments")
	}
	p.comments = append(p.comments, c)
	p.touch()
	return nil
}

// RemoveComment deletes the comment with the given id from the post and
// reports whether a comment was removed. A miss is not an error and leaves
// the aggregate untouched.
func (p *Post) RemoveComment(commentID primitive.ObjectID) bool {
	for i, c := range p.comments {
		if c.ID() == commentID {
			p.comments = append(p.comments[:i], p.comments[i+1:]...)
			p.touch()
			return true
		}
	}
	return false
}

// ApproveComment approves the pending comment with the given id.
func (p *Post) ApproveComment(commentID primitive.ObjectID) error {
	c, err := p.findComment("approve comment", commentID)
	if err != nil {
		return err
	}
	if err := c.Approve(); err != nil {
		return err
	}
	p.touch()
	return nil
}

// RejectComment rejects the pending comment with the given id.
func (p *Post) RejectComment(commentID primitive.ObjectID) error {
	c, err := p.findComment("reject comment", commentID)
	if err != nil {
		return err
	}
	if err := c.Reject(); err != nil {
		return err
	}
	p.touch()
	return nil
}

// MarkCommentAsSpam flags the comment with the given id as spam.
func (p *Post) MarkCommentAsSpam(commentID primitive.ObjectID) error {
	c, err := p.findComment("mark comment as spam", commentID)
	if err != nil {
		return err
	}
	c.MarkAsSpam()
	p.touch()
	return nil
}

// LikeComment increments the like counter of the comment with the given id.
func (p *Post) LikeComment(commentID primitive.ObjectID) error {
	c, err := p.findComment("like comment", commentID)
	if err != nil {
		return err
	}
	c.AddLike()
	p.touch()
	return nil
}

// UnlikeComment decrements the like counter of the comment with the given
// id, floored at zero.
func (p *Post) UnlikeComment(commentID primitive.ObjectID) error {
	c, err := p.findComment("unlike comment", commentID)
	if err != nil {
		return err
	}
	c.RemoveLike()
	p.touch()
	return nil
}

func (p *Post) findComment(op string, commentID primitive.ObjectID) (*Comment, error) {
	for _, c := range p.comments {
		if c.ID() == commentID {
			return c, nil
		}
	}
	return nil, p.domainErr(op, "no comment with id "+commentID.Hex())
}

// ApprovedComments returns the approved comments in insertion order.
func (p *Post) ApprovedComments() []Comment {
	return p.filterComments(CommentStatusApproved)
}

// PendingComments returns the pending comments in insertion order.
func (p *Post) PendingComments() []Comment {
	return p.filterComments(CommentStatusPending)
}

func (p *Post) filterComments(status CommentStatus) []Comment {
	out := make([]Comment, 0)
	for _, c := range p.comments {
		if c.Status() == status {
			out = append(out, *c)
		}
	}
	return out
}

// RecordView increments the view counter. Draft and archived posts are not
// publicly reachable, so recording a view on them is a guard failure.
func (p *Post) RecordView() error {
	if p.status != PostStatusPublished {
		return p.domainErr("record view", "cannot record a view on an unpublished post")
	}
	p.viewsCount++
	p.touch()
	return nil
}

// Like increments the like counter unconditionally.
func (p *Post) Like() {
	p.likesCount++
	p.touch()
}

// UpdateContentParams carries a partial update: nil fields are left
// unchanged.
type UpdateContentParams struct {
	Title   *string
	Content *string
	Excerpt *string
}

// UpdateContent applies a length-validated partial update to title, content,
// and excerpt. Status and published_at are never touched; updated_at always
// is. Validation failures leave every field unchanged.
func (p *Post) UpdateContent(u UpdateContentParams) error {
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Content != nil {
		if err := validateContent(*u.Content); err != nil {
			return err
		}
	}
	if u.Excerpt != nil {
		if err := validateExcerpt(*u.Excerpt); err != nil {
			return err
		}
	}
	if u.Title != nil {
		p.title = *u.Title
	}
	if u.Content != nil {
		p.content = *u.Content
	}
	if u.Excerpt != nil {
		p.excerpt = *u.Excerpt
	}
	p.touch()
	return nil
}

// AddTags validates and merges tags into the post's tag list, deduplicating
// while preserving first-insertion order. Invalid input applies nothing.
func (p *Post) AddTags(tags []string) error {
	merged, err := dedupTags(p.tags, tags)
	if err != nil {
		return err
	}
	p.tags = merged
	p.touch()
	return nil
}

// RemoveTag removes the tag if present and reports whether it was removed.
func (p *Post) RemoveTag(tag string) bool {
	for i, t := range p.tags {
		if t == tag {
			p.tags = append(p.tags[:i], p.tags[i+1:]...)
			p.touch()
			return true
		}
	}
	return false
}

// SetCategory replaces the category. A nil value clears it; an empty
// non-nil value is rejected.
func (p *Post) SetCategory(category *string) error {
	if category == nil {
		p.category = ""
		p.touch()
		return nil
	}
	if *category == "" {
		return newValidationError("category", "must not be empty")
	}
	p.category = *category
	p.touch()
	return nil
}

func (p *Post) touch() {
	p.updatedAt = p.clock()
}

func (p *Post) domainErr(op, reason string) *DomainError {
	return &DomainError{Op: op, ID: p.id.Hex(), Status: string(p.status), Reason: reason}
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < titleMin || n > titleMax {
		return newValidationError("title", "must be %d-%d characters, got %d", titleMin, titleMax, n)
	}
	return nil
}

func validateContent(content string) error {
	if n := utf8.RuneCountInString(content); n < contentMin || n > contentMax {
		return newValidationError("content", "must be %d-%d characters, got %d", contentMin, contentMax, n)
	}
	return nil
}

func validateExcerpt(excerpt string) error {
	if n := utf8.RuneCountInString(excerpt); n > excerptMax {
		return newValidationError("excerpt", "must be at most %d characters, got %d", excerptMax, n)
	}
	return nil
}

// dedupTags validates every incoming tag first, then merges into existing,
// keeping first-insertion order. The input slices are not modified.
func dedupTags(existing, incoming []string) ([]string, error) {
	for _, tag := range incoming {
		if n := utf8.RuneCountInString(tag); n < 1 || n > tagMax {
			return nil, newValidationError("tag", "must be 1-%d characters, got %d", tagMax, n)
		}
	}
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, tag := range existing {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			merged = append(merged, tag)
		}
	}
	for _, tag := range incoming {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			merged = append(merged, tag)
		}
	}
	return merged, nil
}

// PostRepository loads and stores whole Post aggregates. A lookup that finds
// nothing returns (nil, nil); errors are reserved for storage faults.
type PostRepository interface {
	// Save performs an idempotent insert-or-replace of the full aggregate,
	// embedded comments included, keyed by the aggregate id.
	Save(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Post, error)
	GetBySlug(ctx context.Context, slug Slug) (*Post, error)

	// FindPublished returns published posts ordered by published_at
	// descending within the given pagination window.
	FindPublished(ctx context.Context, skip, limit int) ([]*Post, error)
	// FindByTag is FindPublished narrowed to posts carrying the tag.
	FindByTag(ctx context.Context, tag string, skip, limit int) ([]*Post, error)
	// FindByAuthor returns the author's posts in any status, newest first.
	FindByAuthor(ctx context.Context, authorID primitive.ObjectID, skip, limit int) ([]*Post, error)

	// Delete removes the post and reports whether a document was removed.
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	CountPublished(ctx context.Context) (int64, error)
}
