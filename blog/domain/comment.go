package domain

import (
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	commentAuthorNameMax = 100
	commentContentMax    = 5000
)

// Comment is owned by exactly one Post and has no lifecycle of its own.
// It is created, persisted, and destroyed only through its owning post.
type Comment struct {
	id          primitive.ObjectID
	authorName  string
	authorEmail Email
	content     string
	status      CommentStatus
	likes       int
	createdAt   time.Time
}

// NewComment creates a pending comment with a generated id.
// A nil clock falls back to UTCNow.
func NewComment(authorName string, authorEmail Email, content string, clock Clock) (*Comment, error) {
	if clock == nil {
		clock = UTCNow
	}
	if n := utf8.RuneCountInString(authorName); n < 1 || n > commentAuthorNameMax {
		return nil, newValidationError("author_name", "must be 1-%d characters, got %d", commentAuthorNameMax, n)
	}
	if authorEmail.IsZero() {
		return nil, newValidationError("author_email", "must not be empty")
	}
	if n := utf8.RuneCountInString(content); n < 1 || n > commentContentMax {
		return nil, newValidationError("content", "must be 1-%d characters, got %d", commentContentMax, n)
	}
	return &Comment{
		id:          primitive.NewObjectID(),
		authorName:  authorName,
		authorEmail: authorEmail,
		content:     content,
		status:      CommentStatusPending,
		createdAt:   clock(),
	}, nil
}

// CommentRecord is the flat snapshot of a comment used by the persistence
// mapping. It round-trips every field exactly.
type CommentRecord struct {
	ID          primitive.ObjectID
	AuthorName  string
	AuthorEmail Email
	Content     string
	Status      CommentStatus
	Likes       int
	CreatedAt   time.Time
}

// RehydrateComment rebuilds a comment from storage without revalidation.
func RehydrateComment(rec CommentRecord) *Comment {
	return &Comment{
		id:          rec.ID,
		authorName:  rec.AuthorName,
		authorEmail: rec.AuthorEmail,
		content:     rec.Content,
		status:      rec.Status,
		likes:       rec.Likes,
		createdAt:   rec.CreatedAt,
	}
}

// Record extracts the persistence snapshot of the comment.
func (c *Comment) Record() CommentRecord {
	return CommentRecord{
		ID:          c.id,
		AuthorName:  c.authorName,
		AuthorEmail: c.authorEmail,
		Content:     c.content,
		Status:      c.status,
		Likes:       c.likes,
		CreatedAt:   c.createdAt,
	}
}

func (c *Comment) ID() primitive.ObjectID { return c.id }
func (c *Comment) AuthorName() string     { return c.authorName }
func (c *Comment) AuthorEmail() Email     { return c.authorEmail }
func (c *Comment) Content() string        { return c.content }
func (c *Comment) Status() CommentStatus  { return c.status }
func (c *Comment) Likes() int             { return c.likes }
func (c *Comment) CreatedAt() time.Time   { return c.createdAt }

// Approve moves a pending comment to approved.
func (c *Comment) Approve() error {
	if c.status != CommentStatusPending {
		return &DomainError{
			Op:     "approve comment",
			ID:     c.id.Hex(),
			Status: string(c.status),
			Reason: "only pending comments can be approved",
		}
	}
	c.status = CommentStatusApproved
	return nil
}

// Reject moves a pending comment to rejected.
func (c *Comment) Reject() error {
	if c.status != CommentStatusPending {
		return &DomainError{
			Op:     "reject comment",
			ID:     c.id.Hex(),
			Status: string(c.status),
			Reason: "only pending comments can be rejected",
		}
	}
	c.status = CommentStatusRejected
	return nil
}

// MarkAsSpam flags the comment as spam from any state.
func (c *Comment) MarkAsSpam() {
	c.status = CommentStatusSpam
}

// AddLike increments the like counter. There is no upper bound.
func (c *Comment) AddLike() {
	c.likes++
}

// RemoveLike decrements the like counter, floored at zero.
func (c *Comment) RemoveLike() {
	if c.likes > 0 {
		c.likes--
	}
}

// IsVisible reports whether the comment should be publicly rendered.
func (c *Comment) IsVisible() bool {
	return c.status == CommentStatusApproved
}
