package domain

// PostStatus is the publication state of a post. It governs which
// mutations are legal on the aggregate.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// ParsePostStatus converts a stored string into a PostStatus,
// rejecting anything outside the closed set.
func ParsePostStatus(raw string) (PostStatus, error) {
	switch s := PostStatus(raw); s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return s, nil
	}
	return "", newValidationError("status", "unknown post status %q", raw)
}

func (s PostStatus) String() string {
	return string(s)
}

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
	CommentStatusSpam     CommentStatus = "spam"
)

// ParseCommentStatus converts a stored string into a CommentStatus,
// rejecting anything outside the closed set.
func ParseCommentStatus(raw string) (CommentStatus, error) {
	switch s := CommentStatus(raw); s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected, CommentStatusSpam:
		return s, nil
	}
	return "", newValidationError("status", "unknown comment status %q", raw)
}

func (s CommentStatus) String() string {
	return string(s)
}
