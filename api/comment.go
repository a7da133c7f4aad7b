package api

import "time"

type Comment struct {
	ID          string    `json:"id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	AuthorName  string `json:"author_name" binding:"required"`
	AuthorEmail string `json:"author_email" binding:"required"`
	Content     string `json:"content" binding:"required"`
}
