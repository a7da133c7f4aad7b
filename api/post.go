package api

import "time"

type Post struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	HTMLContent string     `json:"html_content,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	AuthorID    string     `json:"author_id,omitempty"`
	AuthorName  string     `json:"author_name,omitempty"`
	AuthorEmail string     `json:"author_email,omitempty"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category,omitempty"`
	ViewsCount  int        `json:"views_count"`
	LikesCount  int        `json:"likes_count"`
	Comments    []Comment  `json:"comments"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// PostSummary is the listing shape: no content body, no comments.
type PostSummary struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	AuthorName  string     `json:"author_name,omitempty"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category,omitempty"`
	ViewsCount  int        `json:"views_count"`
	LikesCount  int        `json:"likes_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type PostList struct {
	Posts    []PostSummary `json:"posts"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

type CreatePostRequest struct {
	Slug     string   `json:"slug" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Excerpt  string   `json:"excerpt"`
	AuthorID string   `json:"author_id"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// UpdatePostRequest is a partial update: absent fields are left unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt"`
}

type AddTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

// SetCategoryRequest assigns a category by slug; a null slug clears it.
type SetCategoryRequest struct {
	CategorySlug *string `json:"category_slug"`
}
