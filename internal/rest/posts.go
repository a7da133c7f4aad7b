package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/api"
	"github.com/arbelos/inkwell/blog/application"
	"github.com/arbelos/inkwell/blog/domain"
)

type PostsHandler struct {
	service  *application.PostService
	pageSize int
}

func NewPostsHandler(service *application.PostService, defaultPageSize int) *PostsHandler {
	return &PostsHandler{service: service, pageSize: defaultPageSize}
}

// parseObjectID pulls an ObjectID path parameter, answering 400 on a
// malformed id.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pagination reads the page window from the query string, falling back to
// the configured default page size. Non-numeric values answer 400.
func pagination(c *gin.Context, defaultPageSize int) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return 0, 0, false
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return 0, 0, false
	}
	return page, pageSize, true
}

func (h *PostsHandler) CreatePost(c *gin.Context) {
	var req api.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := application.CreatePostInput{
		Slug:     req.Slug,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Tags:     req.Tags,
		Category: req.Category,
	}
	if req.AuthorID != "" {
		authorID, err := primitive.ObjectIDFromHex(req.AuthorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author_id"})
			return
		}
		in.AuthorID = &authorID
	}

	post, err := h.service.CreatePost(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAPIPost(post, ""))
}

func (h *PostsHandler) GetPost(c *gin.Context) {
	id, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post, ""))
}

// GetPostBySlug is the public read path: content rendered to HTML, only
// approved comments included.
func (h *PostsHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	htmlContent, err := h.service.RenderPostHTML(post)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPublicAPIPost(post, htmlContent))
}

func (h *PostsHandler) ListPublished(c *gin.Context) {
	page, pageSize, ok := pagination(c, h.pageSize)
	if !ok {
		return
	}
	result, err := h.service.ListPublished(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.PostList{
		Posts:    toAPIPostSummaries(result.Posts),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func (h *PostsHandler) ListByTag(c *gin.Context) {
	page, pageSize, ok := pagination(c, h.pageSize)
	if !ok {
		return
	}
	posts, err := h.service.ListByTag(c.Request.Context(), c.Param("tag"), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPostSummaries(posts))
}

func (h *PostsHandler) ListByAuthor(c *gin.Context) {
	authorID, ok := parseObjectID(c, "authorId")
	if !ok {
		return
	}
	page, pageSize, ok := pagination(c, h.pageSize)
	if !ok {
		return
	}
	posts, err := h.service.ListByAuthor(c.Request.Context(), authorID, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPostSummaries(posts))
}

func (h *PostsHandler) UpdatePost(c *gin.Context) {
	id, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	var req api.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.service.UpdatePost(c.Request.Context(), id, domain.UpdateContentParams{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post, ""))
}

func (h *PostsHandler) PublishPost(c *gin.Context) {
	h.transition(c, h.service.PublishPost)
}

func (h *PostsHandler) UnpublishPost(c *gin.Context) {
	h.transition(c, h.service.UnpublishPost)
}

func (h *PostsHandler) ArchivePost(c *gin.Context) {
	h.transition(c, h.service.ArchivePost)
}

func (h *PostsHandler) UnarchivePost(c *gin.Context) {
	h.transition(c, h.service.UnarchivePost)
}

func (h *PostsHandler) LikePost(c *gin.Context) {
	h.transition(c, h.service.LikePost)
}

func (h *PostsHandler) RecordView(c *gin.Context) {
	h.transition(c, h.service.RecordView)
}

// transition runs a single-post state change and answers with the
// updated post.
func (h *PostsHandler) transition(c *gin.Context, op func(context.Context, primitive.ObjectID) (*domain.Post, error)) {
	id, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	post, err := op(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post, ""))
}

func (h *PostsHandler) DeletePost(c *gin.Context) {
	id, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostsHandler) AddTags(c *gin.Context) {
	id, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	var req api.AddTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.service.AddTags(c.Request.Context(), id, req.Tags)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post, ""))
}

func (h *PostsHandler) RemoveTag(c *gin.Context) {
	id, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	post, err := h.service.RemoveTag(c.Request.Context(), id, c.Param("tag"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post, ""))
}

func (h *PostsHandler) SetCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	var req api.SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.service.SetPostCategory(c.Request.Context(), id, req.CategorySlug)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post, ""))
}
