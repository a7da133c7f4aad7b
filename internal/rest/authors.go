package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arbelos/inkwell/api"
	"github.com/arbelos/inkwell/blog/application"
	"github.com/arbelos/inkwell/blog/domain"
)

type AuthorsHandler struct {
	service  *application.AuthorService
	pageSize int
}

func NewAuthorsHandler(service *application.AuthorService, defaultPageSize int) *AuthorsHandler {
	return &AuthorsHandler{service: service, pageSize: defaultPageSize}
}

func (h *AuthorsHandler) RegisterAuthor(c *gin.Context) {
	var req api.RegisterAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	author, err := h.service.RegisterAuthor(c.Request.Context(), req.Email, req.Username, req.DisplayName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAPIAuthor(author))
}

func (h *AuthorsHandler) GetAuthor(c *gin.Context) {
	id, ok := parseObjectID(c, "authorId")
	if !ok {
		return
	}
	author, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIAuthor(author))
}

func (h *AuthorsHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseObjectID(c, "authorId")
	if !ok {
		return
	}
	var req api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	author, err := h.service.UpdateProfile(c.Request.Context(), id, domain.UpdateProfileParams{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIAuthor(author))
}

func (h *AuthorsHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseObjectID(c, "authorId")
	if !ok {
		return
	}
	if err := h.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthorsHandler) ListAuthors(c *gin.Context) {
	page, pageSize, ok := pagination(c, h.pageSize)
	if !ok {
		return
	}
	authors, err := h.service.ListAuthors(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]api.Author, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAPIAuthor(a))
	}
	c.JSON(http.StatusOK, out)
}
