package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arbelos/inkwell/api"
	"github.com/arbelos/inkwell/blog/application"
)

type CategoriesHandler struct {
	service *application.CategoryService
}

func NewCategoriesHandler(service *application.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: service}
}

func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req api.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), req.Name, req.Slug, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAPICategory(category))
}

func (h *CategoriesHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]api.Category, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toAPICategory(cat))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CategoriesHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseObjectID(c, "categoryId")
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
