package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbelos/inkwell/api"
	"github.com/arbelos/inkwell/blog/application"
	"github.com/arbelos/inkwell/blog/persistence"
)

func newTestRouter(t *testing.T) *gin.Engine {
	return newTestRouterWithPageSize(t, 10)
}

func newTestRouterWithPageSize(t *testing.T, defaultPageSize int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	posts := persistence.NewMemoryPostRepository(nil)
	authors := persistence.NewMemoryAuthorRepository(nil)
	categories := persistence.NewMemoryCategoryRepository()
	renderer := application.NewContentRenderer()

	postService := application.NewPostService(posts, authors, categories, renderer, nil)
	authorService := application.NewAuthorService(authors, nil)
	categoryService := application.NewCategoryService(categories, nil)

	router := gin.New()
	RegisterRoutes(router, postService, authorService, categoryService, defaultPageSize)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodePost(t *testing.T, rec *httptest.ResponseRecorder) api.Post {
	t.Helper()
	var post api.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	return post
}

func createPostViaAPI(t *testing.T, router *gin.Engine, slug string) api.Post {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts", api.CreatePostRequest{
		Slug:    slug,
		Title:   "Post " + slug,
		Content: "Content long enough for validation.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodePost(t, rec)
}

func TestCreatePostEndpoint(t *testing.T) {
	router := newTestRouter(t)

	post := createPostViaAPI(t, router, "first-post")
	assert.Equal(t, "first-post", post.Slug)
	assert.Equal(t, "draft", post.Status)

	// missing required fields
	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts", map[string]string{"slug": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// duplicate slug
	rec = doJSON(t, router, http.MethodPost, "/api/v1/posts", api.CreatePostRequest{
		Slug:    "first-post",
		Title:   "Duplicate",
		Content: "Content long enough for validation.",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// invalid slug maps to 400
	rec = doJSON(t, router, http.MethodPost, "/api/v1/posts", api.CreatePostRequest{
		Slug:    "Not A Slug",
		Title:   "Bad",
		Content: "Content long enough for validation.",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostLifecycleEndpoints(t *testing.T) {
	router := newTestRouter(t)
	post := createPostViaAPI(t, router, "lifecycle")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	published := decodePost(t, rec)
	assert.Equal(t, "published", published.Status)
	assert.NotNil(t, published.PublishedAt)

	// double publish is a guard failure
	rec = doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/publish", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/unpublish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "draft", decodePost(t, rec).Status)

	// malformed id
	rec = doJSON(t, router, http.MethodPost, "/api/v1/posts/not-an-id/publish", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPostBySlugEndpoint(t *testing.T) {
	router := newTestRouter(t)
	post := createPostViaAPI(t, router, "readable")
	doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/publish", nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts/slug/readable", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodePost(t, rec)
	assert.Equal(t, post.ID, got.ID)
	assert.Contains(t, got.HTMLContent, "<p>")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/posts/slug/no-such-post", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPublishedEndpoint(t *testing.T) {
	router := newTestRouter(t)
	for _, slug := range []string{"one", "two"} {
		post := createPostViaAPI(t, router, slug)
		doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/publish", nil)
	}
	createPostViaAPI(t, router, "draft-only")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list api.PostList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Posts, 2)
	assert.EqualValues(t, 2, list.Total)
}

func TestConfiguredDefaultPageSize(t *testing.T) {
	router := newTestRouterWithPageSize(t, 2)
	for _, slug := range []string{"one", "two", "three"} {
		post := createPostViaAPI(t, router, slug)
		doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/publish", nil)
	}

	// no page_size in the query: the configured default applies
	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list api.PostList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 2, list.PageSize)
	assert.Len(t, list.Posts, 2)
	assert.EqualValues(t, 3, list.Total)

	// an explicit page_size still wins
	rec = doJSON(t, router, http.MethodGet, "/api/v1/posts?page_size=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Posts, 3)
}

func TestPaginationRejectsNonNumericParams(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/posts?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/posts?page_size=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/authors?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/posts/tag/go?page_size=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentEndpoints(t *testing.T) {
	router := newTestRouter(t)
	post := createPostViaAPI(t, router, "commented")
	doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/publish", nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", api.CreateCommentRequest{
		AuthorName:  "Reader",
		AuthorEmail: "reader@example.com",
		Content:     "A fine read.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment api.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, "pending", comment.Status)

	// pending comments are hidden from the public read
	rec = doJSON(t, router, http.MethodGet, "/api/v1/posts/slug/commented", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodePost(t, rec).Comments)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/comments/"+comment.ID+"/approve", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/posts/slug/commented", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodePost(t, rec).Comments, 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/posts/"+post.ID+"/comments/"+comment.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/posts/"+post.ID+"/comments/"+comment.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagEndpoints(t *testing.T) {
	router := newTestRouter(t)
	post := createPostViaAPI(t, router, "tagged")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/posts/"+post.ID+"/tags", api.AddTagsRequest{Tags: []string{"go", "mongo"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"go", "mongo"}, decodePost(t, rec).Tags)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/posts/"+post.ID+"/tags/go", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"mongo"}, decodePost(t, rec).Tags)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/posts/"+post.ID+"/tags/go", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthorEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/authors", api.RegisterAuthorRequest{
		Email:       "jane@example.com",
		Username:    "janedoe",
		DisplayName: "Jane Doe",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var author api.Author
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &author))

	rec = doJSON(t, router, http.MethodGet, "/api/v1/authors/"+author.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/authors", api.RegisterAuthorRequest{
		Email:       "jane@example.com",
		Username:    "janedoe2",
		DisplayName: "Jane Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/categories", api.CreateCategoryRequest{
		Name: "Engineering",
		Slug: "engineering",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []api.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Len(t, categories, 1)

	post := createPostViaAPI(t, router, "categorized")
	slug := "engineering"
	rec = doJSON(t, router, http.MethodPut, "/api/v1/posts/"+post.ID+"/category", api.SetCategoryRequest{CategorySlug: &slug})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Engineering", decodePost(t, rec).Category)
}
