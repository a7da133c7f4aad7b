package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/arbelos/inkwell/blog/application"
)

// RegisterRoutes wires every handler under /api/v1. defaultPageSize is the
// fallback for list endpoints called without an explicit page_size.
func RegisterRoutes(router *gin.Engine, posts *application.PostService, authors *application.AuthorService, categories *application.CategoryService, defaultPageSize int) {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	postsHandler := NewPostsHandler(posts, defaultPageSize)
	commentsHandler := NewCommentsHandler(posts)
	authorsHandler := NewAuthorsHandler(authors, defaultPageSize)
	categoriesHandler := NewCategoriesHandler(categories)

	v1 := router.Group("/api/v1")

	postsV1 := v1.Group("/posts")
	{
		postsV1.GET("", postsHandler.ListPublished)
		postsV1.POST("", postsHandler.CreatePost)
		postsV1.GET("/slug/:slug", postsHandler.GetPostBySlug)
		postsV1.GET("/tag/:tag", postsHandler.ListByTag)
		postsV1.GET("/:postId", postsHandler.GetPost)
		postsV1.PUT("/:postId", postsHandler.UpdatePost)
		postsV1.DELETE("/:postId", postsHandler.DeletePost)
		postsV1.POST("/:postId/publish", postsHandler.PublishPost)
		postsV1.POST("/:postId/unpublish", postsHandler.UnpublishPost)
		postsV1.POST("/:postId/archive", postsHandler.ArchivePost)
		postsV1.POST("/:postId/unarchive", postsHandler.UnarchivePost)
		postsV1.POST("/:postId/likes", postsHandler.LikePost)
		postsV1.POST("/:postId/views", postsHandler.RecordView)
		postsV1.POST("/:postId/tags", postsHandler.AddTags)
		postsV1.DELETE("/:postId/tags/:tag", postsHandler.RemoveTag)
		postsV1.PUT("/:postId/category", postsHandler.SetCategory)

		postsV1.GET("/:postId/comments/pending", commentsHandler.ListPendingComments)
		postsV1.POST("/:postId/comments", commentsHandler.AddComment)
		postsV1.DELETE("/:postId/comments/:commentId", commentsHandler.RemoveComment)
		postsV1.POST("/:postId/comments/:commentId/approve", commentsHandler.ApproveComment)
		postsV1.POST("/:postId/comments/:commentId/reject", commentsHandler.RejectComment)
		postsV1.POST("/:postId/comments/:commentId/spam", commentsHandler.MarkCommentAsSpam)
		postsV1.POST("/:postId/comments/:commentId/likes", commentsHandler.LikeComment)
		postsV1.DELETE("/:postId/comments/:commentId/likes", commentsHandler.UnlikeComment)
	}

	authorsV1 := v1.Group("/authors")
	{
		authorsV1.GET("", authorsHandler.ListAuthors)
		authorsV1.POST("", authorsHandler.RegisterAuthor)
		authorsV1.GET("/:authorId", authorsHandler.GetAuthor)
		authorsV1.PUT("/:authorId", authorsHandler.UpdateProfile)
		authorsV1.DELETE("/:authorId", authorsHandler.DeleteAuthor)
		authorsV1.GET("/:authorId/posts", postsHandler.ListByAuthor)
	}

	categoriesV1 := v1.Group("/categories")
	{
		categoriesV1.GET("", categoriesHandler.ListCategories)
		categoriesV1.POST("", categoriesHandler.CreateCategory)
		categoriesV1.DELETE("/:categoryId", categoriesHandler.DeleteCategory)
	}
}
