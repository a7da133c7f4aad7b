package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/api"
	"github.com/arbelos/inkwell/blog/application"
)

type CommentsHandler struct {
	service *application.PostService
}

func NewCommentsHandler(service *application.PostService) *CommentsHandler {
	return &CommentsHandler{service: service}
}

func (h *CommentsHandler) AddComment(c *gin.Context) {
	postID, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	var req api.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := h.service.AddComment(c.Request.Context(), postID, application.AddCommentInput{
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAPIComment(*comment))
}

func (h *CommentsHandler) RemoveComment(c *gin.Context) {
	postID, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := parseObjectID(c, "commentId")
	if !ok {
		return
	}
	if err := h.service.RemoveComment(c.Request.Context(), postID, commentID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentsHandler) ApproveComment(c *gin.Context) {
	h.moderate(c, h.service.ApproveComment)
}

func (h *CommentsHandler) RejectComment(c *gin.Context) {
	h.moderate(c, h.service.RejectComment)
}

func (h *CommentsHandler) MarkCommentAsSpam(c *gin.Context) {
	h.moderate(c, h.service.MarkCommentAsSpam)
}

func (h *CommentsHandler) LikeComment(c *gin.Context) {
	h.moderate(c, h.service.LikeComment)
}

func (h *CommentsHandler) UnlikeComment(c *gin.Context) {
	h.moderate(c, h.service.UnlikeComment)
}

func (h *CommentsHandler) moderate(c *gin.Context, op func(context.Context, primitive.ObjectID, primitive.ObjectID) error) {
	postID, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := parseObjectID(c, "commentId")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), postID, commentID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPendingComments is the moderation queue view for a single post.
func (h *CommentsHandler) ListPendingComments(c *gin.Context) {
	postID, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}
	post, err := h.service.GetPost(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIComments(post.PendingComments()))
}
