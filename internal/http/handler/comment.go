package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"threadbase.app/comments/internal/http/dto"
	"threadbase.app/comments/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(ctx, req.Content, req.AuthorID, req.ParentID)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parent comment not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to create comment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// List returns root comments only. Replies live under their parent's
// /replies collection.
func (h *CommentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.WarnContext(ctx, "invalid list query", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.commentService.List(ctx, query.Options())
	if err != nil {
		slog.ErrorContext(ctx, "failed to list comments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentListResponse(res))
}

func (h *CommentHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	commentID := c.Param("id")

	comment, err := h.commentService.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch comment", "error", err, "comment_id", commentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch comment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	commentID := c.Param("id")

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(ctx, commentID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update comment", "error", err, "comment_id", commentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	commentID := c.Param("id")

	if err := h.commentService.Delete(ctx, commentID); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete comment", "error", err, "comment_id", commentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) ListReplies(c *gin.Context) {
	ctx := c.Request.Context()
	parentID := c.Param("id")

	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.WarnContext(ctx, "invalid list query", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.commentService.ListReplies(ctx, parentID, query.Options())
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parent comment not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to list replies", "error", err, "comment_id", parentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list replies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentListResponse(res))
}

func (h *CommentHandler) CreateReply(c *gin.Context) {
	ctx := c.Request.Context()
	parentID := c.Param("id")

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.commentService.CreateReply(ctx, parentID, req.Content, req.AuthorID)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parent comment not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to create reply", "error", err, "comment_id", parentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reply"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(reply))
}
