package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"threadbase.app/comments/internal/http/dto"
	"threadbase.app/comments/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.WarnContext(ctx, "invalid list query", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.notificationService.List(ctx, query.RecipientID, query.Options())
	if err != nil {
		slog.ErrorContext(ctx, "failed to list notifications", "error", err, "recipient_id", query.RecipientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationListResponse(res))
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.RecipientQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient_id is required"})
		return
	}

	count, err := h.notificationService.UnreadCount(ctx, query.RecipientID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count unread notifications", "error", err, "recipient_id", query.RecipientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count unread notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	notificationID := c.Param("id")

	n, err := h.notificationService.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch notification", "error", err, "notification_id", notificationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notification"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationResponse(n))
}

// Create exists for manual and system-generated notifications. Comment
// events flow through the bus instead of this endpoint.
func (h *NotificationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.notificationService.Create(ctx, req.Params())
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to create notification", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToNotificationResponse(n))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	notificationID := c.Param("id")

	n, err := h.notificationService.MarkRead(ctx, notificationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to mark notification read", "error", err, "notification_id", notificationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationResponse(n))
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MarkAllReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: recipient_id is required"})
		return
	}

	updated, err := h.notificationService.MarkAllRead(ctx, req.RecipientID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark notifications read", "error", err, "recipient_id", req.RecipientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	notificationID := c.Param("id")

	if err := h.notificationService.Delete(ctx, notificationID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete notification", "error", err, "notification_id", notificationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notification"})
		return
	}

	c.Status(http.StatusNoContent)
}
