package dto

import (
	"time"

	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
	"threadbase.app/comments/internal/service"
)

type CreateNotificationRequest struct {
	Type        string         `json:"type" binding:"required,oneof=comment.created comment.updated comment.deleted comment.replied"`
	Title       string         `json:"title" binding:"required,max=255"`
	Message     string         `json:"message" binding:"required"`
	RecipientID string         `json:"recipient_id" binding:"required,max=255"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (r CreateNotificationRequest) Params() service.CreateNotificationParams {
	return service.CreateNotificationParams{
		Type:        model.EventType(r.Type),
		Title:       r.Title,
		Message:     r.Message,
		RecipientID: r.RecipientID,
		Metadata:    r.Metadata,
	}
}

type NotificationListQuery struct {
	RecipientID string `form:"recipient_id" binding:"required"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	SortOrder   string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

func (q NotificationListQuery) Options() model.ListOptions {
	return model.ListOptions{
		Page:  q.Page,
		Limit: q.Limit,
		Order: model.SortOrder(q.SortOrder),
	}
}

type RecipientQuery struct {
	RecipientID string `form:"recipient_id" binding:"required"`
}

type MarkAllReadRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
}

type NotificationResponse struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	RecipientID string         `json:"recipient_id"`
	Read        bool           `json:"read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func ToNotificationResponse(n *model.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		RecipientID: n.RecipientID,
		Read:        n.Read,
		ReadAt:      n.ReadAt,
		Metadata:    n.Metadata,
		CreatedAt:   n.CreatedAt,
	}
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Meta          PageMeta               `json:"meta"`
}

func ToNotificationListResponse(res *pagination.Result[model.Notification]) *NotificationListResponse {
	notifications := make([]NotificationResponse, 0, len(res.Items))
	for i := range res.Items {
		notifications = append(notifications, *ToNotificationResponse(&res.Items[i]))
	}
	return &NotificationListResponse{Notifications: notifications, Meta: ToPageMeta(res.Meta)}
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
