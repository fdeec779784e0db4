package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"threadbase.app/comments/common/logger"
	"threadbase.app/comments/internal/bus"
	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
	"threadbase.app/comments/internal/store"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrInvalidArgument flags input the schema layer should have caught.
	ErrInvalidArgument = errors.New("invalid argument")
)

const (
	titleCommentCreated = "Comment Created"
	titleCommentUpdated = "Comment Updated"
	titleCommentDeleted = "Comment Deleted"
	titleNewReply       = "New Reply"

	messageCommentCreated = "Your comment was created successfully"
	messageCommentUpdated = "Your comment was updated successfully"
	messageCommentDeleted = "Your comment was deleted"
	messageNewReply       = "Someone replied to your comment"
)

type CreateNotificationParams struct {
	Type        model.EventType
	Title       string
	Message     string
	RecipientID string
	Metadata    map[string]any
}

// NotificationService mirrors the notification store surface and, on
// construction, subscribes to the comment domain events that feed it.
type NotificationService interface {
	List(ctx context.Context, recipientID string, opts model.ListOptions) (*pagination.Result[model.Notification], error)
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	Create(ctx context.Context, params CreateNotificationParams) (*model.Notification, error)
	MarkRead(ctx context.Context, id string) (*model.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (int, error)
	Delete(ctx context.Context, id string) error
	// Close removes the service's event subscriptions.
	Close()
}

type notificationService struct {
	notifications store.NotificationStore
	events        bus.Bus
	subs          []*bus.Subscription
}

func NewNotificationService(notifications store.NotificationStore, events bus.Bus) NotificationService {
	s := &notificationService{
		notifications: notifications,
		events:        events,
	}
	s.subs = []*bus.Subscription{
		events.Subscribe(model.EventCommentCreated, s.onCommentCreated),
		events.Subscribe(model.EventCommentUpdated, s.onCommentUpdated),
		events.Subscribe(model.EventCommentDeleted, s.onCommentDeleted),
		events.Subscribe(model.EventCommentReplied, s.onCommentReplied),
	}
	return s
}

func (s *notificationService) onCommentCreated(ctx context.Context, evt model.Event) error {
	payload, ok := evt.Payload.(model.CommentCreated)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
	}
	_, err := s.Create(ctx, CreateNotificationParams{
		Type:        evt.Type,
		Title:       titleCommentCreated,
		Message:     messageCommentCreated,
		RecipientID: payload.AuthorID,
		Metadata:    map[string]any{"comment_id": payload.CommentID},
	})
	return err
}

func (s *notificationService) onCommentUpdated(ctx context.Context, evt model.Event) error {
	payload, ok := evt.Payload.(model.CommentUpdated)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
	}
	_, err := s.Create(ctx, CreateNotificationParams{
		Type:        evt.Type,
		Title:       titleCommentUpdated,
		Message:     messageCommentUpdated,
		RecipientID: payload.AuthorID,
		Metadata:    map[string]any{"comment_id": payload.CommentID},
	})
	return err
}

func (s *notificationService) onCommentDeleted(ctx context.Context, evt model.Event) error {
	payload, ok := evt.Payload.(model.CommentDeleted)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
	}
	_, err := s.Create(ctx, CreateNotificationParams{
		Type:        evt.Type,
		Title:       titleCommentDeleted,
		Message:     messageCommentDeleted,
		RecipientID: payload.AuthorID,
		Metadata:    map[string]any{"comment_id": payload.CommentID},
	})
	return err
}

// onCommentReplied notifies the author of the parent comment, not the
// author of the reply.
func (s *notificationService) onCommentReplied(ctx context.Context, evt model.Event) error {
	payload, ok := evt.Payload.(model.CommentReplied)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
	}
	_, err := s.Create(ctx, CreateNotificationParams{
		Type:        evt.Type,
		Title:       titleNewReply,
		Message:     messageNewReply,
		RecipientID: payload.ParentAuthorID,
		Metadata: map[string]any{
			"comment_id":      payload.CommentID,
			"parent_id":       payload.ParentID,
			"reply_author_id": payload.AuthorID,
		},
	})
	return err
}

func (s *notificationService) List(ctx context.Context, recipientID string, opts model.ListOptions) (*pagination.Result[model.Notification], error) {
	res, err := s.notifications.List(ctx, recipientID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return res, nil
}

func (s *notificationService) GetByID(ctx context.Context, notificationID string) (*model.Notification, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotificationNotFound, notificationID)
		}
		return nil, fmt.Errorf("fetching notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	count, err := s.notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) Create(ctx context.Context, params CreateNotificationParams) (*model.Notification, error) {
	if params.Type == "" || params.Title == "" || params.Message == "" || params.RecipientID == "" {
		return nil, fmt.Errorf("%w: type, title, message and recipient_id are required", ErrInvalidArgument)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{RecipientID: logger.Ptr(params.RecipientID)})

	n, err := s.notifications.Create(ctx, params.Type, params.Title, params.Message, params.RecipientID, params.Metadata)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	slog.InfoContext(ctx, "notification created", "notification_id", n.ID, "type", n.Type)
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string) (*model.Notification, error) {
	n, err := s.notifications.MarkRead(ctx, notificationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotificationNotFound, notificationID)
		}
		return nil, fmt.Errorf("marking notification read: %w", err)
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) (int, error) {
	updated, err := s.notifications.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	if updated > 0 {
		slog.InfoContext(ctx, "notifications marked read", "recipient_id", recipientID, "updated", updated)
	}
	return updated, nil
}

func (s *notificationService) Delete(ctx context.Context, notificationID string) error {
	if _, err := s.notifications.GetByID(ctx, notificationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotificationNotFound, notificationID)
		}
		return fmt.Errorf("fetching notification: %w", err)
	}

	if _, err := s.notifications.Delete(ctx, notificationID); err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	return nil
}

func (s *notificationService) Close() {
	for _, sub := range s.subs {
		s.events.Unsubscribe(sub)
	}
	s.subs = nil
}
