package service

import (
	"threadbase.app/comments/internal/bus"
	"threadbase.app/comments/internal/store"
)

// Services wires the orchestrators once. The notification service must
// be a singleton: its constructor registers event subscriptions.
type Services struct {
	comments      CommentService
	notifications NotificationService
}

func NewServices(stores *store.Stores, events bus.Bus) *Services {
	return &Services{
		comments:      NewCommentService(stores.Comments(), events),
		notifications: NewNotificationService(stores.Notifications(), events),
	}
}

func (s *Services) Comments() CommentService {
	return s.comments
}

func (s *Services) Notifications() NotificationService {
	return s.notifications
}

func (s *Services) Close() {
	s.notifications.Close()
}
