package store

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
)

type notificationStore struct {
	mu            sync.RWMutex
	notifications map[string]model.Notification
	order         []string
}

func NewNotificationStore() NotificationStore {
	return &notificationStore{
		notifications: make(map[string]model.Notification),
	}
}

func (s *notificationStore) List(ctx context.Context, recipientID string, opts model.ListOptions) (*pagination.Result[model.Notification], error) {
	s.mu.RLock()
	matching := make([]model.Notification, 0)
	for _, id := range s.order {
		n := s.notifications[id]
		if n.RecipientID == recipientID {
			matching = append(matching, *cloneNotification(n))
		}
	}
	s.mu.RUnlock()

	byCreated := pagination.ByTime(func(n model.Notification) time.Time { return n.CreatedAt })
	res := pagination.Paginate(matching, pageRequest(opts), byCreated)
	return &res, nil
}

func (s *notificationStore) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneNotification(n), nil
}

func (s *notificationStore) CountUnread(ctx context.Context, recipientID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *notificationStore) Create(ctx context.Context, typ model.EventType, title, message, recipientID string, metadata map[string]any) (*model.Notification, error) {
	n := model.Notification{
		ID:          uuid.NewString(),
		Type:        typ,
		Title:       title,
		Message:     message,
		RecipientID: recipientID,
		Metadata:    maps.Clone(metadata),
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.notifications[n.ID] = n
	s.order = append(s.order, n.ID)
	s.mu.Unlock()

	return cloneNotification(n), nil
}

func (s *notificationStore) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now().UTC()
	n.Read = true
	n.ReadAt = &now
	s.notifications[id] = n

	return cloneNotification(n), nil
}

func (s *notificationStore) MarkAllRead(ctx context.Context, recipientID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	updated := 0
	for id, n := range s.notifications {
		if n.RecipientID != recipientID || n.Read {
			continue
		}
		n.Read = true
		n.ReadAt = &now
		s.notifications[id] = n
		updated++
	}
	return updated, nil
}

func (s *notificationStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return false, nil
	}
	delete(s.notifications, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func cloneNotification(n model.Notification) *model.Notification {
	out := n
	out.Metadata = maps.Clone(n.Metadata)
	if n.ReadAt != nil {
		at := *n.ReadAt
		out.ReadAt = &at
	}
	return &out
}
