package service_test

import (
	"context"
	"sync"

	"threadbase.app/comments/internal/bus"
	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
)

type mockCommentStore struct {
	listFn          func(ctx context.Context, opts model.ListOptions) (*pagination.Result[model.Comment], error)
	listRepliesFn   func(ctx context.Context, parentID string, opts model.ListOptions) (*pagination.Result[model.Comment], error)
	getByIDFn       func(ctx context.Context, id string) (*model.Comment, error)
	createFn        func(ctx context.Context, content, authorID string, parentID *string) (*model.Comment, error)
	updateFn        func(ctx context.Context, id, content string) (*model.Comment, error)
	deleteFn        func(ctx context.Context, id string) (bool, error)
	deleteRepliesFn func(ctx context.Context, parentID string) (int, error)
}

func (m *mockCommentStore) List(ctx context.Context, opts model.ListOptions) (*pagination.Result[model.Comment], error) {
	if m.listFn != nil {
		return m.listFn(ctx, opts)
	}
	return &pagination.Result[model.Comment]{Items: []model.Comment{}}, nil
}

func (m *mockCommentStore) ListReplies(ctx context.Context, parentID string, opts model.ListOptions) (*pagination.Result[model.Comment], error) {
	if m.listRepliesFn != nil {
		return m.listRepliesFn(ctx, parentID, opts)
	}
	return &pagination.Result[model.Comment]{Items: []model.Comment{}}, nil
}

func (m *mockCommentStore) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCommentStore) Create(ctx context.Context, content, authorID string, parentID *string) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, content, authorID, parentID)
	}
	return &model.Comment{}, nil
}

func (m *mockCommentStore) Update(ctx context.Context, id, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, content)
	}
	return &model.Comment{}, nil
}

func (m *mockCommentStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockCommentStore) DeleteReplies(ctx context.Context, parentID string) (int, error) {
	if m.deleteRepliesFn != nil {
		return m.deleteRepliesFn(ctx, parentID)
	}
	return 0, nil
}

type mockNotificationStore struct {
	listFn        func(ctx context.Context, recipientID string, opts model.ListOptions) (*pagination.Result[model.Notification], error)
	getByIDFn     func(ctx context.Context, id string) (*model.Notification, error)
	countUnreadFn func(ctx context.Context, recipientID string) (int, error)
	createFn      func(ctx context.Context, typ model.EventType, title, message, recipientID string, metadata map[string]any) (*model.Notification, error)
	markReadFn    func(ctx context.Context, id string) (*model.Notification, error)
	markAllReadFn func(ctx context.Context, recipientID string) (int, error)
	deleteFn      func(ctx context.Context, id string) (bool, error)
}

func (m *mockNotificationStore) List(ctx context.Context, recipientID string, opts model.ListOptions) (*pagination.Result[model.Notification], error) {
	if m.listFn != nil {
		return m.listFn(ctx, recipientID, opts)
	}
	return &pagination.Result[model.Notification]{Items: []model.Notification{}}, nil
}

func (m *mockNotificationStore) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockNotificationStore) CountUnread(ctx context.Context, recipientID string) (int, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, recipientID)
	}
	return 0, nil
}

func (m *mockNotificationStore) Create(ctx context.Context, typ model.EventType, title, message, recipientID string, metadata map[string]any) (*model.Notification, error) {
	if m.createFn != nil {
		return m.createFn(ctx, typ, title, message, recipientID, metadata)
	}
	return &model.Notification{}, nil
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id)
	}
	return &model.Notification{}, nil
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, recipientID string) (int, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, recipientID)
	}
	return 0, nil
}

func (m *mockNotificationStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

// mockBus records published events synchronously so specs can assert on
// them without racing goroutines.
type mockBus struct {
	mu        sync.Mutex
	published []model.Event
}

func (m *mockBus) Subscribe(eventType model.EventType, handler bus.Handler) *bus.Subscription {
	return &bus.Subscription{}
}

func (m *mockBus) Unsubscribe(sub *bus.Subscription) {}

func (m *mockBus) Publish(ctx context.Context, evt model.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, evt)
}

func (m *mockBus) events() []model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Event, len(m.published))
	copy(out, m.published)
	return out
}
