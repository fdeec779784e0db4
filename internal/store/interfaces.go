package store

import (
	"context"
	"errors"

	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// CommentStore defines the contract for comment data access.
// Stores do not validate parent existence; that is the service's job.
type CommentStore interface {
	// List returns root comments only, paginated and sorted per opts.
	List(ctx context.Context, opts model.ListOptions) (*pagination.Result[model.Comment], error)
	// ListReplies returns the direct children of parentID.
	ListReplies(ctx context.Context, parentID string, opts model.ListOptions) (*pagination.Result[model.Comment], error)
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// Create assigns a fresh id and sets both timestamps to now.
	Create(ctx context.Context, content, authorID string, parentID *string) (*model.Comment, error)
	// Update replaces content and bumps UpdatedAt; CreatedAt is preserved.
	Update(ctx context.Context, id, content string) (*model.Comment, error)
	// Delete reports whether a comment was removed. It does not cascade.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteReplies removes the entire reply subtree under parentID and
	// returns the number of comments removed.
	DeleteReplies(ctx context.Context, parentID string) (int, error)
}

// NotificationStore defines the contract for notification data access,
// scoped by recipient.
type NotificationStore interface {
	List(ctx context.Context, recipientID string, opts model.ListOptions) (*pagination.Result[model.Notification], error)
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	Create(ctx context.Context, typ model.EventType, title, message, recipientID string, metadata map[string]any) (*model.Notification, error)
	// MarkRead sets the read flag and refreshes ReadAt, even when the
	// notification was already read.
	MarkRead(ctx context.Context, id string) (*model.Notification, error)
	// MarkAllRead marks every currently-unread notification of the
	// recipient with one shared timestamp and returns how many changed.
	MarkAllRead(ctx context.Context, recipientID string) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
}
