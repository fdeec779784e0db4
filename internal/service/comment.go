package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"threadbase.app/comments/common/id"
	"threadbase.app/comments/common/logger"
	"threadbase.app/comments/internal/bus"
	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
	"threadbase.app/comments/internal/store"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService orchestrates comment mutations. Every successful
// mutation publishes exactly one domain event; reads publish nothing.
type CommentService interface {
	Create(ctx context.Context, content, authorID string, parentID *string) (*model.Comment, error)
	CreateReply(ctx context.Context, parentID, content, authorID string) (*model.Comment, error)
	Update(ctx context.Context, id, content string) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	List(ctx context.Context, opts model.ListOptions) (*pagination.Result[model.Comment], error)
	ListReplies(ctx context.Context, parentID string, opts model.ListOptions) (*pagination.Result[model.Comment], error)
}

type commentService struct {
	comments store.CommentStore
	events   bus.Bus
}

func NewCommentService(comments store.CommentStore, events bus.Bus) CommentService {
	return &commentService{
		comments: comments,
		events:   events,
	}
}

func (s *commentService) Create(ctx context.Context, content, authorID string, parentID *string) (*model.Comment, error) {
	if parentID != nil {
		if _, err := s.comments.GetByID(ctx, *parentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, *parentID)
			}
			return nil, fmt.Errorf("fetching parent comment: %w", err)
		}
	}

	c, err := s.comments.Create(ctx, content, authorID, parentID)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.publish(ctx, model.EventCommentCreated, model.CommentCreated{
		CommentID: c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
	})

	slog.InfoContext(ctx, "comment created",
		"comment_id", c.ID,
		"author_id", c.AuthorID,
		"is_root", c.IsRoot(),
		"content", logger.Truncate(c.Content, 50))
	return c, nil
}

func (s *commentService) CreateReply(ctx context.Context, parentID, content, authorID string) (*model.Comment, error) {
	parent, err := s.comments.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, parentID)
		}
		return nil, fmt.Errorf("fetching parent comment: %w", err)
	}

	c, err := s.comments.Create(ctx, content, authorID, &parent.ID)
	if err != nil {
		return nil, fmt.Errorf("creating reply: %w", err)
	}

	s.publish(ctx, model.EventCommentReplied, model.CommentReplied{
		CommentID:      c.ID,
		Content:        c.Content,
		AuthorID:       c.AuthorID,
		ParentID:       parent.ID,
		ParentAuthorID: parent.AuthorID,
	})

	slog.InfoContext(ctx, "reply created", "comment_id", c.ID, "parent_id", parent.ID, "author_id", c.AuthorID)
	return c, nil
}

func (s *commentService) Update(ctx context.Context, commentID, content string) (*model.Comment, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{CommentID: logger.Ptr(commentID)})

	existing, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
		}
		return nil, fmt.Errorf("fetching comment: %w", err)
	}

	updated, err := s.comments.Update(ctx, commentID, content)
	if err != nil {
		// The store can race to not-found between the check and the write
		// once a concurrent backend sits behind this interface.
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
		}
		return nil, fmt.Errorf("updating comment: %w", err)
	}

	s.publish(ctx, model.EventCommentUpdated, model.CommentUpdated{
		CommentID:  updated.ID,
		OldContent: existing.Content,
		NewContent: updated.Content,
		AuthorID:   updated.AuthorID,
	})

	slog.InfoContext(ctx, "comment updated", "author_id", updated.AuthorID)
	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, commentID string) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{CommentID: logger.Ptr(commentID)})

	existing, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
		}
		return fmt.Errorf("fetching comment: %w", err)
	}

	replies, err := s.comments.DeleteReplies(ctx, commentID)
	if err != nil {
		return fmt.Errorf("deleting replies: %w", err)
	}

	removed, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
	}

	s.publish(ctx, model.EventCommentDeleted, model.CommentDeleted{
		CommentID: existing.ID,
		AuthorID:  existing.AuthorID,
	})

	slog.InfoContext(ctx, "comment deleted", "author_id", existing.AuthorID, "replies_removed", replies)
	return nil
}

func (s *commentService) GetByID(ctx context.Context, commentID string) (*model.Comment, error) {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, commentID)
		}
		return nil, fmt.Errorf("fetching comment: %w", err)
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, opts model.ListOptions) (*pagination.Result[model.Comment], error) {
	res, err := s.comments.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return res, nil
}

func (s *commentService) ListReplies(ctx context.Context, parentID string, opts model.ListOptions) (*pagination.Result[model.Comment], error) {
	if _, err := s.comments.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, parentID)
		}
		return nil, fmt.Errorf("fetching parent comment: %w", err)
	}

	res, err := s.comments.ListReplies(ctx, parentID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing replies: %w", err)
	}
	return res, nil
}

func (s *commentService) publish(ctx context.Context, eventType model.EventType, payload any) {
	s.events.Publish(ctx, model.Event{
		ID:        id.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
