package model

import "time"

// EventType tags a domain event. Types are scoped to the comment domain.
type EventType string

const (
	EventCommentCreated EventType = "comment.created"
	EventCommentUpdated EventType = "comment.updated"
	EventCommentDeleted EventType = "comment.deleted"
	EventCommentReplied EventType = "comment.replied"
)

// Event is an immutable record of a state change in the comment domain.
// Events are ephemeral: they are never stored, retried or redelivered.
// ID is a snowflake, distinct from any entity id.
type Event struct {
	ID        int64
	Type      EventType
	Timestamp time.Time
	Payload   any
	Metadata  map[string]any
}

// CommentCreated is the payload of EventCommentCreated.
type CommentCreated struct {
	CommentID string
	Content   string
	AuthorID  string
	ParentID  *string
}

// CommentUpdated is the payload of EventCommentUpdated.
type CommentUpdated struct {
	CommentID  string
	OldContent string
	NewContent string
	AuthorID   string
}

// CommentDeleted is the payload of EventCommentDeleted.
type CommentDeleted struct {
	CommentID string
	AuthorID  string
}

// CommentReplied is the payload of EventCommentReplied. ParentAuthorID is
// the notification target: the author of the comment that was replied to,
// not the reply's author.
type CommentReplied struct {
	CommentID      string
	Content        string
	AuthorID       string
	ParentID       string
	ParentAuthorID string
}
