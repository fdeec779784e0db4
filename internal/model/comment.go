package model

import "time"

// Comment is a single comment. A nil ParentID marks a root (top-level)
// comment; replies carry the id of the comment they answer.
type Comment struct {
	ID        string
	Content   string
	AuthorID  string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the comment is top-level.
func (c Comment) IsRoot() bool {
	return c.ParentID == nil
}
