package model

import "time"

// Notification is addressed to a single recipient.
// Invariant: ReadAt is set if and only if Read is true.
type Notification struct {
	ID          string
	Type        EventType
	Title       string
	Message     string
	RecipientID string
	Read        bool
	ReadAt      *time.Time
	Metadata    map[string]any
	CreatedAt   time.Time
}
