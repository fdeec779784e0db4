package store

// Stores owns the process-lifetime backing maps. State is memory-resident
// only; a restart clears everything.
type Stores struct {
	comments      CommentStore
	notifications NotificationStore
}

func NewStores() *Stores {
	return &Stores{
		comments:      NewCommentStore(),
		notifications: NewNotificationStore(),
	}
}

func (s *Stores) Comments() CommentStore {
	return s.comments
}

func (s *Stores) Notifications() NotificationStore {
	return s.notifications
}
