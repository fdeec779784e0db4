package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
)

// commentStore keeps all comments in a mutex-guarded map. An insertion
// order slice backs deterministic listing: the stable sort ties break by
// creation order, never by map iteration order.
type commentStore struct {
	mu       sync.RWMutex
	comments map[string]model.Comment
	order    []string
}

func NewCommentStore() CommentStore {
	return &commentStore{
		comments: make(map[string]model.Comment),
	}
}

func (s *commentStore) List(ctx context.Context, opts model.ListOptions) (*pagination.Result[model.Comment], error) {
	s.mu.RLock()
	roots := s.snapshot(func(c model.Comment) bool { return c.IsRoot() })
	s.mu.RUnlock()

	res := pagination.Paginate(roots, pageRequest(opts), commentComparator(opts.SortBy))
	return &res, nil
}

func (s *commentStore) ListReplies(ctx context.Context, parentID string, opts model.ListOptions) (*pagination.Result[model.Comment], error) {
	s.mu.RLock()
	replies := s.snapshot(func(c model.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	})
	s.mu.RUnlock()

	res := pagination.Paginate(replies, pageRequest(opts), commentComparator(opts.SortBy))
	return &res, nil
}

func (s *commentStore) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneComment(c), nil
}

func (s *commentStore) Create(ctx context.Context, content, authorID string, parentID *string) (*model.Comment, error) {
	now := time.Now().UTC()
	c := model.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parentID != nil {
		parent := *parentID
		c.ParentID = &parent
	}

	s.mu.Lock()
	s.comments[c.ID] = c
	s.order = append(s.order, c.ID)
	s.mu.Unlock()

	return cloneComment(c), nil
}

func (s *commentStore) Update(ctx context.Context, id, content string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	s.comments[id] = c

	return cloneComment(c), nil
}

func (s *commentStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return false, nil
	}
	s.remove(id)
	return true, nil
}

// DeleteReplies removes the whole descendant subtree, one generation at a
// time, so reply-to-reply chains can never leave orphans behind.
func (s *commentStore) DeleteReplies(ctx context.Context, parentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	frontier := []string{parentID}
	for len(frontier) > 0 {
		var next []string
		for _, id := range s.order {
			c := s.comments[id]
			if c.ParentID == nil {
				continue
			}
			for _, p := range frontier {
				if *c.ParentID == p {
					next = append(next, id)
					break
				}
			}
		}
		for _, id := range next {
			s.remove(id)
			removed++
		}
		frontier = next
	}

	return removed, nil
}

// snapshot copies every matching comment in insertion order.
// Callers must hold at least the read lock.
func (s *commentStore) snapshot(match func(model.Comment) bool) []model.Comment {
	out := make([]model.Comment, 0, len(s.order))
	for _, id := range s.order {
		c := s.comments[id]
		if match(c) {
			out = append(out, *cloneComment(c))
		}
	}
	return out
}

// remove deletes one comment. Callers must hold the write lock.
func (s *commentStore) remove(id string) {
	delete(s.comments, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// cloneComment returns an independent copy so callers can never reach
// into store-owned state.
func cloneComment(c model.Comment) *model.Comment {
	out := c
	if c.ParentID != nil {
		parent := *c.ParentID
		out.ParentID = &parent
	}
	return &out
}

func pageRequest(opts model.ListOptions) pagination.Request {
	return pagination.Request{
		Page:       opts.Page,
		Limit:      opts.Limit,
		Descending: opts.Order != model.SortAsc,
	}
}

func commentComparator(field model.SortField) func(a, b model.Comment) int {
	if field == model.SortByUpdatedAt {
		return pagination.ByTime(func(c model.Comment) time.Time { return c.UpdatedAt })
	}
	return pagination.ByTime(func(c model.Comment) time.Time { return c.CreatedAt })
}
