// Package pagination implements offset pagination over in-memory
// collections. Callers snapshot a filtered slice, optionally supply a
// comparator, and get back one page plus metadata.
package pagination

import (
	"cmp"
	"slices"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Request carries the page coordinates. Zero values fall back to
// defaults rather than erroring; Descending flips the comparator.
type Request struct {
	Page       int
	Limit      int
	Descending bool
}

// Meta describes the page relative to the full collection.
type Meta struct {
	Total      int
	Page       int
	Limit      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Result is one page of items plus metadata.
type Result[T any] struct {
	Items []T
	Meta  Meta
}

// Paginate sorts a copy of items with the given ascending comparator
// (stable, so equal keys keep their input order) and slices out the
// requested page. A nil comparator preserves the input order. Pages past
// the end yield an empty item list, never an error.
func Paginate[T any](items []T, req Request, compare func(a, b T) int) Result[T] {
	page := req.Page
	if page <= 0 {
		page = DefaultPage
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sorted := items
	if compare != nil {
		sorted = slices.Clone(items)
		ordered := compare
		if req.Descending {
			ordered = func(a, b T) int { return -compare(a, b) }
		}
		slices.SortStableFunc(sorted, ordered)
	}

	total := len(sorted)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	pageItems := []T{}
	if offset := (page - 1) * limit; offset < total {
		pageItems = slices.Clone(sorted[offset:min(offset+limit, total)])
	}

	return Result[T]{
		Items: pageItems,
		Meta: Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1 && total > 0,
		},
	}
}

// By builds a comparator from an ordered sort key (numbers, strings).
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// ByTime builds a comparator from a time.Time sort key.
func ByTime[T any](key func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return key(a).Compare(key(b)) }
}
