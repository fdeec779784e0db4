package model

// SortField selects the timestamp a listing is ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortOrder is the listing direction. Descending is the default.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListOptions carries pagination and sorting for list queries.
// Zero Page/Limit fall back to server defaults; empty SortBy means
// SortByCreatedAt, empty Order means SortDesc.
type ListOptions struct {
	Page   int
	Limit  int
	SortBy SortField
	Order  SortOrder
}
