package dto

import (
	"time"

	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
)

type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=500"`
	AuthorID string  `json:"author_id" binding:"required,max=255"`
	ParentID *string `json:"parent_id,omitempty" binding:"omitempty,uuid4"`
}

type CreateReplyRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=500"`
	AuthorID string `json:"author_id" binding:"required,max=255"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// ListQuery is shared by comment listings. Zero page/limit fall back to
// server defaults downstream; the bindings only reject nonsense.
type ListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=createdAt updatedAt"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

func (q ListQuery) Options() model.ListOptions {
	return model.ListOptions{
		Page:   q.Page,
		Limit:  q.Limit,
		SortBy: model.SortField(q.SortBy),
		Order:  model.SortOrder(q.SortOrder),
	}
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type PageMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

func ToPageMeta(m pagination.Meta) PageMeta {
	return PageMeta{
		Total:       m.Total,
		Page:        m.Page,
		Limit:       m.Limit,
		TotalPages:  m.TotalPages,
		HasNextPage: m.HasNext,
		HasPrevPage: m.HasPrev,
	}
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Meta     PageMeta          `json:"meta"`
}

func ToCommentListResponse(res *pagination.Result[model.Comment]) *CommentListResponse {
	comments := make([]CommentResponse, 0, len(res.Items))
	for i := range res.Items {
		comments = append(comments, *ToCommentResponse(&res.Items[i]))
	}
	return &CommentListResponse{Comments: comments, Meta: ToPageMeta(res.Meta)}
}
