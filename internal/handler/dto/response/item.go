package response

import (
	"time"

	"shareit/internal/usecase/queries"
)

type BookingShortResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []*CommentResponse    `json:"comments"`
}

func FromCommentView(v *queries.CommentView, loc *time.Location) *CommentResponse {
	return &CommentResponse{
		ID:         v.ID,
		Text:       v.Text,
		AuthorName: v.AuthorName,
		Created:    v.Created.In(loc),
	}
}

func FromItemView(v *queries.ItemView, loc *time.Location) *ItemResponse {
	comments := make([]*CommentResponse, len(v.Comments))
	for i, c := range v.Comments {
		comments[i] = FromCommentView(c, loc)
	}
	return &ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		LastBooking: fromShort(v.LastBooking),
		NextBooking: fromShort(v.NextBooking),
		Comments:    comments,
	}
}

func FromItemViews(views []*queries.ItemView, loc *time.Location) []*ItemResponse {
	res := make([]*ItemResponse, len(views))
	for i, v := range views {
		res[i] = FromItemView(v, loc)
	}
	return res
}

func fromShort(s *queries.BookingShort) *BookingShortResponse {
	if s == nil {
		return nil
	}
	return &BookingShortResponse{ID: s.ID, BookerID: s.BookerID}
}
