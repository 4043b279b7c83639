//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/usecase/queries"
)

type ItemBuilder struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	LastBooking *queries.BookingShort
	NextBooking *queries.BookingShort
	Comments    []*queries.CommentView
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          10,
		OwnerID:     1,
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   true,
	}
}

func (i *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(i)
	return i
}

func (i *ItemBuilder) WithComment(id int64, text, author string, created time.Time) *ItemBuilder {
	i.Comments = append(i.Comments, &queries.CommentView{ID: id, Text: text, AuthorName: author, Created: created})
	return i
}

func (i *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		LastBooking: i.LastBooking,
		NextBooking: i.NextBooking,
		Comments:    i.Comments,
	}
}
