//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type BookingBuilder struct {
	ID            int64
	ItemID        int64
	ItemName      string
	ItemOwnerID   int64
	ItemAvailable bool
	BookerID      int64
	BookerName    string
	Start         time.Time
	End           time.Time
	Status        booking.Status
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:            5,
		ItemID:        10,
		ItemName:      "Drill",
		ItemOwnerID:   1,
		ItemAvailable: true,
		BookerID:      2,
		BookerName:    "Booker",
		Start:         start,
		End:           start.Add(24 * time.Hour),
		Status:        booking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:            b.ID,
		Start:         b.Start,
		End:           b.End,
		Status:        b.Status,
		Item:          queries.ItemRef{ID: b.ItemID, Name: b.ItemName},
		Booker:        queries.UserRef{ID: b.BookerID, Name: b.BookerName},
		ItemOwnerID:   b.ItemOwnerID,
		ItemAvailable: b.ItemAvailable,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start.Format(reqdto.NaiveLayout),
		End:    b.End.Format(reqdto.NaiveLayout),
	}
}
