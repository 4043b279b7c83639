package shared

import (
	"time"

	"shareit/internal/domain/booking"
)

type UserSnapshot struct {
	ID   int64
	Name string
}

type ItemSnapshot struct {
	ID        int64
	OwnerID   int64
	Available bool
}

func (s ItemSnapshot) Spec() booking.ItemSpec {
	return booking.ItemSpec{ID: s.ID, OwnerID: s.OwnerID, Available: s.Available}
}

// Minimal snapshot for command read operations
type BookingSnapshot struct {
	ID            int64
	ItemID        int64
	BookerID      int64
	Start         time.Time
	End           time.Time
	Status        booking.Status
	ItemOwnerID   int64
	ItemAvailable bool
}

func (s BookingSnapshot) Domain() *booking.Booking {
	return booking.Reconstruct(s.ID, s.ItemID, s.BookerID, s.Start, s.End, s.Status)
}
