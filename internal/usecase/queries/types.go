package queries

import (
	"time"

	"shareit/internal/domain/booking"
)

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingView is a booking joined with its item and booker.
type BookingView struct {
	ID            int64          `json:"id"`
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	Status        booking.Status `json:"status"`
	Item          ItemRef        `json:"item"`
	Booker        UserRef        `json:"booker"`
	ItemOwnerID   int64          `json:"-"`
	ItemAvailable bool           `json:"-"`
}

func (v *BookingView) Participants() booking.Participants {
	return booking.Participants{OwnerID: v.ItemOwnerID, BookerID: v.Booker.ID}
}

type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"-"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	LastBooking *BookingShort  `json:"lastBooking"`
	NextBooking *BookingShort  `json:"nextBooking"`
	Comments    []*CommentView `json:"comments,omitempty"`
}

// Enrichment holds the neighbouring bookings of an item around now.
type Enrichment struct {
	Last *BookingShort
	Next *BookingShort
}

// BookingFilter selects the bookings of one user on one side of the booking.
type BookingFilter struct {
	UserID   int64
	Role     booking.Role
	Category booking.Category
	Now      time.Time
	Window   Window
}
