package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

// Category selects bookings of a user for listing.
type Category string

const (
	CategoryAll      Category = "ALL"
	CategoryCurrent  Category = "CURRENT"
	CategoryPast     Category = "PAST"
	CategoryFuture   Category = "FUTURE"
	CategoryWaiting  Category = "WAITING"
	CategoryRejected Category = "REJECTED"
)

// ParseCategory is case-sensitive.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case CategoryAll, CategoryCurrent, CategoryPast, CategoryFuture, CategoryWaiting, CategoryRejected:
		return c, nil
	default:
		return "", errs.Reason(errs.ErrIncorrectStatus, "Unknown state: %s", raw)
	}
}

// Matches is the reference predicate for a category at instant now.
// FUTURE checks only the end boundary, so in-progress bookings match too.
func (c Category) Matches(b *Booking, now time.Time) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryCurrent:
		return b.period.Contains(now)
	case CategoryPast:
		return b.period.EndedBefore(now)
	case CategoryFuture:
		return b.period.EndsAfter(now)
	case CategoryWaiting:
		return b.status == StatusWaiting
	case CategoryRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}

// Role says which side of the booking the listing user is on.
type Role string

const (
	RoleBooker Role = "BOOKER"
	RoleOwner  Role = "OWNER"
)

// IsNextCandidate and IsLastCandidate drive item enrichment. They use the
// start boundary and are independent of the FUTURE category.
func IsNextCandidate(b *Booking, now time.Time) bool {
	return b.status != StatusRejected && b.period.StartsAfter(now)
}

func IsLastCandidate(b *Booking, now time.Time) bool {
	return b.status != StatusRejected && b.period.StartedBefore(now)
}

// IsCompleted reports a booking that finished before now and was not
// rejected. Such a booking entitles its booker to comment on the item.
func IsCompleted(b *Booking, now time.Time) bool {
	return b.status != StatusRejected && b.period.EndedBefore(now)
}
