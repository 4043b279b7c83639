package comment

import "shareit/internal/pkg/errs"

// CompletedBooking is the latest non-rejected booking of an item that ended
// before now.
type CompletedBooking struct {
	ID       int64
	BookerID int64
}

// CheckEligibility only looks at the latest completed booking: an author whose
// earlier booking was followed by someone else's is not eligible.
func CheckEligibility(authorID, itemID int64, latest *CompletedBooking) error {
	if latest == nil {
		return errs.Reason(errs.ErrIncorrectBooking, "item %d was never booked", itemID)
	}
	if latest.BookerID != authorID {
		return errs.Reason(errs.ErrIncorrectBooking, "user %d never booked item %d", authorID, itemID)
	}
	return nil
}
