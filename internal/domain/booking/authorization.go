package booking

import "shareit/internal/pkg/errs"

type Participants struct {
	OwnerID  int64
	BookerID int64
}

// AuthorizeView lets the item owner and the booker see a booking, and only
// while the item is available. Access failures are marked as not-found so the
// caller cannot tell a foreign booking from a missing one.
func AuthorizeView(viewerID int64, p Participants, itemAvailable bool) error {
	if viewerID != p.OwnerID && viewerID != p.BookerID {
		return errs.Mark(
			errs.Reason(errs.ErrBookingAccessDenied, "user %d is neither owner nor booker", viewerID),
			errs.ErrBookingNotFound,
		)
	}
	if !itemAvailable {
		return errs.Reason(errs.ErrItemUnavailable, "item of the booking is not available")
	}
	return nil
}
