package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

// ItemSpec is what creation needs to know about the reserved item.
type ItemSpec struct {
	ID        int64
	OwnerID   int64
	Available bool
}

type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	period   Period
	status   Status
}

// NewBooking validates a reservation request. Existence of the booker and the
// item is resolved by the caller; the remaining checks run in this order:
// dates, availability, self-booking.
func NewBooking(bookerID int64, item ItemSpec, start, end time.Time) (*Booking, error) {
	period, err := NewPeriod(start, end)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, errs.Reason(errs.ErrItemUnavailable, "item %d is not available", item.ID)
	}
	if item.OwnerID == bookerID {
		return nil, errs.Reason(errs.ErrSelfBookingRejected, "user %d owns item %d", bookerID, item.ID)
	}

	return &Booking{
		itemID:   item.ID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}, nil
}

// Reconstruct rebuilds a stored booking without re-validating it.
func Reconstruct(id, itemID, bookerID int64, start, end time.Time, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		period:   Period{start: start, end: end},
		status:   status,
	}
}

// Decide applies an owner's approve/decline decision. The policy guard runs
// before the ownership check, so a non-owner deciding an approved booking
// sees IncorrectBooking rather than not-found.
func (b *Booking) Decide(policy TransitionPolicy, actorID, ownerID int64, approve bool) error {
	if err := policy.Allow(b.status); err != nil {
		return err
	}
	if actorID != ownerID {
		return errs.Mark(
			errs.Reason(errs.ErrBookingAccessDenied, "user %d does not own the item of booking %d", actorID, b.id),
			errs.ErrBookingNotFound,
		)
	}
	b.status = DecisionStatus(approve)
	return nil
}

func DecisionStatus(approve bool) Status {
	if approve {
		return StatusApproved
	}
	return StatusRejected
}

func (b *Booking) WithID(id int64) *Booking {
	b.id = id
	return b
}

func (b *Booking) ID() int64        { return b.id }
func (b *Booking) ItemID() int64    { return b.itemID }
func (b *Booking) BookerID() int64  { return b.bookerID }
func (b *Booking) Period() Period   { return b.period }
func (b *Booking) Start() time.Time { return b.period.start }
func (b *Booking) End() time.Time   { return b.period.end }
func (b *Booking) Status() Status   { return b.status }
