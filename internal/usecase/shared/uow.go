package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/infra/db"
)

type UnitOfWork interface {
	// Within: Read-committed transaction for write operations. fn runs exactly once.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Comments() CommentRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads resolve the collaborators a write needs. Missing rows surface
// as infra.KindNotFound repository errors.
type CommandReads interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	UserByID(ctx context.Context, id int64) (*UserSnapshot, error)
	// ItemForShare locks the item row against concurrent updates until the
	// surrounding transaction ends.
	ItemForShare(ctx context.Context, id int64) (*ItemSnapshot, error)
	BookingByID(ctx context.Context, id int64) (*BookingSnapshot, error)
	// LatestCompletedBooking returns nil when no booking of the item ended
	// before now without being rejected.
	LatestCompletedBooking(ctx context.Context, itemID int64, now time.Time) (*comment.CompletedBooking, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error)
	// TransitionState sets the state unless the stored state is one of blocked.
	// It reports whether a row was updated.
	TransitionState(ctx context.Context, tx db.DBTX, id int64, to booking.Status, blocked []booking.Status) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *comment.Comment) (int64, error)
}
