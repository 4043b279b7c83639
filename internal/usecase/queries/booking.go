package queries

import (
	"context"
	"log/slog"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	// List returns matches ordered by start descending, then id ascending.
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
}

type BookingQueries interface {
	// Get returns a booking to its owner or booker only.
	Get(ctx context.Context, viewerID, bookingID int64) (*BookingView, error)
	// Load returns a booking without any access check. It renders the result
	// of a write that already passed its own checks.
	Load(ctx context.Context, bookingID int64) (*BookingView, error)
	List(ctx context.Context, userID int64, role booking.Role, category string, from, size *int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	users    UserReadStore
	clock    clock.Clock
	logger   *slog.Logger
}

func NewBookingQueries(bookings BookingReadStore, users UserReadStore, clk clock.Clock, logger *slog.Logger) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		users:    users,
		clock:    clk,
		logger:   logger,
	}
}

func (q *bookingQueriesImpl) Get(ctx context.Context, viewerID, bookingID int64) (*BookingView, error) {
	view, err := q.Load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, q.users, viewerID); err != nil {
		return nil, err
	}

	if err := booking.AuthorizeView(viewerID, view.Participants(), view.ItemAvailable); err != nil {
		q.logger.DebugContext(ctx, "booking view rejected",
			slog.Int64("booking_id", bookingID),
			slog.Int64("viewer_id", viewerID),
			slog.Bool("access_denied", errs.Is(err, errs.ErrBookingAccessDenied)),
			slog.String("reason", err.Error()))
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) Load(ctx context.Context, bookingID int64) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Reason(errs.ErrBookingNotFound, "booking %d not found", bookingID)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, userID int64, role booking.Role, category string, from, size *int) ([]*BookingView, error) {
	if err := requireUser(ctx, q.users, userID); err != nil {
		return nil, err
	}
	window, err := NewWindow(from, size)
	if err != nil {
		return nil, err
	}
	c, err := booking.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	return q.bookings.List(ctx, BookingFilter{
		UserID:   userID,
		Role:     role,
		Category: c,
		Now:      q.clock.Now(),
		Window:   window,
	})
}
