package commands

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

type CreateBookingRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type CreateBookingResult struct {
	BookingID int64
}

type DecideBookingResult struct {
	BookingID int64
	Status    booking.Status
}

type BookingCommands interface {
	Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*CreateBookingResult, error)
	Decide(ctx context.Context, actorID, bookingID int64, approve bool) (*DecideBookingResult, error)
}

type bookingUseCaseImpl struct {
	uow    shared.UnitOfWork
	policy booking.TransitionPolicy
	logger *slog.Logger
}

func NewBookingUseCase(uow shared.UnitOfWork, policy booking.TransitionPolicy, logger *slog.Logger) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, policy: policy, logger: logger}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*CreateBookingResult, error) {
	var createdID int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := requireUser(ctx, tx.Reads(), bookerID); err != nil {
			return err
		}

		item, err := tx.Reads().ItemForShare(ctx, req.ItemID)
		if err != nil {
			return translateNotFound(err, errs.ErrItemNotFound, "item %d not found", req.ItemID)
		}

		b, err := booking.NewBooking(bookerID, item.Spec(), req.Start, req.End)
		if err != nil {
			return err
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), b)
		if err != nil {
			return err
		}
		createdID = id
		return nil
	})
	if err != nil {
		uc.logRejected(ctx, "create booking", err, slog.Int64("booker_id", bookerID), slog.Int64("item_id", req.ItemID))
		return nil, err
	}

	uc.logger.InfoContext(ctx, "booking created",
		slog.Int64("booking_id", createdID),
		slog.Int64("booker_id", bookerID),
		slog.Int64("item_id", req.ItemID))
	return &CreateBookingResult{BookingID: createdID}, nil
}

func (uc *bookingUseCaseImpl) Decide(ctx context.Context, actorID, bookingID int64, approve bool) (*DecideBookingResult, error) {
	var decided booking.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			return translateNotFound(err, errs.ErrBookingNotFound, "booking %d not found", bookingID)
		}
		if err := requireUser(ctx, tx.Reads(), actorID); err != nil {
			return err
		}

		b := snap.Domain()
		if err := b.Decide(uc.policy, actorID, snap.ItemOwnerID, approve); err != nil {
			return err
		}

		// The read above is not locked: the conditional update is what
		// serializes concurrent decisions.
		updated, err := tx.Bookings().TransitionState(ctx, tx.DB(), bookingID, b.Status(), uc.policy.BlockedStates())
		if err != nil {
			return err
		}
		if !updated {
			return errs.Reason(errs.ErrIncorrectBooking, "booking %d was decided concurrently", bookingID)
		}
		decided = b.Status()
		return nil
	})
	if err != nil {
		uc.logRejected(ctx, "decide booking", err, slog.Int64("booking_id", bookingID), slog.Int64("actor_id", actorID))
		return nil, err
	}

	uc.logger.InfoContext(ctx, "booking decided",
		slog.Int64("booking_id", bookingID),
		slog.String("status", decided.String()))
	return &DecideBookingResult{BookingID: bookingID, Status: decided}, nil
}

func (uc *bookingUseCaseImpl) logRejected(ctx context.Context, op string, err error, attrs ...any) {
	if !isDomainRejection(err) {
		return
	}
	args := append([]any{slog.String("reason", err.Error())}, attrs...)
	if errs.Is(err, errs.ErrBookingAccessDenied) {
		args = append(args, slog.Bool("access_denied", true))
	}
	uc.logger.DebugContext(ctx, op+" rejected", args...)
}

func requireUser(ctx context.Context, reads shared.CommandReads, id int64) error {
	ok, err := reads.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Reason(errs.ErrUserNotFound, "user %d not found", id)
	}
	return nil
}

func translateNotFound(err error, sentinel error, format string, args ...any) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Reason(sentinel, format, args...)
	}
	return err
}

var domainRejections = []error{
	errs.ErrUserNotFound,
	errs.ErrItemNotFound,
	errs.ErrBookingNotFound,
	errs.ErrItemUnavailable,
	errs.ErrIncorrectDate,
	errs.ErrIncorrectBooking,
	errs.ErrSelfBookingRejected,
	errs.ErrEmptyComment,
	errs.ErrDomainValidation,
}

func isDomainRejection(err error) bool {
	for _, s := range domainRejections {
		if errs.Is(err, s) {
			return true
		}
	}
	return false
}
