package repository

import (
	"context"
	"log/slog"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
)

// The state predicate makes the update a compare-and-set: a concurrent
// writer that committed a blocked state first leaves zero rows to update.
const transitionStateSQL = `
UPDATE bookings
   SET state = $2, updated_at = now()
 WHERE id = $1
   AND state <> ALL($3::text[])`

type BookingRepository struct {
	logger *slog.Logger
}

func NewBookingRepository(logger *slog.Logger) *BookingRepository {
	return &BookingRepository{logger: logger}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error) {
	sql, args, err := db.Build(db.Dialect.Insert("bookings").
		Rows(goqu.Record{
			"item_id":   b.ItemID(),
			"booker_id": b.BookerID(),
			"start_at":  b.Start(),
			"end_at":    b.End(),
			"state":     string(b.Status()),
		}).
		Returning("id"))
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, infra.TranslatePgErr(r.logger, "failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) TransitionState(ctx context.Context, tx db.DBTX, id int64, to booking.Status, blocked []booking.Status) (bool, error) {
	states := make([]string, 0, len(blocked))
	for _, s := range blocked {
		states = append(states, string(s))
	}

	tag, err := tx.Exec(ctx, transitionStateSQL, id, string(to), states)
	if err != nil {
		return false, infra.TranslatePgErr(r.logger, "failed to update booking state", err)
	}
	return tag.RowsAffected() == 1, nil
}
