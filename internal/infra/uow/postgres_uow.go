package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shareit/internal/domain/comment"
	"shareit/internal/infra/db"
	"shareit/internal/infra/readstore"
	"shareit/internal/infra/repository"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		logger: logger,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes.
// Conflicting decisions are resolved by conditional updates, not retries.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		// context.WithoutCancel keeps rollback working after a request deadline
		if rollbackErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, newPgTx(pgxTx, u.logger)); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

type pgTx struct {
	dbtx   db.DBTX
	logger *slog.Logger

	// Lazy-initialized repositories
	bookingRepo  shared.BookingRepository
	commentRepo  shared.CommentRepository
	commandReads shared.CommandReads
}

func newPgTx(dbtx db.DBTX, logger *slog.Logger) *pgTx {
	return &pgTx{dbtx: dbtx, logger: logger}
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.logger)
	}
	return t.bookingRepo
}

func (t *pgTx) Comments() shared.CommentRepository {
	if t.commentRepo == nil {
		t.commentRepo = repository.NewCommentRepository(t.logger)
	}
	return t.commentRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.dbtx, t.logger)
	}
	return t.commandReads
}

type commandReads struct {
	users    *readstore.UserReadStore
	items    *readstore.ItemReadStore
	bookings *readstore.BookingReadStore
}

func newCommandReads(dbtx db.DBTX, logger *slog.Logger) *commandReads {
	return &commandReads{
		users:    readstore.NewUserReadStore(dbtx, logger),
		items:    readstore.NewItemReadStore(dbtx, logger),
		bookings: readstore.NewBookingReadStore(dbtx, logger),
	}
}

func (r *commandReads) UserExists(ctx context.Context, id int64) (bool, error) {
	return r.users.Exists(ctx, id)
}

func (r *commandReads) UserByID(ctx context.Context, id int64) (*shared.UserSnapshot, error) {
	u, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.UserSnapshot{ID: u.ID, Name: u.Name}, nil
}

func (r *commandReads) ItemForShare(ctx context.Context, id int64) (*shared.ItemSnapshot, error) {
	item, err := r.items.ForShare(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.ItemSnapshot{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		Available: item.Available,
	}, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id int64) (*shared.BookingSnapshot, error) {
	v, err := r.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.BookingSnapshot{
		ID:            v.ID,
		ItemID:        v.Item.ID,
		BookerID:      v.Booker.ID,
		Start:         v.Start,
		End:           v.End,
		Status:        v.Status,
		ItemOwnerID:   v.ItemOwnerID,
		ItemAvailable: v.ItemAvailable,
	}, nil
}

func (r *commandReads) LatestCompletedBooking(ctx context.Context, itemID int64, now time.Time) (*comment.CompletedBooking, error) {
	short, err := r.bookings.LatestCompleted(ctx, itemID, now)
	if err != nil || short == nil {
		return nil, err
	}
	return &comment.CompletedBooking{ID: short.ID, BookerID: short.BookerID}, nil
}
