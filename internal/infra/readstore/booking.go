package readstore

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: dbtx, logger: logger}
}

type bookingRow struct {
	ID            int64
	StartAt       pgtype.Timestamptz
	EndAt         pgtype.Timestamptz
	State         string
	ItemID        int64
	ItemName      string
	ItemOwnerID   int64
	ItemAvailable bool
	BookerID      int64
	BookerName    string
}

func bookingSelect() *goqu.SelectDataset {
	return db.Dialect.From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			"b.id", "b.start_at", "b.end_at", "b.state",
			"i.id", "i.name", "i.owner_id", "i.available",
			"u.id", "u.name",
		)
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	sql, args, err := db.Build(bookingSelect().Where(goqu.I("b.id").Eq(id)))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking lookup", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to find booking", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[bookingRow])
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to find booking", err)
	}
	view, err := toBookingView(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read booking", err)
	}
	return view, nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	sql, args, err := buildListQuery(filter)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking list", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to list bookings", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[bookingRow])
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to scan bookings", err)
	}

	views := make([]*queries.BookingView, 0, len(collected))
	for _, row := range collected {
		view, err := toBookingView(row)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read booking", err)
		}
		views = append(views, view)
	}
	return views, nil
}

// LatestCompleted returns the non-rejected booking of the item with the
// greatest end before now, or nil.
func (r *BookingReadStore) LatestCompleted(ctx context.Context, itemID int64, now time.Time) (*queries.BookingShort, error) {
	sql, args, err := db.Build(db.Dialect.From(goqu.T("bookings").As("b")).
		Select("b.id", "b.booker_id").
		Where(
			goqu.I("b.item_id").Eq(itemID),
			goqu.I("b.end_at").Lt(now),
			goqu.I("b.state").Neq(string(booking.StatusRejected)),
		).
		Order(goqu.I("b.end_at").Desc(), goqu.I("b.id").Desc()).
		Limit(1))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build completed booking lookup", err)
	}

	var short queries.BookingShort
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&short.ID, &short.BookerID); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.TranslatePgErr(r.logger, "failed to find completed booking", err)
	}
	return &short, nil
}

func buildListQuery(f queries.BookingFilter) (string, []any, error) {
	where := []exp.Expression{roleCondition(f.Role, f.UserID)}
	if c := categoryCondition(f.Category, f.Now); c != nil {
		where = append(where, c)
	}

	ds := bookingSelect().
		Where(where...).
		Order(goqu.I("b.start_at").Desc(), goqu.I("b.id").Asc())
	if f.Window.Paged() {
		ds = ds.Limit(uint(f.Window.Limit())).Offset(uint(f.Window.Offset()))
	}
	return db.Build(ds)
}

func roleCondition(role booking.Role, userID int64) exp.Expression {
	if role == booking.RoleOwner {
		return goqu.I("i.owner_id").Eq(userID)
	}
	return goqu.I("b.booker_id").Eq(userID)
}

// categoryCondition mirrors booking.Category.Matches in SQL.
func categoryCondition(c booking.Category, now time.Time) exp.Expression {
	switch c {
	case booking.CategoryCurrent:
		return goqu.And(goqu.I("b.start_at").Lte(now), goqu.I("b.end_at").Gte(now))
	case booking.CategoryPast:
		return goqu.I("b.end_at").Lt(now)
	case booking.CategoryFuture:
		return goqu.I("b.end_at").Gt(now)
	case booking.CategoryWaiting:
		return goqu.I("b.state").Eq(string(booking.StatusWaiting))
	case booking.CategoryRejected:
		return goqu.I("b.state").Eq(string(booking.StatusRejected))
	default:
		return nil
	}
}

func toBookingView(row bookingRow) (*queries.BookingView, error) {
	status := booking.Status(row.State)
	if !status.Valid() {
		return nil, errs.Newf("booking %d has unknown state %q", row.ID, row.State)
	}
	return &queries.BookingView{
		ID:            row.ID,
		Start:         pgconv.TimeFromPgtype(row.StartAt),
		End:           pgconv.TimeFromPgtype(row.EndAt),
		Status:        status,
		Item:          queries.ItemRef{ID: row.ItemID, Name: row.ItemName},
		Booker:        queries.UserRef{ID: row.BookerID, Name: row.BookerName},
		ItemOwnerID:   row.ItemOwnerID,
		ItemAvailable: row.ItemAvailable,
	}, nil
}
