package readstore

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
)

type ItemReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewItemReadStore(dbtx db.DBTX, logger *slog.Logger) *ItemReadStore {
	return &ItemReadStore{db: dbtx, logger: logger}
}

type itemRow struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
}

func itemSelect() *goqu.SelectDataset {
	return db.Dialect.From("items").Select("id", "owner_id", "name", "description", "available")
}

func (r *ItemReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	return r.findOne(ctx, itemSelect().Where(goqu.C("id").Eq(id)))
}

// ForShare reads the item and holds a share lock on its row until the
// surrounding transaction ends. Outside a transaction the lock is released
// immediately.
func (r *ItemReadStore) ForShare(ctx context.Context, id int64) (*queries.ItemView, error) {
	return r.findOne(ctx, itemSelect().Where(goqu.C("id").Eq(id)).ForShare(exp.Wait))
}

func (r *ItemReadStore) findOne(ctx context.Context, ds *goqu.SelectDataset) (*queries.ItemView, error) {
	sql, args, err := db.Build(ds)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build item lookup", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to find item", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[itemRow])
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to find item", err)
	}
	return toItemView(row), nil
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID int64, window queries.Window) ([]*queries.ItemView, error) {
	ds := itemSelect().Where(goqu.C("owner_id").Eq(ownerID)).Order(goqu.C("id").Asc())
	if window.Paged() {
		ds = ds.Limit(uint(window.Limit())).Offset(uint(window.Offset()))
	}
	sql, args, err := db.Build(ds)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build item list", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to list items", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[itemRow])
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to scan items", err)
	}

	views := make([]*queries.ItemView, 0, len(collected))
	for _, row := range collected {
		views = append(views, toItemView(row))
	}
	return views, nil
}

type neighbourRow struct {
	ItemID   int64
	ID       int64
	BookerID int64
}

func (r *ItemReadStore) Enrich(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]queries.Enrichment, error) {
	out := make(map[int64]queries.Enrichment, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	last, err := r.neighbours(ctx, lastBookingsQuery(itemIDs, now))
	if err != nil {
		return nil, err
	}
	next, err := r.neighbours(ctx, nextBookingsQuery(itemIDs, now))
	if err != nil {
		return nil, err
	}

	for _, row := range last {
		e := out[row.ItemID]
		e.Last = &queries.BookingShort{ID: row.ID, BookerID: row.BookerID}
		out[row.ItemID] = e
	}
	for _, row := range next {
		e := out[row.ItemID]
		e.Next = &queries.BookingShort{ID: row.ID, BookerID: row.BookerID}
		out[row.ItemID] = e
	}
	return out, nil
}

func (r *ItemReadStore) neighbours(ctx context.Context, ds *goqu.SelectDataset) ([]neighbourRow, error) {
	sql, args, err := db.Build(ds)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build enrichment query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to load item bookings", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[neighbourRow])
	if err != nil {
		return nil, infra.TranslatePgErr(r.logger, "failed to scan item bookings", err)
	}
	return collected, nil
}

func neighbourSelect(itemIDs []int64, startBoundary exp.Expression) *goqu.SelectDataset {
	return db.Dialect.From(goqu.T("bookings").As("b")).
		Select("b.item_id", "b.id", "b.booker_id").
		Distinct(goqu.I("b.item_id")).
		Where(
			goqu.I("b.item_id").In(itemIDs),
			goqu.I("b.state").Neq(string(booking.StatusRejected)),
			startBoundary,
		)
}

// lastBookingsQuery picks, per item, the latest start before now.
func lastBookingsQuery(itemIDs []int64, now time.Time) *goqu.SelectDataset {
	return neighbourSelect(itemIDs, goqu.I("b.start_at").Lt(now)).
		Order(goqu.I("b.item_id").Asc(), goqu.I("b.start_at").Desc(), goqu.I("b.id").Desc())
}

// nextBookingsQuery picks, per item, the earliest start after now.
func nextBookingsQuery(itemIDs []int64, now time.Time) *goqu.SelectDataset {
	return neighbourSelect(itemIDs, goqu.I("b.start_at").Gt(now)).
		Order(goqu.I("b.item_id").Asc(), goqu.I("b.start_at").Asc(), goqu.I("b.id").Asc())
}

func toItemView(row itemRow) *queries.ItemView {
	return &queries.ItemView{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Description: row.Description,
		Available:   row.Available,
	}
}
