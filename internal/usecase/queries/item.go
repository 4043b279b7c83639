package queries

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

type ItemReadStore interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
	// ListByOwner orders items by id.
	ListByOwner(ctx context.Context, ownerID int64, window Window) ([]*ItemView, error)
	// Enrich returns an entry for every item that has a last or next booking.
	Enrich(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]Enrichment, error)
}

type CommentReadStore interface {
	// ListByItem returns comments oldest first.
	ListByItem(ctx context.Context, itemID int64) ([]*CommentView, error)
}

type ItemQueries interface {
	// Get shows last/next bookings only to the item owner.
	Get(ctx context.Context, viewerID, itemID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size *int) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	items    ItemReadStore
	comments CommentReadStore
	users    UserReadStore
	clock    clock.Clock
	logger   *slog.Logger
}

func NewItemQueries(items ItemReadStore, comments CommentReadStore, users UserReadStore, clk clock.Clock, logger *slog.Logger) ItemQueries {
	return &itemQueriesImpl{
		items:    items,
		comments: comments,
		users:    users,
		clock:    clk,
		logger:   logger,
	}
}

func (q *itemQueriesImpl) Get(ctx context.Context, viewerID, itemID int64) (*ItemView, error) {
	if err := requireUser(ctx, q.users, viewerID); err != nil {
		return nil, err
	}
	item, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Reason(errs.ErrItemNotFound, "item %d not found", itemID)
		}
		return nil, err
	}

	comments, err := q.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Comments = comments

	if item.OwnerID == viewerID {
		if err := q.enrich(ctx, []*ItemView{item}); err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID int64, from, size *int) ([]*ItemView, error) {
	if err := requireUser(ctx, q.users, ownerID); err != nil {
		return nil, err
	}
	window, err := NewWindow(from, size)
	if err != nil {
		return nil, err
	}

	items, err := q.items.ListByOwner(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}
	if err := q.enrich(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *itemQueriesImpl) enrich(ctx context.Context, items []*ItemView) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	found, err := q.items.Enrich(ctx, ids, q.clock.Now())
	if err != nil {
		return err
	}
	for _, it := range items {
		e := found[it.ID]
		it.LastBooking = e.Last
		it.NextBooking = e.Next
	}
	q.logger.DebugContext(ctx, "items enriched", slog.Int("items", len(items)), slog.Int("with_bookings", len(found)))
	return nil
}
