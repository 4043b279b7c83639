//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/ptr"
	"shareit/internal/usecase/queries"
	queriesmock "shareit/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type itemQueryDeps struct {
	items    *queriesmock.MockItemReadStore
	comments *queriesmock.MockCommentReadStore
	users    *queriesmock.MockUserReadStore
	q        queries.ItemQueries
}

func newItemQueryDeps(t *testing.T) itemQueryDeps {
	ctrl := gomock.NewController(t)
	d := itemQueryDeps{
		items:    queriesmock.NewMockItemReadStore(ctrl),
		comments: queriesmock.NewMockCommentReadStore(ctrl),
		users:    queriesmock.NewMockUserReadStore(ctrl),
	}
	d.q = queries.NewItemQueries(d.items, d.comments, d.users, clock.NewMockClock(now), discardLogger())
	return d
}

func drill() *queries.ItemView {
	return &queries.ItemView{ID: 10, OwnerID: ownerID, Name: "Drill", Description: "Cordless", Available: true}
}

var (
	drillComments = []*queries.CommentView{
		{ID: 1, Text: "works", AuthorName: "Booker", Created: now.Add(-time.Hour)},
	}
	drillNeighbours = map[int64]queries.Enrichment{
		10: {
			Last: &queries.BookingShort{ID: 4, BookerID: bookerID},
			Next: &queries.BookingShort{ID: 6, BookerID: strangerID},
		},
	}
)

func TestItemQueries_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("success: owner sees comments and neighbouring bookings", func(t *testing.T) {
		d := newItemQueryDeps(t)
		d.users.EXPECT().Exists(gomock.Any(), ownerID).Return(true, nil)
		d.items.EXPECT().FindByID(gomock.Any(), int64(10)).Return(drill(), nil)
		d.comments.EXPECT().ListByItem(gomock.Any(), int64(10)).Return(drillComments, nil)
		d.items.EXPECT().Enrich(gomock.Any(), []int64{10}, now).Return(drillNeighbours, nil)

		got, err := d.q.Get(ctx, ownerID, 10)
		require.NoError(t, err)

		want := drill()
		want.Comments = drillComments
		want.LastBooking = &queries.BookingShort{ID: 4, BookerID: bookerID}
		want.NextBooking = &queries.BookingShort{ID: 6, BookerID: strangerID}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("item view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("success: other users get no booking data", func(t *testing.T) {
		d := newItemQueryDeps(t)
		d.users.EXPECT().Exists(gomock.Any(), bookerID).Return(true, nil)
		d.items.EXPECT().FindByID(gomock.Any(), int64(10)).Return(drill(), nil)
		d.comments.EXPECT().ListByItem(gomock.Any(), int64(10)).Return(drillComments, nil)

		got, err := d.q.Get(ctx, bookerID, 10)
		require.NoError(t, err)

		assert.Nil(t, got.LastBooking)
		assert.Nil(t, got.NextBooking)
		assert.Len(t, got.Comments, 1)
	})

	t.Run("error: unknown viewer", func(t *testing.T) {
		d := newItemQueryDeps(t)
		d.users.EXPECT().Exists(gomock.Any(), int64(99)).Return(false, nil)

		_, err := d.q.Get(ctx, 99, 10)

		assert.True(t, errs.Is(err, errs.ErrUserNotFound))
	})

	t.Run("error: unknown item", func(t *testing.T) {
		d := newItemQueryDeps(t)
		d.users.EXPECT().Exists(gomock.Any(), ownerID).Return(true, nil)
		d.items.EXPECT().FindByID(gomock.Any(), int64(10)).Return(nil, infra.RepositoryError{Kind: infra.KindNotFound})

		_, err := d.q.Get(ctx, ownerID, 10)

		assert.True(t, errs.Is(err, errs.ErrItemNotFound))
	})
}

func TestItemQueries_ListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("success: every item is enriched", func(t *testing.T) {
		d := newItemQueryDeps(t)
		other := &queries.ItemView{ID: 11, OwnerID: ownerID, Name: "Ladder", Available: true}
		d.users.EXPECT().Exists(gomock.Any(), ownerID).Return(true, nil)
		d.items.EXPECT().ListByOwner(gomock.Any(), ownerID, queries.Unpaged).Return([]*queries.ItemView{drill(), other}, nil)
		d.items.EXPECT().Enrich(gomock.Any(), []int64{10, 11}, now).Return(drillNeighbours, nil)

		got, err := d.q.ListByOwner(ctx, ownerID, nil, nil)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, int64(4), got[0].LastBooking.ID)
		assert.Equal(t, int64(6), got[0].NextBooking.ID)
		assert.Nil(t, got[1].LastBooking)
		assert.Nil(t, got[1].NextBooking)
	})

	t.Run("success: no items skips enrichment", func(t *testing.T) {
		d := newItemQueryDeps(t)
		d.users.EXPECT().Exists(gomock.Any(), ownerID).Return(true, nil)
		d.items.EXPECT().ListByOwner(gomock.Any(), ownerID, gomock.Any()).Return(nil, nil)

		got, err := d.q.ListByOwner(ctx, ownerID, ptr.Of(0), ptr.Of(5))

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("error: invalid window", func(t *testing.T) {
		d := newItemQueryDeps(t)
		d.users.EXPECT().Exists(gomock.Any(), ownerID).Return(true, nil)

		_, err := d.q.ListByOwner(ctx, ownerID, ptr.Of(0), ptr.Of(0))

		assert.True(t, errs.Is(err, errs.ErrPaginationInvalid))
	})
}
