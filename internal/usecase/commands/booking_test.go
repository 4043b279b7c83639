//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/shared"
	sharedmock "shareit/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	ownerID  int64 = 1
	bookerID int64 = 2
	itemID   int64 = 10
)

var base = time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)

type deps struct {
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	reads    *sharedmock.MockCommandReads
	bookings *sharedmock.MockBookingRepository
	comments *sharedmock.MockCommentRepository
}

// newDeps wires a unit of work whose Within runs fn once against the mocked tx.
func newDeps(t *testing.T) deps {
	ctrl := gomock.NewController(t)
	d := deps{
		uow:      sharedmock.NewMockUnitOfWork(ctrl),
		tx:       sharedmock.NewMockTx(ctrl),
		reads:    sharedmock.NewMockCommandReads(ctrl),
		bookings: sharedmock.NewMockBookingRepository(ctrl),
		comments: sharedmock.NewMockCommentRepository(ctrl),
	}
	d.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, d.tx)
		}).AnyTimes()
	d.tx.EXPECT().Reads().Return(d.reads).AnyTimes()
	d.tx.EXPECT().Bookings().Return(d.bookings).AnyTimes()
	d.tx.EXPECT().Comments().Return(d.comments).AnyTimes()
	d.tx.EXPECT().DB().Return(nil).AnyTimes()
	return d
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var notFound = infra.RepositoryError{Kind: infra.KindNotFound}

// =============================================================================
// Create
// =============================================================================

func TestBookingUseCase_Create(t *testing.T) {
	ctx := context.Background()
	validReq := commands.CreateBookingRequest{ItemID: itemID, Start: base, End: base.Add(24 * time.Hour)}
	availableItem := &shared.ItemSnapshot{ID: itemID, OwnerID: ownerID, Available: true}

	testCases := []struct {
		name      string
		bookerID  int64
		req       commands.CreateBookingRequest
		setup     func(d deps)
		expectErr error
		expectID  int64
	}{
		{
			name:     "success: waiting booking is stored",
			bookerID: bookerID,
			req:      validReq,
			setup: func(d deps) {
				d.reads.EXPECT().UserExists(gomock.Any(), bookerID).Return(true, nil)
				d.reads.EXPECT().ItemForShare(gomock.Any(), itemID).Return(availableItem, nil)
				d.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ db.DBTX, b *booking.Booking) (int64, error) {
						assert.Equal(t, booking.StatusWaiting, b.Status())
						assert.Equal(t, bookerID, b.BookerID())
						assert.Equal(t, itemID, b.ItemID())
						return 7, nil
					})
			},
			expectID: 7,
		},
		{
			name:     "error: unknown booker is checked before the item",
			bookerID: 99,
			req:      validReq,
			setup: func(d deps) {
				d.reads.EXPECT().UserExists(gomock.Any(), int64(99)).Return(false, nil)
			},
			expectErr: errs.ErrUserNotFound,
		},
		{
			name:     "error: unknown item",
			bookerID: bookerID,
			req:      validReq,
			setup: func(d deps) {
				d.reads.EXPECT().UserExists(gomock.Any(), bookerID).Return(true, nil)
				d.reads.EXPECT().ItemForShare(gomock.Any(), itemID).Return(nil, notFound)
			},
			expectErr: errs.ErrItemNotFound,
		},
		{
			name:     "error: dates are checked before availability",
			bookerID: bookerID,
			req:      commands.CreateBookingRequest{ItemID: itemID, Start: base, End: base},
			setup: func(d deps) {
				d.reads.EXPECT().UserExists(gomock.Any(), bookerID).Return(true, nil)
				d.reads.EXPECT().ItemForShare(gomock.Any(), itemID).
					Return(&shared.ItemSnapshot{ID: itemID, OwnerID: ownerID, Available: false}, nil)
			},
			expectErr: errs.ErrIncorrectDate,
		},
		{
			name:     "error: unavailable item",
			bookerID: bookerID,
			req:      validReq,
			setup: func(d deps) {
				d.reads.EXPECT().UserExists(gomock.Any(), bookerID).Return(true, nil)
				d.reads.EXPECT().ItemForShare(gomock.Any(), itemID).
					Return(&shared.ItemSnapshot{ID: itemID, OwnerID: ownerID, Available: false}, nil)
			},
			expectErr: errs.ErrItemUnavailable,
		},
		{
			name:     "error: owner cannot book own item",
			bookerID: ownerID,
			req:      validReq,
			setup: func(d deps) {
				d.reads.EXPECT().UserExists(gomock.Any(), ownerID).Return(true, nil)
				d.reads.EXPECT().ItemForShare(gomock.Any(), itemID).Return(availableItem, nil)
			},
			expectErr: errs.ErrSelfBookingRejected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDeps(t)
			tc.setup(d)
			uc := commands.NewBookingUseCase(d.uow, booking.NewStickyApprovalPolicy(), discardLogger())

			result, err := uc.Create(ctx, tc.bookerID, tc.req)

			if tc.expectErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectErr), "expected %v, got %v", tc.expectErr, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectID, result.BookingID)
		})
	}
}

func TestBookingUseCase_Create_RepositoryFailure(t *testing.T) {
	d := newDeps(t)
	dbErr := infra.RepositoryError{Kind: infra.KindDBFailure}
	d.reads.EXPECT().UserExists(gomock.Any(), bookerID).Return(true, nil)
	d.reads.EXPECT().ItemForShare(gomock.Any(), itemID).
		Return(&shared.ItemSnapshot{ID: itemID, OwnerID: ownerID, Available: true}, nil)
	d.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), dbErr)

	uc := commands.NewBookingUseCase(d.uow, booking.NewStickyApprovalPolicy(), discardLogger())
	_, err := uc.Create(context.Background(), bookerID,
		commands.CreateBookingRequest{ItemID: itemID, Start: base, End: base.Add(time.Hour)})

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

// =============================================================================
// Decide
// =============================================================================

func snapshot(status booking.Status) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:            5,
		ItemID:        itemID,
		BookerID:      bookerID,
		Start:         base,
		End:           base.Add(time.Hour),
		Status:        status,
		ItemOwnerID:   ownerID,
		ItemAvailable: true,
	}
}

func TestBookingUseCase_Decide(t *testing.T) {
	ctx := context.Background()
	blocked := []booking.Status{booking.StatusApproved}

	testCases := []struct {
		name         string
		actorID      int64
		approve      bool
		setup        func(d deps)
		expectErr    error
		expectStatus booking.Status
	}{
		{
			name:    "success: owner approves a waiting booking",
			actorID: ownerID,
			approve: true,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusWaiting), nil)
				d.reads.EXPECT().UserExists(gomock.Any(), ownerID).Return(true, nil)
				d.bookings.EXPECT().TransitionState(gomock.Any(), gomock.Any(), int64(5), booking.StatusApproved, blocked).Return(true, nil)
			},
			expectStatus: booking.StatusApproved,
		},
		{
			name:    "success: owner rejects a waiting booking",
			actorID: ownerID,
			approve: false,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusWaiting), nil)
				d.reads.EXPECT().UserExists(gomock.Any(), ownerID).Return(true, nil)
				d.bookings.EXPECT().TransitionState(gomock.Any(), gomock.Any(), int64(5), booking.StatusRejected, blocked).Return(true, nil)
			},
			expectStatus: booking.StatusRejected,
		},
		{
			name:    "success: a rejected booking can still be approved",
			actorID: ownerID,
			approve: true,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusRejected), nil)
				d.reads.EXPECT().UserExists(gomock.Any(), ownerID).Return(true, nil)
				d.bookings.EXPECT().TransitionState(gomock.Any(), gomock.Any(), int64(5), booking.StatusApproved, blocked).Return(true, nil)
			},
			expectStatus: booking.StatusApproved,
		},
		{
			name:    "error: unknown booking",
			actorID: ownerID,
			approve: true,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(nil, notFound)
			},
			expectErr: errs.ErrBookingNotFound,
		},
		{
			name:    "error: unknown actor",
			actorID: 99,
			approve: true,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusWaiting), nil)
				d.reads.EXPECT().UserExists(gomock.Any(), int64(99)).Return(false, nil)
			},
			expectErr: errs.ErrUserNotFound,
		},
		{
			name:    "error: booker cannot decide",
			actorID: bookerID,
			approve: true,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusWaiting), nil)
				d.reads.EXPECT().UserExists(gomock.Any(), bookerID).Return(true, nil)
			},
			expectErr: errs.ErrBookingNotFound,
		},
		{
			name:    "error: approved booking is final",
			actorID: ownerID,
			approve: false,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusApproved), nil)
				d.reads.EXPECT().UserExists(gomock.Any(), ownerID).Return(true, nil)
			},
			expectErr: errs.ErrIncorrectBooking,
		},
		{
			name:    "error: concurrent decision wins the update",
			actorID: ownerID,
			approve: true,
			setup: func(d deps) {
				d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusWaiting), nil)
				d.reads.EXPECT().UserExists(gomock.Any(), ownerID).Return(true, nil)
				d.bookings.EXPECT().TransitionState(gomock.Any(), gomock.Any(), int64(5), booking.StatusApproved, blocked).Return(false, nil)
			},
			expectErr: errs.ErrIncorrectBooking,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDeps(t)
			tc.setup(d)
			uc := commands.NewBookingUseCase(d.uow, booking.NewStickyApprovalPolicy(), discardLogger())

			result, err := uc.Decide(ctx, tc.actorID, 5, tc.approve)

			if tc.expectErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectErr), "expected %v, got %v", tc.expectErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), result.BookingID)
			assert.Equal(t, tc.expectStatus, result.Status)
		})
	}
}

func TestBookingUseCase_Decide_NonOwnerIsAccessDenied(t *testing.T) {
	d := newDeps(t)
	d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusWaiting), nil)
	d.reads.EXPECT().UserExists(gomock.Any(), int64(3)).Return(true, nil)

	uc := commands.NewBookingUseCase(d.uow, booking.NewStickyApprovalPolicy(), discardLogger())
	_, err := uc.Decide(context.Background(), 3, 5, true)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrBookingNotFound))
	assert.True(t, errs.Is(err, errs.ErrBookingAccessDenied))
}

func TestBookingUseCase_Decide_TerminalPolicyBlocksRejected(t *testing.T) {
	d := newDeps(t)
	d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(snapshot(booking.StatusRejected), nil)
	d.reads.EXPECT().UserExists(gomock.Any(), ownerID).Return(true, nil)

	uc := commands.NewBookingUseCase(d.uow, booking.TerminalDecisionPolicy{}, discardLogger())
	_, err := uc.Decide(context.Background(), ownerID, 5, true)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrIncorrectBooking))
}

func TestBookingUseCase_Decide_StoreFailurePropagates(t *testing.T) {
	d := newDeps(t)
	storeErr := errors.New("connection reset")
	d.reads.EXPECT().BookingByID(gomock.Any(), int64(5)).Return(nil, storeErr)

	uc := commands.NewBookingUseCase(d.uow, booking.NewStickyApprovalPolicy(), discardLogger())
	_, err := uc.Decide(context.Background(), ownerID, 5, true)

	require.ErrorIs(t, err, storeErr)
	assert.False(t, errs.Is(err, errs.ErrBookingNotFound))
}
