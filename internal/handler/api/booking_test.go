//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/handler/api"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/ptr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/builder"
	"shareit/tests/common/httptest"
	"shareit/tests/common/testutil"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	ownerID  int64 = 1
	bookerID int64 = 2
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, time.UTC)

	bookings := s.router.Group("/bookings", middleware.RequireSharer())
	bookings.POST("", s.handler.Create)
	bookings.GET("", s.handler.List)
	bookings.GET("/owner", s.handler.ListOwner)
	bookings.GET("/:id", s.handler.Get)
	bookings.PATCH("/:id", s.handler.Decide)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

type errorCase struct {
	name           string
	err            error
	expectedStatus int
	expectedMsg    string
}

var usecaseErrorCases = []errorCase{
	{name: "item not found", err: errs.Reason(errs.ErrItemNotFound, "item 10 not found"), expectedStatus: http.StatusNotFound, expectedMsg: "item 10 not found"},
	{name: "self booking", err: errs.Reason(errs.ErrSelfBookingRejected, "user 1 owns item 10"), expectedStatus: http.StatusNotFound, expectedMsg: "owns item"},
	{name: "unavailable", err: errs.Reason(errs.ErrItemUnavailable, "item 10 is not available"), expectedStatus: http.StatusBadRequest, expectedMsg: "not available"},
	{name: "incorrect date", err: errs.Reason(errs.ErrIncorrectDate, "end must be after start"), expectedStatus: http.StatusBadRequest, expectedMsg: "end must be after start"},
	{name: "unexpected", err: errors.New("connection refused"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	s.Run("success: returns the stored booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), bookerID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, req commands.CreateBookingRequest) (*commands.CreateBookingResult, error) {
				s.Equal(b.ItemID, req.ItemID)
				s.True(req.Start.Equal(b.Start))
				s.True(req.End.Equal(b.End))
				return &commands.CreateBookingResult{BookingID: b.ID}, nil
			})
		s.mockQueries.EXPECT().Load(gomock.Any(), b.ID).Return(returnView, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bookerID)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID, body.ID)
		s.Equal("WAITING", body.Status)
		s.Equal(bookerID, body.Booker.ID)
		s.Equal("Drill", body.Item.Name)
		s.True(body.Start.Equal(b.Start))
	})

	s.Run("success: offset timestamps are converted to UTC", func() {
		body := testutil.DtoMap(s.T(), reqBody,
			testutil.Field("start", "2030-05-01T12:00:00+02:00"),
			testutil.Field("end", "2030-05-02T12:00:00+02:00"))
		s.mockCommands.EXPECT().Create(gomock.Any(), bookerID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, req commands.CreateBookingRequest) (*commands.CreateBookingResult, error) {
				s.True(req.Start.Equal(time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)), "start %s", req.Start)
				return &commands.CreateBookingResult{BookingID: b.ID}, nil
			})
		s.mockQueries.EXPECT().Load(gomock.Any(), b.ID).Return(returnView, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, bookerID)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on malformed input", func() {
		testCases := []testCaseBooking{
			{name: "missing field: itemId", mutate: testutil.Field("itemId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: start", mutate: testutil.Field("start", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: end", mutate: testutil.Field("end", nil), expectCode: http.StatusBadRequest},
			{name: "unparsable start", mutate: testutil.Field("start", "yesterday"), expectCode: http.StatusBadRequest},
			{name: "date only end", mutate: testutil.Field("end", "2030-05-02"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bookerID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 400 Bad Request without the sharer header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, 0)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, middleware.SharerHeader)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		for _, tc := range usecaseErrorCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), bookerID, gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bookerID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDecide
// ================================================================================

func (s *BookingHandlerTestSuite) TestDecide() {
	approved := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Status = booking.StatusApproved
	})

	s.Run("success: owner approves", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), ownerID, approved.ID, true).
			Return(&commands.DecideBookingResult{BookingID: approved.ID, Status: booking.StatusApproved}, nil)
		s.mockQueries.EXPECT().Load(gomock.Any(), approved.ID).Return(approved.BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/5?approved=true", nil, ownerID)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("APPROVED", body.Status)
	})

	s.Run("success: owner rejects", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), ownerID, approved.ID, false).
			Return(&commands.DecideBookingResult{BookingID: approved.ID, Status: booking.StatusRejected}, nil)
		rejected := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Status = booking.StatusRejected })
		s.mockQueries.EXPECT().Load(gomock.Any(), approved.ID).Return(rejected.BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/5?approved=false", nil, ownerID)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("REJECTED", body.Status)
	})

	s.Run("error: 400 Bad Request on bad parameters", func() {
		for _, path := range []string{"/bookings/5", "/bookings/5?approved=maybe", "/bookings/abc?approved=true"} {
			s.Run(path, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, path, nil, ownerID)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: already approved", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), ownerID, int64(5), false).
			Return(nil, errs.Reason(errs.ErrIncorrectBooking, "booking is already APPROVED"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/5?approved=false", nil, ownerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "already APPROVED")
	})

	s.Run("error: non-owner sees a plain not found", func() {
		denied := errs.Mark(errs.Reason(errs.ErrBookingAccessDenied, "user 2 does not own the item of booking 5"), errs.ErrBookingNotFound)
		s.mockCommands.EXPECT().Decide(gomock.Any(), bookerID, int64(5), true).Return(nil, denied)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/5?approved=true", nil, bookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
		s.NotContains(rec.Body.String(), "does not own")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	b := builder.NewBookingBuilder()

	s.Run("success: participant sees the booking", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), bookerID, b.ID).Return(b.BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/5", nil, bookerID)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID, body.ID)
		s.Equal(b.ItemID, body.Item.ID)
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), bookerID, int64(9)).
			Return(nil, errs.Reason(errs.ErrBookingNotFound, "booking 9 not found"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/9", nil, bookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking 9 not found")
	})

	s.Run("error: 400 when the item is unavailable", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), bookerID, b.ID).
			Return(nil, errs.Reason(errs.ErrItemUnavailable, "item of the booking is not available"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/5", nil, bookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "not available")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("success: state defaults to ALL and the window is optional", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), bookerID, booking.RoleBooker, "ALL", nil, nil).
			Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, bookerID)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("success: owner listing passes state and window", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), ownerID, booking.RoleOwner, "FUTURE", ptr.Of(0), ptr.Of(2)).
			Return([]*queries.BookingView{view}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner?state=FUTURE&from=0&size=2", nil, ownerID)

		var body []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("error: non-numeric window", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?from=a&size=2", nil, bookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from must be an integer")
	})

	s.Run("error: unknown state", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), bookerID, booking.RoleBooker, "SOON", nil, nil).
			Return(nil, errs.Reason(errs.ErrIncorrectStatus, "Unknown state: %s", "SOON"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=SOON", nil, bookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown state: SOON")
	})
}
