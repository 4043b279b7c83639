package api

import (
	"net/http"
	"strconv"
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
	loc  *time.Location
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, loc *time.Location) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, loc: loc}
}

// @Summary Create booking
// @Description Book an available item of another user for a period
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	bookerID, ok := userID(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(h.loc)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), bookerID, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.render(c, result.BookingID)
}

// @Summary Approve or reject booking
// @Description The item owner decides a booking
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Booking ID"
// @Param approved query bool true "Approve when true, reject when false"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Decide(c *gin.Context) {
	actorID, ok := userID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	approve, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Query parameter approved must be true or false", nil)
		return
	}

	result, err := h.cmds.Decide(c.Request.Context(), actorID, bookingID, approve)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.render(c, result.BookingID)
}

// @Summary Get booking
// @Description Visible to the booker and the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	viewerID, ok := userID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), viewerID, bookingID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view, h.loc))
}

// @Summary List own bookings
// @Description Bookings made by the caller, newest start first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Index of the first element"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	h.list(c, booking.RoleBooker)
}

// @Summary List bookings of owned items
// @Description Bookings of items owned by the caller, newest start first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Param from query int false "Index of the first element"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/owner [get]
func (h *BookingHandler) ListOwner(c *gin.Context) {
	h.list(c, booking.RoleOwner)
}

func (h *BookingHandler) list(c *gin.Context, role booking.Role) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	from, size, ok := window(c)
	if !ok {
		return
	}
	state := c.DefaultQuery("state", string(booking.CategoryAll))

	views, err := h.q.List(c.Request.Context(), uid, role, state, from, size)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views, h.loc))
}

func (h *BookingHandler) render(c *gin.Context, bookingID int64) {
	view, err := h.q.Load(c.Request.Context(), bookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view, h.loc))
}

func window(c *gin.Context) (from, size *int, ok bool) {
	from, err := reqdto.OptionalInt("from", c.Query("from"))
	if err != nil {
		httperr.Abort(c, err)
		return nil, nil, false
	}
	size, err = reqdto.OptionalInt("size", c.Query("size"))
	if err != nil {
		httperr.Abort(c, err)
		return nil, nil, false
	}
	return from, size, true
}
