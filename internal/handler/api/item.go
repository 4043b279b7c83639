package api

import (
	"net/http"
	"time"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	comments commands.CommentCommands
	q        queries.ItemQueries
	loc      *time.Location
}

func NewItemHandler(comments commands.CommentCommands, q queries.ItemQueries, loc *time.Location) *ItemHandler {
	return &ItemHandler{comments: comments, q: q, loc: loc}
}

// @Summary Get item
// @Description Item with comments; the owner also sees the last and next bookings
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	viewerID, ok := userID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), viewerID, itemID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view, h.loc))
}

// @Summary List own items
// @Description Items owned by the caller with their last and next bookings
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param from query int false "Index of the first element"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	ownerID, ok := userID(c)
	if !ok {
		return
	}
	from, size, ok := window(c)
	if !ok {
		return
	}
	views, err := h.q.ListByOwner(c.Request.Context(), ownerID, from, size)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemViews(views, h.loc))
}

// @Summary Comment on item
// @Description Allowed after the caller's booking of the item has ended
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item ID"
// @Param request body reqdto.PostCommentRequest true "Comment"
// @Success 200 {object} resdto.CommentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/comment [post]
func (h *ItemHandler) PostComment(c *gin.Context) {
	authorID, ok := userID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	cmd, err := req.ToCommand(itemID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.comments.Post(c.Request.Context(), authorID, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCommentView(view, h.loc))
}
