package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// SharerHeader carries the id of the already authenticated caller.
const SharerHeader = "X-Sharer-User-Id"

const ctxUserIDKey = "user_id"

var errMissingSharer = errs.New("sharer user id header missing or malformed")

// RequireSharer reads the caller id from SharerHeader and stores it in the context.
func RequireSharer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(SharerHeader))
		id, err := strconv.ParseInt(raw, 10, 64)
		if raw == "" || err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingSharer,
				"Required header "+SharerHeader+" is missing or not a number", nil)
			return
		}
		c.Set(ctxUserIDKey, id)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
