package httperr

import (
	"net/http"

	"shareit/internal/pkg/errs"
)

const internalMessage = "Internal server error"

type mapping struct {
	sentinel error
	status   int
}

// Order matters: access denial carries the not-found mark too, so it is checked first.
var mappings = []mapping{
	{errs.ErrUserNotFound, http.StatusNotFound},
	{errs.ErrItemNotFound, http.StatusNotFound},
	{errs.ErrBookingNotFound, http.StatusNotFound},
	{errs.ErrSelfBookingRejected, http.StatusNotFound},

	{errs.ErrItemUnavailable, http.StatusBadRequest},
	{errs.ErrIncorrectDate, http.StatusBadRequest},
	{errs.ErrIncorrectBooking, http.StatusBadRequest},
	{errs.ErrIncorrectStatus, http.StatusBadRequest},
	{errs.ErrPaginationInvalid, http.StatusBadRequest},
	{errs.ErrEmptyComment, http.StatusBadRequest},
	{errs.ErrDomainValidation, http.StatusBadRequest},
}

// FromError returns the HTTP status and public message for err.
// Unknown errors become a 500 with a generic message.
func FromError(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	if errs.Is(err, errs.ErrBookingAccessDenied) {
		return http.StatusNotFound, errs.ErrBookingNotFound.Error()
	}
	for _, m := range mappings {
		if errs.Is(err, m.sentinel) {
			return m.status, err.Error()
		}
	}
	return http.StatusInternalServerError, internalMessage
}
