package errs

import "errors"

// Sentinel errors shared by the booking core and its usecases.
var (
	// Lookup errors
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")

	// Booking creation errors
	ErrItemUnavailable     = errors.New("item unavailable")
	ErrIncorrectDate       = errors.New("incorrect date")
	ErrSelfBookingRejected = errors.New("owner cannot book own item")

	// ErrBookingAccessDenied never reaches the wire on its own. It is always
	// marked with ErrBookingNotFound so callers see a plain not-found.
	ErrBookingAccessDenied = errors.New("booking access denied")

	// State and query errors
	ErrIncorrectBooking  = errors.New("incorrect booking")
	ErrIncorrectStatus   = errors.New("unknown state")
	ErrPaginationInvalid = errors.New("invalid pagination")

	// Comment errors
	ErrEmptyComment = errors.New("comment text is empty")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
)
