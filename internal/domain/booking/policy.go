package booking

import (
	"slices"

	"shareit/internal/pkg/errs"
)

// TransitionPolicy guards approve/decline decisions. BlockedStates must list
// exactly the states Allow rejects; the store uses it for compare-and-set.
type TransitionPolicy interface {
	Allow(current Status) error
	BlockedStates() []Status
}

// StickyApprovalPolicy only refuses to decide a booking that is already
// APPROVED. A REJECTED booking can be decided again.
type StickyApprovalPolicy struct{}

func NewStickyApprovalPolicy() TransitionPolicy {
	return StickyApprovalPolicy{}
}

func (StickyApprovalPolicy) Allow(current Status) error {
	return allowUnless(current, StatusApproved)
}

func (StickyApprovalPolicy) BlockedStates() []Status {
	return []Status{StatusApproved}
}

// TerminalDecisionPolicy treats both outcomes as final: only WAITING
// bookings can be decided.
type TerminalDecisionPolicy struct{}

func (TerminalDecisionPolicy) Allow(current Status) error {
	return allowUnless(current, StatusApproved, StatusRejected)
}

func (TerminalDecisionPolicy) BlockedStates() []Status {
	return []Status{StatusApproved, StatusRejected}
}

func allowUnless(current Status, blocked ...Status) error {
	if slices.Contains(blocked, current) {
		return errs.Reason(errs.ErrIncorrectBooking, "booking is already %s", current)
	}
	return nil
}
