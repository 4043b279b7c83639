package booking

import (
	"time"

	"shareit/internal/pkg/errs"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// Period is the reserved window. End is strictly after start; this is
// checked once at creation and never re-validated.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !end.After(start) {
		return Period{}, errs.Reason(errs.ErrIncorrectDate,
			"end %s must be after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

// Contains reports start <= t <= end, both edges inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.start) && !t.After(p.end)
}

func (p Period) EndedBefore(t time.Time) bool { return p.end.Before(t) }
func (p Period) EndsAfter(t time.Time) bool   { return p.end.After(t) }
func (p Period) StartsAfter(t time.Time) bool { return p.start.After(t) }
func (p Period) StartedBefore(t time.Time) bool {
	return p.start.Before(t)
}
