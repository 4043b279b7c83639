package request

import (
	"time"

	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

// NaiveLayout is accepted for timestamps sent without an offset.
const NaiveLayout = "2006-01-02T15:04:05"

// Fractional seconds are optional in both layouts.
var layouts = []string{time.RFC3339Nano, NaiveLayout + ".999999999"}

// ParseTimestamp accepts RFC 3339 or a naive local timestamp. Naive values are
// read in loc. The result is UTC and truncated to the storage precision.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t.UTC().Truncate(clock.Precision), nil
		}
	}
	return time.Time{}, errs.Reason(errs.ErrIncorrectDate, "cannot parse timestamp %q", raw)
}
