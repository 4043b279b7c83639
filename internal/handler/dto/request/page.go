package request

import (
	"strconv"

	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/ptr"
)

// OptionalInt parses an optional query value. An empty value yields nil.
func OptionalInt(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errs.Reason(errs.ErrPaginationInvalid, "%s must be an integer, got %q", name, raw)
	}
	return ptr.Of(v), nil
}
