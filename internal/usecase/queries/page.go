package queries

import "shareit/internal/pkg/errs"

// Window is a parsed from/size page request. The zero value is unpaged.
type Window struct {
	paged bool
	from  int
	size  int
}

var Unpaged = Window{}

// NewWindow honours the window only when both from and size are present.
// A present window needs from >= 0 and size > 0.
func NewWindow(from, size *int) (Window, error) {
	if from == nil || size == nil {
		return Unpaged, nil
	}
	if *from < 0 || *size <= 0 {
		return Window{}, errs.Reason(errs.ErrPaginationInvalid, "from=%d size=%d", *from, *size)
	}
	return Window{paged: true, from: *from, size: *size}, nil
}

func (w Window) Paged() bool { return w.paged }

// Offset starts at the page that contains from: (from / size) * size.
func (w Window) Offset() int {
	if !w.paged {
		return 0
	}
	return (w.from / w.size) * w.size
}

func (w Window) Limit() int {
	if !w.paged {
		return 0
	}
	return w.size
}
