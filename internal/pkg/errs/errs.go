package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// markedError keeps the message and the stack of err and adds mark as a
// second cause, so both cr.Is and the standard errors.Is/As see it.
type markedError struct {
	err  error
	mark error
}

func (e *markedError) Error() string { return e.err.Error() }

func (e *markedError) Unwrap() []error { return []error{e.err, e.mark} }

// Is serves cr.Is, which follows single-cause chains only.
func (e *markedError) Is(target error) bool {
	return cr.Is(e.err, target) || cr.Is(e.mark, target)
}

func (e *markedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v", e.err)
		return
	}
	fmt.Fprint(s, e.err.Error())
}

// Mark tags err so that errors.Is(err, markErr) holds without changing its message.
// A nil err yields markErr itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &markedError{err: err, mark: markErr}
}

func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// Reason attaches a human readable reason to a sentinel while keeping it matchable.
func Reason(sentinel error, format string, args ...any) error {
	return Mark(Newf(format, args...), sentinel)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
