package fuse

import (
	"errors"

	"github.com/gogpu/fuse/internal/parallel"
)

var (
	// ErrNoNodes is returned when fusion produced no node at all.
	ErrNoNodes = errors.New("fuse: no fused nodes")

	// ErrInvalidSource is returned for malformed sources, such as edges
	// linking missing points.
	ErrInvalidSource = errors.New("fuse: invalid source")

	// ErrCanceled matches every *CancelError.
	ErrCanceled = parallel.ErrCanceled
)

// CancelError reports a run canceled by one of its phases.
type CancelError struct {
	// Message describes why the run was canceled.
	Message string
	// Err is the failure that triggered the cancellation, if any.
	Err error
}

func (e *CancelError) Error() string {
	if e.Err != nil {
		return "fuse: canceled: " + e.Message + ": " + e.Err.Error()
	}
	return "fuse: canceled: " + e.Message
}

// Unwrap exposes both ErrCanceled and the underlying failure to errors.Is.
func (e *CancelError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCanceled}
	}
	return []error{ErrCanceled, e.Err}
}
