package main

import (
	"fmt"

	"dscheirer.com/segtimer/rgb"
	"github.com/pkg/errors"
)

var (
	// ErrTransitionRace is returned if a mode change starts while the old
	// mode is still being torn down.  The controller is single threaded so
	// seeing this is a bug.
	ErrTransitionRace = errors.New("mode transition during teardown")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("controller closed")
)

// ValidationError is a bad request parameter.  Nothing was changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// colorError turns an rgb range error into a ValidationError on field
func colorError(field string, err error) error {
	var re *rgb.RangeError
	if errors.As(err, &re) {
		return invalid(field+"."+re.Channel, "%d not in [0,255]", re.Value)
	}
	return invalid(field, "%v", err)
}

// SurfaceError is a failed render.  The mode change that caused it still
// happened.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("render (%s): %v", e.Op, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause see through to the driver error.
func (e *SurfaceError) Cause() error {
	return e.Err
}

func isValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func isSurface(err error) bool {
	var se *SurfaceError
	return errors.As(err, &se)
}
