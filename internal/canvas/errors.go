package canvas

import (
	"errors"
	"fmt"
)

// Domain errors for canvas replay.
var (
	// ErrOutOfBounds indicates an event targeting a cell outside the canvas.
	ErrOutOfBounds = errors.New("canvas: coordinates outside canvas bounds")

	// ErrBadIndex indicates a palette index outside the palette's range.
	ErrBadIndex = errors.New("canvas: palette index out of range")

	// ErrSizeMismatch indicates a seed image whose dimensions differ from the canvas.
	ErrSizeMismatch = errors.New("canvas: background size does not match canvas size")
)

// DataError wraps a per-event error with enough context to locate the
// offending log entry.
type DataError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *DataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: field %q (%s): %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
