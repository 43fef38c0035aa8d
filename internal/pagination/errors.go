package pagination

import (
	"errors"
	"fmt"
)

// ErrNoImages is returned (wrapped in a ValidationError) when there is nothing to lay out
var ErrNoImages = errors.New("no images to lay out")

// ValidationError reports malformed input to the engine or the options layer
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid layout request: %s", e.Reason)
	}
	return fmt.Sprintf("invalid layout request: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// LayoutError reports a page that cannot hold the requested grid
type LayoutError struct {
	Reason          string
	AvailableWidth  float64
	AvailableHeight float64
	Side            float64
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("degenerate page: %s (available %.2fx%.2f, side %.2f)",
		e.Reason, e.AvailableWidth, e.AvailableHeight, e.Side)
}
