package engine

import (
	"github.com/dshills/reflow/internal/engine/buffer"
	"github.com/dshills/reflow/internal/renderer/layout"
)

// Errors returned by panel operations.
var (
	// ErrOutOfRange indicates the cursor does not address a logical line.
	ErrOutOfRange = buffer.ErrOutOfRange

	// ErrMeasurementUnavailable is the error measurers return when they cannot
	// produce a width. Wrapping recovers from it; it never reaches callers of
	// Panel.
	ErrMeasurementUnavailable = layout.ErrMeasurementUnavailable
)
