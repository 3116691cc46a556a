package layout

import "errors"

// ErrMeasurementUnavailable indicates that a measurer cannot produce a width.
var ErrMeasurementUnavailable = errors.New("measurement unavailable")

// Measurer reports the rendered width of text at a nominal size.
type Measurer interface {
	Measure(text string, nominalSize uint32) (float64, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, nominalSize uint32) (float64, error)

// Measure calls f(text, nominalSize).
func (f MeasurerFunc) Measure(text string, nominalSize uint32) (float64, error) {
	return f(text, nominalSize)
}
