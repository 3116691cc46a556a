// Package layout reflows logical lines into width-bounded physical lines.
//
// Wrap is a pure function over a line's text, a target width, a nominal size
// and a Measurer. The measurer is always passed in explicitly, so the
// algorithm can be driven by a font, by terminal cell widths, or by a fake in
// tests.
//
// # Wrapping Policy
//
// Wrapping is greedy. Runes are appended to the candidate physical line one at
// a time and the candidate is re-measured after every append. When the width
// exceeds the target the line ends, and the rune that caused the overflow
// stays on the line it overflowed:
//
//	// unit-width measurer, target width 3
//	layout.Wrap("abcde", 3, 12, m) // [0,4) [4,5)
//
// Every pass consumes at least one rune, so a rune wider than the target on
// its own still produces a one-rune physical line. An empty line produces one
// empty span.
//
// # Measurement Failures
//
// A measurer may fail (for example when a glyph is missing from a font). A
// failed measurement keeps the rune on the current line without a width check
// and wrapping continues. Failures are never reported to the caller.
//
// # Caching
//
// Every candidate is measured from scratch, which is quadratic in the length
// of a physical line. Memoize wraps a Measurer with an LRU cache of widths so
// that re-rendering unchanged text does not re-measure it. A memoized measurer
// returns exactly what the underlying measurer returned, so spans are
// unaffected.
package layout
