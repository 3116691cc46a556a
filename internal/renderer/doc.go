// Package renderer draws panels onto a terminal backend.
//
// Each frame the renderer asks every panel for its physical lines, wrapped at
// the configured width in terminal cells, and paints them one row per
// physical line inside the panel's rectangle. Rows past the bottom of the rectangle are clipped. The
// terminal cursor is placed after the last rune of the cursor's logical line.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, measure.NewCells(false), renderer.DefaultOptions())
//	r.Render(panel)
//
// Sub-packages:
//
//   - layout: line wrapping and measurement caching
//   - measure: width measurers (terminal cells, graphemes, font metrics)
//   - backend: terminal abstraction (tcell, in-memory)
package renderer
