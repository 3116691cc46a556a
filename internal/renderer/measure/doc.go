// Package measure provides Measurer implementations for the line wrapper.
//
// The editor core only depends on layout.Measurer. This package supplies the
// concrete measurers a host can choose from:
//
//   - Cells: terminal cell width via go-runewidth (East Asian wide = 2)
//   - Graphemes: terminal width per grapheme cluster via uniseg
//   - Face: pixel advance width from an OpenType font via x/image
//   - Monospace: a fixed advance per rune, proportional to the nominal size
//
// Cells and Graphemes ignore the nominal size, since a terminal cell does not
// grow with it. Face and Monospace scale with it. A terminal host wraps any
// of them with ForTerminal to get widths in cells.
//
// Select one by name with New:
//
//	m, err := measure.New(measure.NameCells, measure.Options{})
package measure
