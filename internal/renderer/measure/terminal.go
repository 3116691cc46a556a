package measure

import (
	"math"

	"github.com/rivo/uniseg"

	"github.com/dshills/reflow/internal/renderer/layout"
)

// MaxClusterWidth is the widest a single grapheme cluster gets on a
// terminal, in cells.
const MaxClusterWidth = 2

// cellReference is measured to find the advance of one terminal cell.
const cellReference = "0"

// CellUnit returns the width m gives one terminal cell at nominalSize. Cell
// measurers yield 1. It falls back to 1 when m cannot measure the reference.
func CellUnit(m layout.Measurer, nominalSize uint32) float64 {
	w, err := m.Measure(cellReference, nominalSize)
	if err != nil || math.IsNaN(w) || w <= 0 {
		return 1
	}
	return w
}

// TerminalCells adapts a measurer of any unit to terminal cells.
//
// Widths from the underlying measurer are divided by Unit. The result is
// never less than the cells the text occupies on screen, so a physical line
// wrapped against a target in cells never needs more cells than the target
// plus one cluster. A failed measurement falls back to the screen width.
type TerminalCells struct {
	Measurer layout.Measurer
	Unit     float64
}

// ForTerminal wraps m so that it measures in terminal cells at nominalSize.
func ForTerminal(m layout.Measurer, nominalSize uint32) *TerminalCells {
	return &TerminalCells{Measurer: m, Unit: CellUnit(m, nominalSize)}
}

// Measure returns the width of text in terminal cells.
func (t *TerminalCells) Measure(text string, nominalSize uint32) (float64, error) {
	cells := float64(uniseg.StringWidth(text))

	w, err := t.Measurer.Measure(text, nominalSize)
	if err != nil || math.IsNaN(w) {
		return cells, nil
	}
	if t.Unit > 0 {
		// Rounded to absorb float error from scaled advances.
		w = math.Round(w/t.Unit*1e6) / 1e6
	}
	return math.Max(w, cells), nil
}
