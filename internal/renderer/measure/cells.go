package measure

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cells measures text in terminal cells, one rune at a time.
type Cells struct {
	cond *runewidth.Condition
}

// NewCells creates a cell measurer. When eastAsian is true, ambiguous-width
// runes count as two cells.
func NewCells(eastAsian bool) *Cells {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	return &Cells{cond: cond}
}

// Measure returns the number of terminal cells text occupies.
func (c *Cells) Measure(text string, _ uint32) (float64, error) {
	return float64(c.cond.StringWidth(text)), nil
}

// Graphemes measures text in terminal cells per grapheme cluster, so that
// combining sequences and emoji with modifiers count once.
type Graphemes struct{}

// Measure returns the monospace width of text.
func (Graphemes) Measure(text string, _ uint32) (float64, error) {
	return float64(uniseg.StringWidth(text)), nil
}
