package measure

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/dshills/reflow/internal/renderer/layout"
)

// Measurer names accepted by New.
const (
	NameCells     = "cells"
	NameGraphemes = "graphemes"
	NameFont      = "font"
	NameMonospace = "monospace"
)

// ErrUnknownMeasurer is returned by New for an unrecognized name.
var ErrUnknownMeasurer = errors.New("unknown measurer")

// Monospace gives every rune an advance of Ratio times the nominal size.
type Monospace struct {
	Ratio float64
}

// Measure returns the rune count of text times Ratio times nominalSize.
func (m Monospace) Measure(text string, nominalSize uint32) (float64, error) {
	return float64(utf8.RuneCountInString(text)) * m.Ratio * float64(nominalSize), nil
}

// Options configures measurers created by New.
type Options struct {
	// FontPath is a TrueType/OpenType file for NameFont. Go Regular is used
	// when empty.
	FontPath string
	// EastAsian counts ambiguous-width runes as two cells for NameCells.
	EastAsian bool
	// MonospaceRatio is the advance per rune relative to the nominal size for
	// NameMonospace. Defaults to 0.6.
	MonospaceRatio float64
}

// New creates the measurer registered under name.
func New(name string, opts Options) (layout.Measurer, error) {
	switch name {
	case NameCells, "":
		return NewCells(opts.EastAsian), nil
	case NameGraphemes:
		return Graphemes{}, nil
	case NameMonospace:
		ratio := opts.MonospaceRatio
		if ratio <= 0 {
			ratio = 0.6
		}
		return Monospace{Ratio: ratio}, nil
	case NameFont:
		if opts.FontPath == "" {
			return NewGoRegular()
		}
		data, err := os.ReadFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", opts.FontPath, err)
		}
		return NewFace(data, DefaultDPI)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeasurer, name)
	}
}
