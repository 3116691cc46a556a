package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/reflow/internal/engine/buffer"
	"github.com/dshills/reflow/internal/engine/cursor"
	"github.com/dshills/reflow/internal/logging"
	"github.com/dshills/reflow/internal/renderer/layout"
)

// Re-export commonly used types for convenience.
type (
	// Position is a cursor line/column position.
	Position = cursor.Position

	// Span is a rune range of a logical line.
	Span = layout.Span

	// Measurer reports the rendered width of text at a nominal size.
	Measurer = layout.Measurer

	// MeasurerFunc adapts a function to Measurer.
	MeasurerFunc = layout.MeasurerFunc
)

// Rect is a panel's placement and size in host units.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// PhysicalLine is one width-bounded row of a logical line.
type PhysicalLine struct {
	LogicalLine int    // Index of the logical line
	Row         int    // Row within the logical line, 0 for the first
	Span        Span   // Rune offsets into the logical line
	Text        string // Text covered by Span
}

// Panel owns a buffer and a cursor and exposes the editing and rendering
// operations of the editor core.
type Panel struct {
	id     uuid.UUID
	buf    *buffer.Buffer
	cursor cursor.Cursor
	rect   Rect
	logger *logging.Logger

	bufOpts []buffer.Option
}

// New creates a panel with an empty buffer and the cursor at (0:0).
func New(opts ...Option) *Panel {
	p := &Panel{
		id:     uuid.New(),
		cursor: cursor.New(),
		rect:   Rect{Width: DefaultWidth, Height: DefaultHeight},
	}

	for _, opt := range opts {
		opt(p)
	}

	p.buf = buffer.New(p.bufOpts...)
	p.bufOpts = nil
	p.logger = p.logger.WithComponent("engine").WithField("panel", p.id.String())

	return p
}

// ID returns the panel's unique identifier.
func (p *Panel) ID() uuid.UUID {
	return p.id
}

// Path returns the path of the panel's buffer.
func (p *Panel) Path() string {
	return p.buf.Path()
}

// Rect returns the panel's placement and size.
func (p *Panel) Rect() Rect {
	return p.rect
}

// SetRect moves or resizes the panel.
func (p *Panel) SetRect(r Rect) {
	p.rect = r
}

// Cursor returns the cursor position.
func (p *Panel) Cursor() Position {
	return p.cursor.Position()
}

// SetCursor moves the cursor. The position is validated when an edit is made,
// not here.
func (p *Panel) SetCursor(pos Position) {
	p.cursor = p.cursor.MoveTo(pos)
}

// LineCount returns the number of logical lines.
func (p *Panel) LineCount() int {
	return p.buf.LineCount()
}

// LineAt returns the logical line at index.
func (p *Panel) LineAt(index int) (string, error) {
	return p.buf.LineAt(index)
}

// Lines returns a copy of all logical lines.
func (p *Panel) Lines() []string {
	return p.buf.Lines()
}

// AddText appends s verbatim to the logical line at the cursor.
func (p *Panel) AddText(s string) error {
	return p.edit("add text", func(line string) string {
		return line + s
	})
}

// RemoveText removes up to n trailing runes from the logical line at the
// cursor. Removing more runes than the line holds empties it.
func (p *Panel) RemoveText(n int) error {
	return p.edit("remove text", func(line string) string {
		for i := 0; i < n && line != ""; i++ {
			_, size := utf8.DecodeLastRuneInString(line)
			line = line[:len(line)-size]
		}
		return line
	})
}

// edit applies fn to the cursor's line after validating the cursor.
func (p *Panel) edit(op string, fn func(string) string) error {
	if !p.cursor.InBounds(p.buf.LineCount()) {
		err := fmt.Errorf("%s: cursor %s outside %d lines: %w",
			op, p.cursor.Position(), p.buf.LineCount(), ErrOutOfRange)
		p.logger.Warn("%v", err)
		return err
	}
	if err := p.buf.Update(p.cursor.Line(), fn); err != nil {
		p.logger.Warn("%s: %v", op, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PhysicalLines wraps every logical line to targetWidth and returns the
// resulting physical lines in logical order, then row order. Every logical
// line contributes at least one physical line.
func (p *Panel) PhysicalLines(m Measurer, targetWidth float64, nominalSize uint32) []PhysicalLine {
	lines := p.buf.Lines()
	out := make([]PhysicalLine, 0, len(lines))

	for i, text := range lines {
		runes := []rune(text)
		for row, span := range layout.WrapRunes(runes, targetWidth, nominalSize, m) {
			out = append(out, PhysicalLine{
				LogicalLine: i,
				Row:         row,
				Span:        span,
				Text:        span.Slice(runes),
			})
		}
	}

	return out
}
