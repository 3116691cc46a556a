package buffer

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a line index does not address a logical line.
var ErrOutOfRange = errors.New("line index out of range")

// Buffer is an ordered, never-empty sequence of logical lines.
type Buffer struct {
	path  string
	lines []string
}

// New creates a buffer containing a single empty logical line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		path:  DefaultPath,
		lines: []string{""},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Path returns the buffer's opaque path identifier.
func (b *Buffer) Path() string {
	return b.path
}

// LineCount returns the number of logical lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineAt returns the logical line at index.
func (b *Buffer) LineAt(index int) (string, error) {
	if err := b.check(index); err != nil {
		return "", err
	}
	return b.lines[index], nil
}

// Lines returns a copy of all logical lines in order.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Update replaces the logical line at index with fn applied to its current
// text. The buffer is left untouched when index is invalid.
func (b *Buffer) Update(index int, fn func(line string) string) error {
	if err := b.check(index); err != nil {
		return err
	}
	b.lines[index] = fn(b.lines[index])
	return nil
}

func (b *Buffer) check(index int) error {
	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("line %d of %d: %w", index, len(b.lines), ErrOutOfRange)
	}
	return nil
}
