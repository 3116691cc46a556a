package cursor

import "fmt"

// Position is a line and column address. Both fields are 0-indexed.
type Position struct {
	Line   uint32 // index into the buffer's logical lines
	Column uint32 // reserved for column addressing
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// IsZero returns true if this is the origin (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Cursor is the insertion and deletion point of a panel.
type Cursor struct {
	pos Position
}

// New creates a cursor at (0:0).
func New() Cursor {
	return Cursor{}
}

// NewAt creates a cursor at the given position.
func NewAt(pos Position) Cursor {
	return Cursor{pos: pos}
}

// Position returns the cursor's position.
func (c Cursor) Position() Position {
	return c.pos
}

// Line returns the cursor's line as an int index.
func (c Cursor) Line() int {
	return int(c.pos.Line)
}

// MoveTo returns a new cursor at pos. The position is not validated.
func (c Cursor) MoveTo(pos Position) Cursor {
	return Cursor{pos: pos}
}

// InBounds reports whether the cursor's line indexes one of lineCount lines.
func (c Cursor) InBounds(lineCount int) bool {
	return lineCount > 0 && int64(c.pos.Line) < int64(lineCount)
}

// Clamp returns a cursor whose line is limited to the last of lineCount lines.
// The column is kept as is.
func (c Cursor) Clamp(lineCount int) Cursor {
	if lineCount <= 0 {
		return Cursor{pos: Position{Column: c.pos.Column}}
	}
	if int64(c.pos.Line) >= int64(lineCount) {
		return Cursor{pos: Position{Line: uint32(lineCount - 1), Column: c.pos.Column}}
	}
	return c
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor%s", c.pos)
}
