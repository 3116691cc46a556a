// Package cursor provides the edit position of a panel.
//
// A Cursor addresses a logical line and a column. Edits are anchored at the
// cursor's line. The column is carried as part of the position but is not
// consulted by any edit yet; it is kept so that column navigation can be added
// without changing the position type.
//
// Cursor and Position are immutable value types and safe to copy. A cursor does
// not know about the buffer it points into; bounds are validated against a line
// count with InBounds at the point of use.
//
// Basic usage:
//
//	c := cursor.New()                       // (0:0)
//	c = c.MoveTo(cursor.Position{Line: 2})  // (2:0)
//	ok := c.InBounds(buf.LineCount())
package cursor
