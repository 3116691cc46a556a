// Package buffer holds the logical lines of a document.
//
// A Buffer is an ordered sequence of logical lines. Each logical line is a
// paragraph of text without embedded line breaks; line breaks are structural
// and exist only as boundaries between elements of the sequence.
//
// Invariants:
//
//   - The sequence is never empty. A new buffer holds exactly one empty line.
//   - No line contains '\n' or '\r'. The buffer does not split or strip text;
//     callers that append text are responsible for never passing a break.
//
// Basic usage:
//
//	buf := buffer.New(buffer.WithPath("notes.txt"))
//	line, err := buf.LineAt(0) // "", nil
//
//	err = buf.Update(0, func(s string) string { return s + "hello" })
//	line, _ = buf.LineAt(0) // "hello"
//
//	_, err = buf.LineAt(5) // errors.Is(err, buffer.ErrOutOfRange)
//
// Mutation:
//
// Update is the single mutation primitive. It exists so that the editing
// facade in package engine can apply cursor-anchored edits after the index has
// been validated. Nothing else in the editor mutates a Buffer.
//
// Thread Safety:
//
// Buffer is not safe for concurrent use. The host event loop serializes all
// calls into the editor core.
package buffer
