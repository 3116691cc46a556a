// Package engine provides Panel, the editing facade of reflow.
//
// A Panel composes a buffer of logical lines, a cursor, and the line wrapper
// from package layout. It is the only place text is mutated and the place the
// renderer asks for physical lines.
//
// # Basic Usage
//
//	p := engine.New()
//
//	p.AddText("hi")
//	p.AddText("!")     // line 0 is now "hi!"
//	p.RemoveText(1)    // line 0 is now "hi"
//	p.RemoveText(10)   // line 0 is now "", no error
//
// # Rendering
//
// PhysicalLines wraps every logical line with the supplied measurer:
//
//	lines := p.PhysicalLines(measurer, 500, 12)
//	for _, pl := range lines {
//	    draw(pl.Text)
//	}
//
// The call has no side effects and can be made every frame.
//
// # Error Handling
//
// Edits are anchored at the cursor's line. If the cursor does not address a
// logical line, AddText and RemoveText return an error matching
// ErrOutOfRange, leave the buffer unchanged, and log a warning. Choosing a
// recovery (clamping the cursor, dropping the keystroke) is up to the host.
//
// # Thread Safety
//
// Panel performs no locking. The host event loop must serialize all calls.
package engine
