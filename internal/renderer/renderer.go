package renderer

import (
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/reflow/internal/engine"
	"github.com/dshills/reflow/internal/logging"
	"github.com/dshills/reflow/internal/renderer/backend"
	"github.com/dshills/reflow/internal/renderer/layout"
	"github.com/dshills/reflow/internal/renderer/measure"
)

// PanelSource is the read side of a panel used for drawing.
type PanelSource interface {
	PhysicalLines(m engine.Measurer, targetWidth float64, nominalSize uint32) []engine.PhysicalLine
	Rect() engine.Rect
	Cursor() engine.Position
}

// Options configures the renderer.
type Options struct {
	// WrapWidth is the target width in cells handed to the wrapper. Zero
	// wraps one wide cluster short of the panel width, so the cluster that
	// crosses the target still fits inside the panel.
	WrapWidth int

	// FontSize is the nominal size handed to the measurer. Widths are
	// converted to cells using the width of one cell at this size.
	FontSize uint32

	// CacheSize bounds memoized measurements. Zero disables memoization.
	CacheSize int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		WrapWidth: 0, // Fit the panel
		FontSize:  75,
		CacheSize: layout.DefaultCacheSize,
	}
}

// Frame summarizes one Render call.
type Frame struct {
	Rows      int  // Physical lines drawn
	Clipped   int  // Physical lines below the panel
	CursorX   int  // Screen column of the cursor
	CursorY   int  // Screen row of the cursor
	CursorSet bool // False when the cursor line had no rows on screen
}

// Renderer is the main rendering facade.
type Renderer struct {
	mu sync.Mutex

	backend backend.Backend
	opts    Options
	logger  *logging.Logger

	base     layout.Measurer
	measurer layout.Measurer
	cache    *layout.MeasureCache
}

// New creates a renderer that measures text with m.
func New(b backend.Backend, m layout.Measurer, opts Options) *Renderer {
	r := &Renderer{
		backend: b,
		opts:    opts,
	}
	r.setMeasurer(m)
	return r
}

// SetLogger sets the logger used for frame diagnostics.
func (r *Renderer) SetLogger(l *logging.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger = l.WithComponent("renderer")
}

// SetMeasurer replaces the measurer and drops memoized widths.
func (r *Renderer) SetMeasurer(m layout.Measurer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setMeasurer(m)
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.opts
}

// SetOptions replaces the options. A changed cache size or font size
// rebuilds the cache.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rebuild := opts.CacheSize != r.opts.CacheSize || opts.FontSize != r.opts.FontSize
	r.opts = opts
	if rebuild {
		r.setMeasurer(r.base)
	}
}

// CacheStats returns measurement cache statistics. The zero value is
// returned when memoization is disabled.
func (r *Renderer) CacheStats() layout.CacheStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache == nil {
		return layout.CacheStats{}
	}
	return r.cache.Stats()
}

// setMeasurer memoizes m when caching is enabled and converts its widths
// to cells. Must be called with mu held.
func (r *Renderer) setMeasurer(m layout.Measurer) {
	r.base = m
	r.cache = nil
	r.measurer = nil
	if m == nil {
		return
	}

	measured := m
	if r.opts.CacheSize > 0 {
		r.cache = layout.Memoize(m, r.opts.CacheSize)
		measured = r.cache
	}
	r.measurer = &measure.TerminalCells{
		Measurer: measured,
		Unit:     measure.CellUnit(m, r.opts.FontSize),
	}
}

// TargetWidth returns the wrap width used for a panel of the given width in
// cells.
func (r *Renderer) TargetWidth(panelWidth int) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.targetWidth(panelWidth)
}

func (r *Renderer) targetWidth(panelWidth int) float64 {
	if r.opts.WrapWidth > 0 {
		return float64(r.opts.WrapWidth)
	}
	return float64(max(panelWidth-measure.MaxClusterWidth, 0))
}

// Render clears the screen, draws p and flushes the backend.
func (r *Renderer) Render(p PanelSource) Frame {
	return r.RenderAll([]PanelSource{p}, 0)
}

// RenderAll clears the screen, draws every panel and flushes the backend.
// The active panel is drawn last and owns the cursor. The returned Frame
// describes the active panel.
func (r *Renderer) RenderAll(panels []PanelSource, active int) Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.Clear()
	for i, p := range panels {
		if i != active {
			r.draw(p)
		}
	}

	var frame Frame
	if active >= 0 && active < len(panels) {
		frame = r.draw(panels[active])
	}
	if frame.CursorSet {
		r.backend.ShowCursor(frame.CursorX, frame.CursorY)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()

	r.logger.Debug("frame: %d panels, %d rows, %d clipped", len(panels), frame.Rows, frame.Clipped)
	return frame
}

func (r *Renderer) draw(p PanelSource) Frame {
	x0, y0, width, height := r.clip(p.Rect())
	cursorLine := int(p.Cursor().Line)

	var frame Frame
	if width <= 0 || height <= 0 {
		return frame
	}

	lines := p.PhysicalLines(r.measurer, r.targetWidth(width), r.opts.FontSize)
	for i, pl := range lines {
		if i >= height {
			frame.Clipped = len(lines) - height
			for _, rest := range lines[i:] {
				if rest.LogicalLine == cursorLine {
					frame.CursorSet = false
					break
				}
			}
			break
		}
		y := y0 + i
		end := drawText(r.backend, x0, y, x0+width, pl.Text)
		frame.Rows++

		// The last visible row of the cursor's line wins.
		if pl.LogicalLine == cursorLine {
			frame.CursorX, frame.CursorY, frame.CursorSet = end, y, true
			if end >= x0+width {
				frame.CursorX, frame.CursorY = x0, y+1
				frame.CursorSet = i+1 < height
			}
		}
	}

	return frame
}

// clip converts a panel rect to whole cells intersected with the screen.
func (r *Renderer) clip(rect engine.Rect) (x, y, w, h int) {
	sw, sh := r.backend.Size()
	x, y = int(rect.X), int(rect.Y)
	w, h = int(rect.Width), int(rect.Height)
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	w = min(w, sw-x)
	h = min(h, sh-y)
	return x, y, w, h
}

// drawText paints text from column x on row y, one grapheme cluster per
// cell group, stopping before limit. It returns the column after the last
// cluster drawn.
func drawText(b backend.Backend, x, y, limit int, text string) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		b.SetCell(x, y, backend.Cell{Rune: runes[0], Combining: runes[1:], Width: w})
		for i := 1; i < w; i++ {
			b.SetCell(x+i, y, backend.Cell{Rune: ' ', Width: 0})
		}
		x += w
	}
	return x
}
