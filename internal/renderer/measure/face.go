package measure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/dshills/reflow/internal/renderer/layout"
)

// DefaultDPI is the resolution Face uses when none is given. At 72 DPI one
// point is one pixel, so widths are in the same unit as the nominal size.
const DefaultDPI = 72

// Face measures the advance width of text set in an OpenType font.
// Faces are created lazily, one per nominal size.
type Face struct {
	mu    sync.Mutex
	font  *opentype.Font
	dpi   float64
	buf   sfnt.Buffer
	faces map[uint32]font.Face
}

// NewFace parses an OpenType or TrueType font.
func NewFace(data []byte, dpi float64) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Face{
		font:  f,
		dpi:   dpi,
		faces: make(map[uint32]font.Face),
	}, nil
}

// NewGoRegular creates a Face over the Go Regular font.
func NewGoRegular() (*Face, error) {
	return NewFace(goregular.TTF, DefaultDPI)
}

// Measure returns the advance width of text in pixels. It fails with
// layout.ErrMeasurementUnavailable when the font has no glyph for a rune or
// nominalSize is zero.
func (f *Face) Measure(text string, nominalSize uint32) (float64, error) {
	if nominalSize == 0 {
		return 0, layout.ErrMeasurementUnavailable
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range text {
		idx, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil || idx == 0 {
			return 0, fmt.Errorf("glyph %q: %w", r, layout.ErrMeasurementUnavailable)
		}
	}

	face, err := f.face(nominalSize)
	if err != nil {
		return 0, err
	}

	advance := font.MeasureString(face, text)
	return float64(advance) / 64, nil
}

// face returns the cached font.Face for size. Must be called with mu held.
func (f *Face) face(size uint32) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     f.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face at size %d: %w", size, err)
	}
	f.faces[size] = face
	return face, nil
}

// Close releases all cached faces.
func (f *Face) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var first error
	for size, face := range f.faces {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
		delete(f.faces, size)
	}
	return first
}
