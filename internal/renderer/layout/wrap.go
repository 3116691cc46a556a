package layout

import (
	"fmt"
	"math"
	"strings"
)

// Span is a half-open range [Start, End) of rune offsets into a line.
type Span struct {
	Start int
	End   int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Len returns the number of runes in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span covers no runes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Slice returns the text covered by the span.
func (s Span) Slice(runes []rune) string {
	return string(runes[s.Start:s.End])
}

// Wrap splits text into physical lines no wider than targetWidth, except for
// the rune that overflows each line, which is kept on it.
func Wrap(text string, targetWidth float64, nominalSize uint32, m Measurer) []Span {
	if text == "" {
		return []Span{{Start: 0, End: 0}}
	}
	return WrapRunes([]rune(text), targetWidth, nominalSize, m)
}

// WrapRunes is Wrap over text already decoded to runes.
func WrapRunes(runes []rune, targetWidth float64, nominalSize uint32, m Measurer) []Span {
	if len(runes) == 0 {
		return []Span{{Start: 0, End: 0}}
	}

	spans := make([]Span, 0, 1)
	start := 0
	for start < len(runes) {
		end := nextBreak(runes, start, targetWidth, nominalSize, m)
		spans = append(spans, Span{Start: start, End: end})
		start = end
	}
	return spans
}

// nextBreak returns the end offset of the physical line starting at start.
// The result is always greater than start.
func nextBreak(runes []rune, start int, targetWidth float64, nominalSize uint32, m Measurer) int {
	end := start
	for end < len(runes) {
		end++
		width, err := m.Measure(string(runes[start:end]), nominalSize)
		if err != nil || math.IsNaN(width) {
			continue
		}
		if width > targetWidth {
			break
		}
	}
	return end
}

// Join concatenates the text covered by spans. For spans produced by Wrap the
// result equals the wrapped text.
func Join(text string, spans []Span) string {
	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text))
	for _, s := range spans {
		sb.WriteString(s.Slice(runes))
	}
	return sb.String()
}
