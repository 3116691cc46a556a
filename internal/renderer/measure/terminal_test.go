package measure

import (
	"testing"

	"github.com/dshills/reflow/internal/renderer/layout"
)

func TestCellUnit(t *testing.T) {
	failing := layout.MeasurerFunc(func(string, uint32) (float64, error) {
		return 0, layout.ErrMeasurementUnavailable
	})

	tests := []struct {
		name     string
		measurer layout.Measurer
		size     uint32
		expected float64
	}{
		{"cells", NewCells(false), 75, 1},
		{"graphemes", Graphemes{}, 75, 1},
		{"monospace", Monospace{Ratio: 0.5}, 20, 10},
		{"failing", failing, 75, 1},
		{"zero size", Monospace{Ratio: 0.5}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellUnit(tt.measurer, tt.size); got != tt.expected {
				t.Errorf("CellUnit() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTerminalCellsMonospace(t *testing.T) {
	m := ForTerminal(Monospace{Ratio: 0.6}, 75)

	tests := []struct {
		text     string
		expected float64
	}{
		{"", 0},
		{"a", 1},
		{"abc", 3},
		{"abcd", 4},
		{"abcdefgh", 8},
	}

	for _, tt := range tests {
		got, err := m.Measure(tt.text, 75)
		if err != nil {
			t.Fatalf("Measure(%q) failed: %v", tt.text, err)
		}
		if got != tt.expected {
			t.Errorf("Measure(%q) = %v, expected %v", tt.text, got, tt.expected)
		}
	}
}

func TestTerminalCellsNeverBelowScreenWidth(t *testing.T) {
	f, err := NewGoRegular()
	if err != nil {
		t.Fatalf("NewGoRegular failed: %v", err)
	}
	defer f.Close()

	m := ForTerminal(f, 75)
	tests := []struct {
		text string
		min  float64
	}{
		{"iiii", 4},
		{"....", 4},
		{"hello world", 11},
	}

	for _, tt := range tests {
		got, err := m.Measure(tt.text, 75)
		if err != nil {
			t.Fatalf("Measure(%q) failed: %v", tt.text, err)
		}
		if got < tt.min {
			t.Errorf("Measure(%q) = %v, want at least %v cells", tt.text, got, tt.min)
		}
	}
}

func TestTerminalCellsFallsBackOnFailure(t *testing.T) {
	m := &TerminalCells{
		Measurer: layout.MeasurerFunc(func(string, uint32) (float64, error) {
			return 0, layout.ErrMeasurementUnavailable
		}),
		Unit: 1,
	}

	got, err := m.Measure("a日", 12)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if got != 3 {
		t.Errorf("Measure = %v, expected the screen width 3", got)
	}
}
