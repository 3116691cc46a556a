package engine

import (
	"github.com/dshills/reflow/internal/engine/buffer"
	"github.com/dshills/reflow/internal/logging"
)

// Default panel geometry.
const (
	DefaultWidth  = 500.0
	DefaultHeight = 500.0
)

// Option configures a Panel during creation.
type Option func(*Panel)

// WithPath sets the path of the panel's buffer.
func WithPath(path string) Option {
	return func(p *Panel) {
		p.bufOpts = append(p.bufOpts, buffer.WithPath(path))
	}
}

// WithRect sets the panel's placement and size.
func WithRect(r Rect) Option {
	return func(p *Panel) {
		p.rect = r
	}
}

// WithLogger sets the logger used for edit diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(p *Panel) {
		p.logger = l
	}
}
