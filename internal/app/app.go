// Package app provides the main application structure and coordination
// for the reflow editor. It wires the panels, the renderer and the
// configuration together and runs the event loop.
package app

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/dshills/reflow/internal/config"
	"github.com/dshills/reflow/internal/engine"
	"github.com/dshills/reflow/internal/logging"
	"github.com/dshills/reflow/internal/renderer"
	"github.com/dshills/reflow/internal/renderer/backend"
	"github.com/dshills/reflow/internal/renderer/layout"
	"github.com/dshills/reflow/internal/renderer/measure"
)

// Application owns the open panels and drives input, rendering and
// configuration reloads. Panels are only touched from the event loop.
type Application struct {
	cfg      *config.Config
	backend  backend.Backend
	renderer *renderer.Renderer
	measurer layout.Measurer
	logger   *logging.Logger
	metrics  *Metrics

	panels []*engine.Panel
	active int

	reloader  *config.Reloader
	overrides func(*config.Config)

	// State
	running atomic.Bool
	done    chan struct{}
	quit    atomic.Bool
}

// Options configures the application.
type Options struct {
	// Config is the resolved configuration. Defaults are used when nil.
	Config *config.Config

	// ConfigPath is watched for live reload when Watch is set.
	ConfigPath string

	// Watch enables configuration live reload.
	Watch bool

	// Overrides is applied to every reloaded configuration before it takes
	// effect, typically to keep command line flags.
	Overrides func(*config.Config)

	// Backend is the display backend.
	Backend backend.Backend

	// Logger receives diagnostics. Logging is discarded when nil.
	Logger *logging.Logger
}

// New creates a new Application with one empty panel.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, &InitError{Component: "backend", Err: ErrNoBackend}
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m, err := measure.New(cfg.Editor.Measurer, cfg.MeasureOptions())
	if err != nil {
		return nil, &InitError{Component: "measurer", Err: err}
	}

	app := &Application{
		cfg:       cfg,
		backend:   opts.Backend,
		measurer:  m,
		logger:    logger.WithComponent("app"),
		metrics:   NewMetrics(),
		done:      make(chan struct{}),
		overrides: opts.Overrides,
	}

	app.renderer = renderer.New(opts.Backend, m, rendererOptions(cfg))
	app.renderer.SetLogger(logger)

	app.panels = []*engine.Panel{engine.New(
		engine.WithPath(cfg.Panel.Path),
		engine.WithRect(engine.Rect{
			Width:  float64(cfg.Panel.Width),
			Height: float64(cfg.Panel.Height),
		}),
		engine.WithLogger(logger),
	)}

	if opts.Watch && opts.ConfigPath != "" {
		r, err := config.NewReloader(opts.ConfigPath, logger)
		if err != nil {
			closeMeasurer(m)
			return nil, &InitError{Component: "config watcher", Err: err}
		}
		app.reloader = r
	}

	return app, nil
}

func rendererOptions(cfg *config.Config) renderer.Options {
	return renderer.Options{
		WrapWidth: cfg.Editor.WrapWidth,
		FontSize:  uint32(cfg.Editor.FontSize),
		CacheSize: cfg.Editor.MeasureCacheSize,
	}
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Panels returns the open panels in order.
func (app *Application) Panels() []*engine.Panel {
	out := make([]*engine.Panel, len(app.panels))
	copy(out, app.panels)
	return out
}

// ActivePanel returns the panel receiving input.
func (app *Application) ActivePanel() *engine.Panel {
	return app.panels[app.active]
}

// ActiveIndex returns the index of the active panel.
func (app *Application) ActiveIndex() int {
	return app.active
}

// AddPanel appends p and returns its index. The active panel is unchanged.
func (app *Application) AddPanel(p *engine.Panel) int {
	app.panels = append(app.panels, p)
	return len(app.panels) - 1
}

// SetActive selects the panel receiving input.
func (app *Application) SetActive(index int) error {
	if index < 0 || index >= len(app.panels) {
		return fmt.Errorf("panel %d of %d: %w", index, len(app.panels), ErrNoPanel)
	}
	app.active = index
	return nil
}

// ApplyConfig switches to cfg. The measurer is rebuilt and the renderer and
// log level follow the new settings. On error the previous configuration
// stays in effect.
func (app *Application) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := measure.New(cfg.Editor.Measurer, cfg.MeasureOptions())
	if err != nil {
		return err
	}

	old := app.measurer
	app.measurer = m
	app.renderer.SetMeasurer(m)
	closeMeasurer(old)
	app.renderer.SetOptions(rendererOptions(cfg))
	app.logger.SetLevel(cfg.Logging().Level)
	app.cfg = cfg
	app.metrics.RecordReload()

	app.logger.Info("config applied: measurer=%s wrapWidth=%d fontSize=%d",
		cfg.Editor.Measurer, cfg.Editor.WrapWidth, cfg.Editor.FontSize)
	return nil
}

// Quit asks a running event loop to exit.
func (app *Application) Quit() {
	if app.quit.CompareAndSwap(false, true) {
		close(app.done)
	}
}

// Close releases the config watcher and the measurer.
func (app *Application) Close() error {
	var err error
	if app.reloader != nil {
		err = app.reloader.Close()
	}
	closeMeasurer(app.measurer)
	return err
}

func closeMeasurer(m layout.Measurer) {
	if c, ok := m.(io.Closer); ok {
		_ = c.Close()
	}
}

// stripLineBreaks removes line breaks from pasted text. Logical lines never
// contain them.
func stripLineBreaks(s string) string {
	return strings.NewReplacer("\r\n", "", "\r", "", "\n", "").Replace(s)
}
