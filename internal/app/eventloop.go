package app

import (
	"context"
	"errors"

	"github.com/dshills/reflow/internal/config"
	"github.com/dshills/reflow/internal/engine"
	"github.com/dshills/reflow/internal/renderer"
	"github.com/dshills/reflow/internal/renderer/backend"
)

// HandleEvent applies a backend event to panel p. It returns ErrQuit when
// the event asks the application to exit. Edits refused because the cursor
// is out of range are logged and dropped.
func (app *Application) HandleEvent(p *engine.Panel, ev backend.Event) error {
	timer := StartTimer()
	defer func() { app.metrics.RecordInput(timer.Elapsed()) }()

	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(p, ev)
	case backend.EventKey:
		return app.handleKeyEvent(p, ev)
	case backend.EventPaste:
		return app.handlePasteEvent(p, ev)
	default:
		return nil
	}
}

// handleResize fits the panel to the new screen size.
func (app *Application) handleResize(p *engine.Panel, ev backend.Event) error {
	p.SetRect(engine.Rect{Width: float64(ev.Width), Height: float64(ev.Height)})
	return nil
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(p *engine.Panel, ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC, backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyBackspace:
		return app.edit(p.RemoveText(1))
	case backend.KeyTab:
		return app.edit(p.AddText("\t"))
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return nil
		}
		return app.edit(p.AddText(string(ev.Rune)))
	default:
		app.logger.Debug("unhandled key %d", ev.Key)
		return nil
	}
}

// handlePasteEvent inserts pasted text with its line breaks removed.
func (app *Application) handlePasteEvent(p *engine.Panel, ev backend.Event) error {
	text := stripLineBreaks(ev.PasteText)
	if text == "" {
		return nil
	}
	return app.edit(p.AddText(text))
}

// edit filters the result of a panel edit. Out-of-range edits are the
// keystroke being ignored, not a failure of the loop.
func (app *Application) edit(err error) error {
	if errors.Is(err, engine.ErrOutOfRange) {
		app.metrics.RecordRejectedEdit()
		app.logger.Warn("ignoring keystroke: %v", err)
		return nil
	}
	return err
}

// Render draws every panel. The active panel is drawn last and owns the
// cursor.
func (app *Application) Render() {
	timer := StartTimer()
	panels := make([]renderer.PanelSource, len(app.panels))
	for i, p := range app.panels {
		panels[i] = p
	}
	app.renderer.RenderAll(panels, app.active)
	app.metrics.RecordRender(timer.Elapsed())
}

// Run initializes the backend and processes events until ctx is cancelled,
// Quit is called or a quit key is pressed.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	if err := app.backend.Init(); err != nil {
		app.running.Store(false)
		return &InitError{Component: "backend", Err: err}
	}
	defer func() {
		app.running.Store(false)
		// Unblocks the polling goroutine
		app.backend.Shutdown()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reloads <-chan *config.Config
	if app.reloader != nil {
		reloads = app.reloader.Updates()
		go func() {
			if err := app.reloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Error("config reloader stopped: %v", err)
			}
		}()
	}

	w, h := app.backend.Size()
	app.ActivePanel().SetRect(engine.Rect{Width: float64(w), Height: float64(h)})
	app.Render()

	events := app.startInputPolling()
	app.logger.Info("event loop started (%dx%d)", w, h)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.HandleEvent(app.ActivePanel(), ev); err != nil {
				if errors.Is(err, ErrQuit) {
					app.logger.Info("quit requested")
					return nil
				}
				return err
			}
			app.Render()

		case cfg, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if app.overrides != nil {
				app.overrides(cfg)
			}
			if err := app.ApplyConfig(cfg); err != nil {
				app.logger.Warn("config reload rejected: %v", err)
				continue
			}
			app.Render()
		}
	}
}

// startInputPolling reads backend events on a separate goroutine.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for app.running.Load() {
			// PollEvent is blocking. The backend.Shutdown() call in Run()
			// will unblock it.
			ev := app.backend.PollEvent()

			// Check if we should stop (may have been signaled during blocking poll)
			if !app.running.Load() {
				return
			}
			if ev.Type == backend.EventNone {
				continue
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			default:
				// Buffer full, drop event to prevent blocking.
				app.metrics.RecordInputDropped()
			}
		}
	}()

	return events
}
