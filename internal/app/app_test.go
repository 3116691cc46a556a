package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/reflow/internal/config"
	"github.com/dshills/reflow/internal/engine"
	"github.com/dshills/reflow/internal/renderer/backend"
	"github.com/dshills/reflow/internal/renderer/measure"
)

func newTestApp(t *testing.T) (*Application, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(20, 5)
	app, err := New(Options{Backend: b})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app, b
}

func keyRune(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func line(t *testing.T, p *engine.Panel, i int) string {
	t.Helper()
	s, err := p.LineAt(i)
	if err != nil {
		t.Fatalf("LineAt(%d): %v", i, err)
	}
	return s
}

func TestNew(t *testing.T) {
	app, _ := newTestApp(t)

	if len(app.Panels()) != 1 {
		t.Fatalf("Panels() = %d, want 1", len(app.Panels()))
	}
	p := app.ActivePanel()
	if p.Path() != "untitled.txt" {
		t.Errorf("Path() = %q, want untitled.txt", p.Path())
	}
	if r := p.Rect(); r.Width != 500 || r.Height != 500 {
		t.Errorf("Rect() = %+v, want 500x500", r)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrNoBackend) {
		t.Errorf("New without backend = %v, want ErrNoBackend", err)
	}

	cfg := config.Default()
	cfg.Editor.Measurer = "nope"
	_, err := New(Options{Backend: backend.NewNullBackend(1, 1), Config: cfg})
	var ierr *InitError
	if !errors.As(err, &ierr) || ierr.Component != "config" {
		t.Errorf("New with bad config = %v, want config InitError", err)
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Error("InitError should unwrap to ErrInvalidConfig")
	}
}

func TestHandleEvent_Typing(t *testing.T) {
	app, _ := newTestApp(t)
	p := app.ActivePanel()

	for _, r := range "hi!" {
		if err := app.HandleEvent(p, keyRune(r)); err != nil {
			t.Fatalf("HandleEvent(%q) = %v", r, err)
		}
	}
	if got := line(t, p, 0); got != "hi!" {
		t.Errorf("line = %q, want %q", got, "hi!")
	}

	if err := app.HandleEvent(p, backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace}); err != nil {
		t.Fatal(err)
	}
	if got := line(t, p, 0); got != "hi" {
		t.Errorf("line after backspace = %q, want %q", got, "hi")
	}

	if err := app.HandleEvent(p, backend.Event{Type: backend.EventKey, Key: backend.KeyTab}); err != nil {
		t.Fatal(err)
	}
	if got := line(t, p, 0); got != "hi\t" {
		t.Errorf("line after tab = %q, want %q", got, "hi\t")
	}
}

func TestHandleEvent_ModifiedRunesIgnored(t *testing.T) {
	app, _ := newTestApp(t)
	p := app.ActivePanel()

	ev := keyRune('x')
	ev.Mod = backend.ModAlt
	if err := app.HandleEvent(p, ev); err != nil {
		t.Fatal(err)
	}
	if got := line(t, p, 0); got != "" {
		t.Errorf("line = %q, want empty", got)
	}
}

func TestHandleEvent_BackspaceOnEmpty(t *testing.T) {
	app, _ := newTestApp(t)
	p := app.ActivePanel()

	if err := app.HandleEvent(p, backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace}); err != nil {
		t.Errorf("backspace on empty line = %v, want nil", err)
	}
}

func TestHandleEvent_Paste(t *testing.T) {
	app, _ := newTestApp(t)
	p := app.ActivePanel()

	err := app.HandleEvent(p, backend.Event{Type: backend.EventPaste, PasteText: "one\r\ntwo\nthree"})
	if err != nil {
		t.Fatal(err)
	}
	if got := line(t, p, 0); got != "onetwothree" {
		t.Errorf("line = %q, want %q", got, "onetwothree")
	}
	if p.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", p.LineCount())
	}
}

func TestHandleEvent_Quit(t *testing.T) {
	app, _ := newTestApp(t)
	p := app.ActivePanel()

	for _, k := range []backend.Key{backend.KeyEscape, backend.KeyCtrlC, backend.KeyCtrlQ} {
		err := app.HandleEvent(p, backend.Event{Type: backend.EventKey, Key: k})
		if !errors.Is(err, ErrQuit) {
			t.Errorf("key %d: HandleEvent = %v, want ErrQuit", k, err)
		}
	}
}

func TestHandleEvent_Resize(t *testing.T) {
	app, _ := newTestApp(t)
	p := app.ActivePanel()

	if err := app.HandleEvent(p, backend.Event{Type: backend.EventResize, Width: 80, Height: 24}); err != nil {
		t.Fatal(err)
	}
	if r := p.Rect(); r.Width != 80 || r.Height != 24 {
		t.Errorf("Rect() = %+v, want 80x24", r)
	}
}

func TestHandleEvent_OutOfRangeIgnored(t *testing.T) {
	app, _ := newTestApp(t)
	p := app.ActivePanel()
	p.SetCursor(engine.Position{Line: 1})

	if err := app.HandleEvent(p, keyRune('a')); err != nil {
		t.Errorf("HandleEvent = %v, want nil", err)
	}
	if err := app.HandleEvent(p, backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace}); err != nil {
		t.Errorf("HandleEvent = %v, want nil", err)
	}
	if got := line(t, p, 0); got != "" {
		t.Errorf("line = %q, want unchanged", got)
	}
	if got := app.Metrics().Snapshot().RejectedEdits; got != 2 {
		t.Errorf("RejectedEdits = %d, want 2", got)
	}
}

func TestHandleEvent_TargetsGivenPanel(t *testing.T) {
	app, _ := newTestApp(t)
	second := engine.New()
	idx := app.AddPanel(second)

	if err := app.HandleEvent(second, keyRune('z')); err != nil {
		t.Fatal(err)
	}
	if got := line(t, second, 0); got != "z" {
		t.Errorf("second panel = %q, want z", got)
	}
	if got := line(t, app.ActivePanel(), 0); got != "" {
		t.Errorf("active panel = %q, want untouched", got)
	}

	if err := app.SetActive(idx); err != nil {
		t.Fatal(err)
	}
	if app.ActivePanel() != second || app.ActiveIndex() != idx {
		t.Error("SetActive did not switch panels")
	}
	if err := app.SetActive(5); !errors.Is(err, ErrNoPanel) {
		t.Errorf("SetActive(5) = %v, want ErrNoPanel", err)
	}
}

func TestApplyConfig(t *testing.T) {
	app, _ := newTestApp(t)

	cfg := config.Default()
	cfg.Editor.Measurer = measure.NameGraphemes
	cfg.Editor.WrapWidth = 12
	if err := app.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig = %v", err)
	}
	if app.Config() != cfg {
		t.Error("Config() should return the applied config")
	}
	if got := app.Renderer().Options().WrapWidth; got != 12 {
		t.Errorf("renderer WrapWidth = %d, want 12", got)
	}
	if got := app.Metrics().Snapshot().Reloads; got != 1 {
		t.Errorf("Reloads = %d, want 1", got)
	}

	bad := config.Default()
	bad.Editor.FontSize = -1
	if err := app.ApplyConfig(bad); err == nil {
		t.Error("ApplyConfig with invalid config should fail")
	}
	if app.Config() != cfg {
		t.Error("rejected config must not replace the current one")
	}
}

func TestRun_TypingAndQuit(t *testing.T) {
	app, b := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	b.PostEvent(keyRune('o'))
	b.PostEvent(keyRune('k'))
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyEscape})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Escape")
	}

	if got := line(t, app.ActivePanel(), 0); got != "ok" {
		t.Errorf("line = %q, want ok", got)
	}
	// Run fits the panel to the screen.
	if r := app.ActivePanel().Rect(); r.Width != 20 || r.Height != 5 {
		t.Errorf("Rect() = %+v, want 20x5", r)
	}
	if app.Metrics().Snapshot().RenderCount < 1 {
		t.Error("expected at least one render")
	}
	if got := b.Row(0); got != "ok" {
		t.Errorf("screen row 0 = %q, want ok", got)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app, _ := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	app.Quit()
	app.Quit()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestStripLineBreaks(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"a\nb", "ab"},
		{"a\r\nb\rc", "abc"},
		{"\n", ""},
	}
	for _, tt := range tests {
		if got := stripLineBreaks(tt.in); got != tt.want {
			t.Errorf("stripLineBreaks(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInitError(t *testing.T) {
	err := &InitError{Component: "backend", Err: ErrNoBackend}
	if err.Error() != "init backend: no backend" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNoBackend) {
		t.Error("InitError should unwrap")
	}
}

func TestRender_DrawsEveryPanel(t *testing.T) {
	b := backend.NewNullBackend(20, 5)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	app, err := New(Options{Backend: b})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { app.Close() })

	first := app.ActivePanel()
	first.SetRect(engine.Rect{Width: 10, Height: 2})
	second := engine.New(engine.WithRect(engine.Rect{Y: 2, Width: 10, Height: 2}))
	app.AddPanel(second)

	if err := app.HandleEvent(first, keyRune('a')); err != nil {
		t.Fatal(err)
	}
	if err := app.HandleEvent(second, keyRune('b')); err != nil {
		t.Fatal(err)
	}

	app.Render()
	if got := b.Row(0); got != "a" {
		t.Errorf("row 0 = %q, want first panel", got)
	}
	if got := b.Row(2); got != "b" {
		t.Errorf("row 2 = %q, want second panel", got)
	}
	if x, y, _ := b.CursorPosition(); x != 1 || y != 0 {
		t.Errorf("cursor = (%d, %d), want the active panel's (1, 0)", x, y)
	}
}

func TestRender_PixelMeasurersWrapInCells(t *testing.T) {
	for _, name := range []string{measure.NameMonospace, measure.NameFont} {
		t.Run(name, func(t *testing.T) {
			b := backend.NewNullBackend(80, 5)
			if err := b.Init(); err != nil {
				t.Fatal(err)
			}
			cfg := config.Default()
			cfg.Editor.Measurer = name
			app, err := New(Options{Config: cfg, Backend: b})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			t.Cleanup(func() { app.Close() })

			p := app.ActivePanel()
			p.SetRect(engine.Rect{Width: 80, Height: 5})
			if err := p.AddText("hello world"); err != nil {
				t.Fatal(err)
			}

			app.Render()
			if got := b.Row(0); got != "hello world" {
				t.Errorf("row 0 = %q, want %q", got, "hello world")
			}
			if got := b.Row(1); got != "" {
				t.Errorf("row 1 = %q, want empty", got)
			}
		})
	}
}
