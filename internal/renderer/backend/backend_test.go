package backend

import (
	"testing"
	"time"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()

	cell := Cell{Rune: 'X', Width: 1}
	b.SetCell(4, 1, cell)

	if got := b.GetCell(4, 1); got.Rune != 'X' {
		t.Errorf("GetCell(4, 1) = %q, want 'X'", got.Rune)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got.Rune != ' ' {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendRow(t *testing.T) {
	b := NewNullBackend(10, 2)
	b.Init()

	b.SetCell(0, 0, Cell{Rune: 'e', Combining: []rune{'́'}, Width: 1})
	b.SetCell(1, 0, Cell{Rune: '世', Width: 2})
	b.SetCell(2, 0, Cell{Rune: ' ', Width: 0})
	b.SetCell(3, 0, Cell{Rune: 'x', Width: 1})

	if got, want := b.Row(0), "é世x"; got != want {
		t.Errorf("Row(0) = %q, want %q", got, want)
	}
	if got := b.Row(1); got != "" {
		t.Errorf("Row(1) = %q, want empty", got)
	}
	if got := b.Row(5); got != "" {
		t.Errorf("Row(5) = %q, want empty", got)
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(5, 1)
	b.Init()

	b.SetCell(0, 0, Cell{Rune: 'a', Width: 1})
	b.Clear()
	if got := b.Row(0); got != "" {
		t.Errorf("Row(0) after Clear = %q, want empty", got)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.ShowCursor(10, 5)
	x, y, visible := b.CursorPosition()
	if x != 10 || y != 5 || !visible {
		t.Errorf("expected cursor (10, 5, true), got (%d, %d, %v)", x, y, visible)
	}

	b.HideCursor()
	if _, _, visible = b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'a' {
		t.Errorf("PollEvent() = %+v, want key 'a'", ev)
	}
}

func TestNullBackendShutdownUnblocksPoll(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	done := make(chan Event, 1)
	go func() { done <- b.PollEvent() }()

	b.Shutdown()
	b.Shutdown()

	select {
	case ev := <-done:
		if ev.Type != EventNone {
			t.Errorf("PollEvent() after Shutdown = %v, want EventNone", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.Resize(100, 50)
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 50 {
		t.Errorf("PollEvent() = %+v, want resize to 100x50", ev)
	}
	if w, h := b.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = (%d, %d), want (100, 50)", w, h)
	}
}

func TestModMask(t *testing.T) {
	mask := ModCtrl | ModShift

	if !mask.Has(ModCtrl) {
		t.Error("mask should have ModCtrl")
	}
	if !mask.Has(ModShift) {
		t.Error("mask should have ModShift")
	}
	if mask.Has(ModAlt) {
		t.Error("mask should not have ModAlt")
	}
}
