package display

import (
	"testing"

	"display/internal/window"
)

func TestCtrlAltDeleteInitiatesShutdown(t *testing.T) {
	d := newTestDisplay(800, 600)
	src := newFakeSource()
	sink := &fakeSink{}
	h, _ := src.add(1, 0)
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)

	d.HandleKeyEvent(KeyEvent{Code: KeyLeftCtrl, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyLeftAlt, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyDelete, Down: true}, src, sink)

	if d.Running {
		t.Fatal("Ctrl+Alt+Delete did not stop the display")
	}
	if d.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", d.ExitCode)
	}
	msg, ok := d.Announcement()
	if !ok || msg == "" {
		t.Fatal("no shutdown announcement set")
	}
}

func TestAltF4SendsQuitAndSwallows(t *testing.T) {
	d := newTestDisplay(800, 600)
	src := newFakeSource()
	sink := &fakeSink{}
	h, _ := src.add(1, 0)
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)

	d.HandleKeyEvent(KeyEvent{Code: KeyLeftAlt, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyF4, Down: true}, src, sink)

	if len(sink.quit) != 1 || sink.quit[0] != h {
		t.Fatalf("quit events = %v, want [%v]", sink.quit, h)
	}
	if len(sink.keyboard) != 0 {
		t.Fatal("Alt+F4 forwarded a keyboard event instead of being swallowed")
	}
}

func TestAltF10TogglesMaximize(t *testing.T) {
	d := newTestDisplay(1024, 768)
	src := newFakeSource()
	sink := &fakeSink{}
	h, w := src.add(1, 0)
	w.ClientResize(400, 300)
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)

	d.HandleKeyEvent(KeyEvent{Code: KeyLeftAlt, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyF10, Down: true}, src, sink)
	if w.Tile != window.Maximized {
		t.Fatalf("tile state = %v, want Maximized", w.Tile)
	}
	d.HandleKeyEvent(KeyEvent{Code: KeyF10, Down: true}, src, sink)
	if w.Tile != window.Regular {
		t.Fatalf("tile state after second Alt+F10 = %v, want Regular", w.Tile)
	}
}

func TestAltTabCyclesAndCommitsOnRelease(t *testing.T) {
	d := newTestDisplay(800, 600)
	src := newFakeSource()
	sink := &fakeSink{}
	a, wa := src.add(1, 0)
	b, _ := src.add(2, 0)
	d.LinkAtTop(a)
	d.LinkAtTop(b)
	d.SetActive(a, src, sink)

	wa.SetKeyDown(42)

	d.HandleKeyEvent(KeyEvent{Code: KeyLeftAlt, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyTab, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyTab, Down: false}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyLeftAlt, Down: false}, src, sink)

	active, ok := d.Active()
	if !ok || active != b {
		t.Fatalf("active after Alt-Tab cycle = (%v,%v), want (%v,true)", active, ok, b)
	}
	order := d.ZOrder()
	if order[len(order)-1] != b {
		t.Fatalf("Z-order top after Alt-Tab = %v, want %v", order[len(order)-1], b)
	}
	if order[0] != a {
		t.Fatalf("Z-order bottom after Alt-Tab = %v, want %v", order[0], a)
	}
	foundKeyUp := false
	for _, ev := range sink.keyboard {
		if ev.h == a && ev.ev.Code == 42 && !ev.ev.Down {
			foundKeyUp = true
		}
	}
	if !foundKeyUp {
		t.Fatal("no synthesized key-up for the held key on the previously active window")
	}
}

func TestSuperArrowTilesFocusedWindow(t *testing.T) {
	d := newTestDisplay(800, 600)
	src := newFakeSource()
	sink := &fakeSink{}
	h, w := src.add(1, 0)
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)

	d.HandleKeyEvent(KeyEvent{Code: KeyLeftMeta, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyLeft, Down: true}, src, sink)

	if w.Tile != window.TileLeft {
		t.Fatalf("tile state = %v, want TileLeft", w.Tile)
	}
}

func TestF11F12ToggleInputGrab(t *testing.T) {
	d := newTestDisplay(800, 600)
	src := newFakeSource()
	sink := &fakeSink{}
	h, w := src.add(1, 0)
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)

	d.HandleKeyEvent(KeyEvent{Code: KeyF11, Down: true}, src, sink)
	if !w.Decoration.InputGrab {
		t.Fatal("F11 did not set input-grab")
	}
	d.HandleKeyEvent(KeyEvent{Code: KeyF12, Down: true}, src, sink)
	if w.Decoration.InputGrab {
		t.Fatal("F12 did not clear input-grab")
	}
}

func TestInputGrabSuppressesGlobalShortcuts(t *testing.T) {
	d := newTestDisplay(800, 600)
	src := newFakeSource()
	sink := &fakeSink{}
	h, w := src.add(1, 0)
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)
	w.Decoration.InputGrab = true

	d.HandleKeyEvent(KeyEvent{Code: KeyLeftAlt, Down: true}, src, sink)
	d.HandleKeyEvent(KeyEvent{Code: KeyF4, Down: true}, src, sink)

	if len(sink.quit) != 0 {
		t.Fatal("Alt+F4 fired despite the focused window holding input-grab")
	}
	foundForward := false
	for _, ev := range sink.keyboard {
		if ev.h == h && ev.ev.Code == KeyF4 {
			foundForward = true
		}
	}
	if !foundForward {
		t.Fatal("F4 was not forwarded to the grabbing window")
	}
}

func TestNonShortcutKeyForwardsAndUpdatesHeldBitmap(t *testing.T) {
	d := newTestDisplay(800, 600)
	src := newFakeSource()
	sink := &fakeSink{}
	h, w := src.add(1, 0)
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)

	d.HandleKeyEvent(KeyEvent{Code: 30, Rune: 'a', Down: true}, src, sink)
	if !w.HeldKeys[30] {
		t.Fatal("held-key bitmap not updated for a forwarded key-down")
	}
	if len(sink.keyboard) != 1 || sink.keyboard[0].ev.Code != 30 {
		t.Fatalf("keyboard events = %v, want one event for code 30", sink.keyboard)
	}
}
