package display

import (
	"github.com/rs/zerolog"

	"display/internal/window"
)

func discardLogger() zerolog.Logger {
	return zerolog.Nop()
}

// fakeSource is a WindowSource backed by a plain map, standing in for
// the per-Connection window table a real Connection would own.
type fakeSource struct {
	windows map[Handle]*window.Window
}

func newFakeSource() *fakeSource {
	return &fakeSource{windows: make(map[Handle]*window.Window)}
}

func (s *fakeSource) Lookup(h Handle) *window.Window {
	return s.windows[h]
}

func (s *fakeSource) add(connID, id uint32) (Handle, *window.Window) {
	h := Handle{ConnID: connID, WindowID: id}
	w := window.New(connID, id)
	s.windows[h] = w
	return h, w
}

// fakeSink records every outbound event so tests can assert on them.
type fakeSink struct {
	resized  []Handle
	keyboard []struct {
		h  Handle
		ev KeyEvent
	}
	quit []Handle
}

func (s *fakeSink) SendResize(h Handle, width, height int) {
	s.resized = append(s.resized, h)
}

func (s *fakeSink) SendKeyboard(h Handle, ev KeyEvent) {
	s.keyboard = append(s.keyboard, struct {
		h  Handle
		ev KeyEvent
	}{h, ev})
}

func (s *fakeSink) SendQuit(h Handle) {
	s.quit = append(s.quit, h)
}

func newTestDisplay(screenW, screenH int) *Display {
	return New(screenW, screenH, Hooks{}, discardLogger())
}
