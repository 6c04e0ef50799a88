// Package window implements the per-client Window: its pixel buffer,
// decoration state, geometry, and tile-state machine (spec §4.3).
package window

import (
	"time"

	"display/internal/pixel"
)

// Layout constants for the decoration frame a Window adds around the
// client's content area.
const (
	Border      = 4
	TitleHeight = 24

	// MaxWindows is the per-connection window-id ceiling (spec §3/§5).
	MaxWindows = 256

	// narrowTitleWidth is the width below which title-text centering is
	// compressed away from the button strip (spec §4.3).
	narrowTitleWidth = 500

	// doubleClickWindow is the maximum gap between two title-bar presses
	// that counts as a double-click (spec §4.4).
	doubleClickWindow = 500 * time.Millisecond

	// ResizeGrace is the margin outside a window's edge that still
	// counts as a resize-grip hit (spec §4.4).
	ResizeGrace = 6
)

// ButtonState is the visual state of one of the three title-bar buttons.
type ButtonState uint8

const (
	ButtonNormal ButtonState = iota
	ButtonHover
	ButtonPressed
)

// Button indexes the three title-bar buttons in their left-to-right
// logical order.
type Button int

const (
	ButtonMinimize Button = iota
	ButtonMaximize
	ButtonClose
	buttonCount
)

// Geometry is a window's on-screen placement. Left/Top may be negative
// (a window may be partly off-screen); Width/Height are the full
// decorated extent (client content plus border and title bar).
type Geometry struct {
	Left, Top     int
	Width, Height int
}

// Decoration holds everything the compositor needs to draw a window's
// chrome: title, button visuals, and user-facing flags.
type Decoration struct {
	Title      string
	Buttons    [buttonCount]ButtonState
	Focused    bool
	Show       bool
	InputGrab  bool
	lastPress  time.Time
	hasPressed bool
}

// Window is one client's window: a pixel buffer, geometry, decoration
// state, and tile-state machine. A Window exists iff Created is true and
// it is linked into exactly one Connection's window table and the
// Display's Z-order list; those links are tracked by the owning
// packages (display, conn), not here, per the "indices not pointers"
// redesign (see DESIGN.md).
type Window struct {
	ConnID uint32 // identifies the owning Connection (opaque to this package)
	ID     uint32 // client-supplied id, in [0, MaxWindows)
	Created bool

	Geometry Geometry
	// ClientW/ClientH is the content area size, excluding decoration.
	ClientW, ClientH int

	saved      Geometry
	hasSaved   bool
	Tile       State

	Decoration Decoration

	// Buffer is the window's own pixel buffer, sized
	// (ClientW+2*Border) x (ClientH+TitleHeight+Border). The interior
	// rectangle (see ContentRect) is where client-submitted pixels land;
	// everything outside it is decoration, drawn by Render.
	Buffer pixel.View

	// HeldKeys tracks which of the 512 key codes are currently down, so
	// a focus change can synthesize the matching key-up events (spec
	// §4.3).
	HeldKeys [512]bool
}

// New returns a freshly initialized Window for id, not yet placed or
// linked into any Z-order. Cascade placement and Z-list linking are the
// caller's (display package's) responsibility, per spec §4.3's
// window_initialize.
func New(connID, id uint32) *Window {
	w := &Window{
		ConnID:  connID,
		ID:      id,
		Created: true,
		Tile:    Regular,
	}
	w.Decoration.Show = true
	w.ClientResize(0, 0)
	return w
}

// ContentRect returns the interior rectangle of Buffer that holds
// client-submitted pixels, in Buffer-local coordinates.
func (w *Window) ContentRect() (left, top, width, height int) {
	return Border, TitleHeight, w.ClientW, w.ClientH
}

// ClientResize reallocates the pixel buffer for a new client content
// size, preserving as much of the previous content as overlaps (spec
// §4.3). It forces Tile to Regular unless the window is Minimized and
// renders the new frame; the caller is responsible for emitting the
// resize event and scheduling a redraw.
func (w *Window) ClientResize(clientW, clientH int) {
	if clientW < 0 {
		clientW = 0
	}
	if clientH < 0 {
		clientH = 0
	}
	old := w.Buffer
	newW := clientW + 2*Border
	newH := clientH + TitleHeight + Border
	next := pixel.NewView(newW, newH)

	if old.Width > 0 && old.Height > 0 {
		// Preserve overlapping content, including decoration pixels,
		// by a straight per-pixel copy; out-of-range reads clip to 0
		// via pixel.View.Get.
		for y := 0; y < newH; y++ {
			for x := 0; x < newW; x++ {
				next.Set(x, y, old.Get(x, y))
			}
		}
	}

	w.ClientW, w.ClientH = clientW, clientH
	w.Buffer = next
	w.Geometry.Width = newW
	w.Geometry.Height = newH

	if w.Tile != Minimized {
		w.Tile = Regular
	}
	w.Render()
}

// DragResize first moves the window by (dLeft, dTop) if nonzero, then
// resizes the client area by (dW, dH), floored at 1x1 (spec §4.3).
func (w *Window) DragResize(dLeft, dTop, dW, dH int) {
	if dLeft != 0 || dTop != 0 {
		w.Geometry.Left += dLeft
		w.Geometry.Top += dTop
	}
	newW := w.ClientW + dW
	newH := w.ClientH + dH
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	w.ClientResize(newW, newH)
}

// SetKeyDown/SetKeyUp maintain the held-key bitmap (spec §4.3). Codes
// outside [0, 512) are ignored.
func (w *Window) SetKeyDown(code int) {
	if code >= 0 && code < len(w.HeldKeys) {
		w.HeldKeys[code] = true
	}
}

func (w *Window) SetKeyUp(code int) {
	if code >= 0 && code < len(w.HeldKeys) {
		w.HeldKeys[code] = false
	}
}

// DrainHeldKeys returns the codes currently marked down and clears the
// bitmap. Called on focus handoff so the caller can synthesize a key-up
// event for each (spec §4.3, testable property "focus handoff clears
// keys").
func (w *Window) DrainHeldKeys() []int {
	var codes []int
	for i, held := range w.HeldKeys {
		if held {
			codes = append(codes, i)
			w.HeldKeys[i] = false
		}
	}
	return codes
}

// RegisterTitlePress records a title-bar press for double-click
// detection and reports whether it completes a double-click (two
// presses within doubleClickWindow).
func (w *Window) RegisterTitlePress(now time.Time) (doubleClick bool) {
	d := &w.Decoration
	if d.hasPressed && now.Sub(d.lastPress) <= doubleClickWindow {
		d.hasPressed = false
		return true
	}
	d.lastPress = now
	d.hasPressed = true
	return false
}

// TitleBarRect returns the title bar's rectangle in Buffer-local
// coordinates.
func (w *Window) TitleBarRect() (left, top, width, height int) {
	return 0, 0, w.Geometry.Width, TitleHeight
}

// ButtonRect returns the rectangle of the given title-bar button. The
// strip is right-aligned, so if the title bar is narrower than the
// button strip the leftmost buttons get a negative x.
func (w *Window) ButtonRect(b Button) (left, top, width, height int) {
	stripStart := w.buttonStripStart()
	x := stripStart + int(b)*TitleHeight
	return x, 0, TitleHeight, TitleHeight
}

// buttonStripStart returns the x coordinate where the three title-bar
// buttons begin.
func (w *Window) buttonStripStart() int {
	return w.Geometry.Width - int(buttonCount)*TitleHeight
}

// HitButton reports which button, if any, contains the Buffer-local
// point (x, y).
func (w *Window) HitButton(x, y int) (Button, bool) {
	if y < 0 || y >= TitleHeight {
		return 0, false
	}
	stripStart := w.buttonStripStart()
	if x < stripStart {
		return 0, false
	}
	idx := (x - stripStart) / TitleHeight
	if idx < 0 || idx >= int(buttonCount) {
		return 0, false
	}
	return Button(idx), true
}

// OnTitleBar reports whether the Buffer-local point (x, y) is on the
// title bar and to the left of the button strip (the draggable region).
func (w *Window) OnTitleBar(x, y int) bool {
	if y < 0 || y >= TitleHeight {
		return false
	}
	return x >= 0 && x < w.buttonStripStart()
}

// titleTextX computes the x origin for title text of the given pixel
// width, compressing the centering region away from the button strip
// when the window is narrow (spec §4.3).
func (w *Window) titleTextX(textWidth int) int {
	stripStart := w.buttonStripStart()
	if w.Geometry.Width < narrowTitleWidth {
		x := (stripStart - textWidth) / 2
		if x < 0 {
			x = 0
		}
		return x
	}
	x := (w.Geometry.Width - textWidth) / 2
	if x+textWidth > stripStart {
		x = stripStart - textWidth
	}
	if x < 0 {
		x = 0
	}
	return x
}
