package display

import (
	"time"

	"display/internal/window"
)

const mouseAlwaysOneBit = 0x08 // byte0 bit3, PS/2-style sync bit

// FeedMousePacketByte accumulates raw pointer-device bytes into 3-byte
// packets and drives the pointer state machine once a packet completes.
// A leading byte missing the "always 1" sync bit is discarded so the
// accumulator resynchronizes after a dropped byte (spec §4.4, §6).
func (d *Display) FeedMousePacketByte(b byte, now time.Time, src WindowSource, sink EventSink) {
	if d.mouseAccumLen == 0 && b&mouseAlwaysOneBit == 0 {
		return
	}
	d.mouseAccum[d.mouseAccumLen] = b
	d.mouseAccumLen++
	if d.mouseAccumLen < 3 {
		return
	}
	d.mouseAccumLen = 0
	d.processMousePacket(d.mouseAccum, now, src, sink)
}

func decodeMousePacket(p [3]byte) (leftDown bool, dx, dy int) {
	b0, b1, b2 := p[0], p[1], p[2]
	leftDown = b0&0x01 != 0
	dx = int(b1) - int((int(b0)<<4)&0x100)
	dy = int(b2) - int((int(b0)<<3)&0x100)
	return
}

// accelerate applies the nonlinear pointer acceleration of spec §4.4.
// The thresholds are checked in sequence against the CURRENT (possibly
// already-doubled) magnitude rather than the original deltas: this is
// the literal, order-preserving behavior called out as an open
// question in spec §9(i), deliberately kept rather than "fixed" to a
// single-pass check against the original (dx, dy).
func accelerate(dx, dy int) (int, int) {
	if dx*dx+dy*dy >= 4 {
		dx *= 2
		dy *= 2
	}
	if dx*dx+dy*dy >= 25 {
		dx *= 3
		dy *= 3
	}
	return dx, dy
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (d *Display) processMousePacket(p [3]byte, now time.Time, src WindowSource, sink EventSink) {
	leftDown, rawDx, rawDy := decodeMousePacket(p)
	dx, dy := accelerate(rawDx, rawDy)

	oldX, oldY := d.PointerX, d.PointerY
	newX := clamp(oldX+dx, 0, d.ScreenW)
	newY := clamp(oldY+dy, 0, d.ScreenH)

	target, targetWin, hasTarget := d.topmostAt(oldX, oldY, src)

	switch {
	case leftDown && !d.prevLeftDown:
		d.beginDrag(target, targetWin, hasTarget, oldX, oldY, now)
	case !leftDown && d.prevLeftDown:
		d.endDrag(src, sink)
	case leftDown && (dx != 0 || dy != 0):
		d.continueDrag(newX, newY, dx, dy, src)
	}

	d.PointerX, d.PointerY = newX, newY
	d.prevLeftDown = leftDown
}

// hitBounds returns a window's hit-test rectangle, expanded by
// window.ResizeGrace on every side except for Maximized windows, which
// use a zero margin (spec §4.4).
func hitBounds(w *window.Window) (left, top, right, bottom int) {
	margin := window.ResizeGrace
	if w.Tile == window.Maximized {
		margin = 0
	}
	g := w.Geometry
	return g.Left - margin, g.Top - margin, g.Left + g.Width + margin, g.Top + g.Height + margin
}

func (d *Display) topmostAt(x, y int, src WindowSource) (h Handle, w *window.Window, ok bool) {
	for i := len(d.zorder) - 1; i >= 0; i-- {
		cand := d.zorder[i]
		cw := src.Lookup(cand)
		if cw == nil || !cw.Decoration.Show {
			continue
		}
		l, t, r, b := hitBounds(cw)
		if x >= l && x < r && y >= t && y < b {
			return cand, cw, true
		}
	}
	return Handle{}, nil, false
}

func (d *Display) beginDrag(target Handle, w *window.Window, hasTarget bool, x, y int, now time.Time) {
	if !hasTarget {
		d.drag = DragNone
		return
	}
	d.dragTarget = target
	localX, localY := x-w.Geometry.Left, y-w.Geometry.Top

	if b, ok := w.HitButton(localX, localY); ok {
		d.drag = DragButtonPress
		d.dragButton = b
		w.Decoration.Buttons[b] = window.ButtonPressed
		w.Render()
		return
	}
	if d.Modifiers.LeftAlt || w.OnTitleBar(localX, localY) {
		if w.RegisterTitlePress(now) {
			w.Maximize(d.ScreenW, d.ScreenH)
			w.Render()
			d.drag = DragIgnore
			return
		}
		d.drag = DragTitleMove
		d.dragGrabX, d.dragGrabY = localX, localY
		return
	}
	if dir, ok := resizeDirection(w, x, y); ok {
		d.drag = dir
		return
	}
	d.drag = DragNone
}

// resizeDirection reports the compass resize state for a point within
// window.ResizeGrace of w's edges, outside its own bounds.
func resizeDirection(w *window.Window, x, y int) (DragState, bool) {
	g := w.Geometry
	const m = window.ResizeGrace
	left := x < g.Left
	right := x >= g.Left+g.Width
	top := y < g.Top
	bottom := y >= g.Top+g.Height
	if !left && !right && !top && !bottom {
		return DragNone, false
	}
	if x < g.Left-m || x > g.Left+g.Width+m || y < g.Top-m || y > g.Top+g.Height+m {
		return DragNone, false
	}
	switch {
	case top && left:
		return DragResizeTopLeft, true
	case top && right:
		return DragResizeTopRight, true
	case bottom && left:
		return DragResizeBottomLeft, true
	case bottom && right:
		return DragResizeBottomRight, true
	case top:
		return DragResizeTop, true
	case bottom:
		return DragResizeBottom, true
	case left:
		return DragResizeLeft, true
	case right:
		return DragResizeRight, true
	}
	return DragNone, false
}

func edgeSnapState(x, y, screenW, screenH int) (window.State, bool) {
	atLeft, atRight := x <= 0, x >= screenW
	atTop, atBottom := y <= 0, y >= screenH
	switch {
	case atTop && atLeft:
		return window.TileTopLeft, true
	case atTop && atRight:
		return window.TileTopRight, true
	case atBottom && atLeft:
		return window.TileBottomLeft, true
	case atBottom && atRight:
		return window.TileBottomRight, true
	case atLeft:
		return window.TileLeft, true
	case atRight:
		return window.TileRight, true
	case atTop:
		return window.TileTop, true
	case atBottom:
		return window.TileBottom, true
	}
	return window.Regular, false
}

func (d *Display) continueDrag(newX, newY, dx, dy int, src WindowSource) {
	w := src.Lookup(d.dragTarget)
	if w == nil {
		d.drag = DragNone
		return
	}
	switch d.drag {
	case DragTitleMove:
		if state, clipped := edgeSnapState(newX, newY, d.ScreenW, d.ScreenH); clipped {
			w.ApplyEdgeSnap(state, d.ScreenW, d.ScreenH)
			d.Redraw = true
			return
		}
		if w.Tile == window.Regular {
			w.Geometry.Left += dx
			w.Geometry.Top += dy
		} else {
			w.Restore()
			w.Geometry.Left = newX - d.dragGrabX
			w.Geometry.Top = newY - d.dragGrabY
		}
		d.Redraw = true
	case DragResizeTop:
		w.DragResize(0, dy, 0, -dy)
		d.Redraw = true
	case DragResizeBottom:
		w.DragResize(0, 0, 0, dy)
		d.Redraw = true
	case DragResizeLeft:
		w.DragResize(dx, 0, -dx, 0)
		d.Redraw = true
	case DragResizeRight:
		w.DragResize(0, 0, dx, 0)
		d.Redraw = true
	case DragResizeTopLeft:
		w.DragResize(dx, dy, -dx, -dy)
		d.Redraw = true
	case DragResizeTopRight:
		w.DragResize(0, dy, dx, -dy)
		d.Redraw = true
	case DragResizeBottomLeft:
		w.DragResize(dx, 0, -dx, dy)
		d.Redraw = true
	case DragResizeBottomRight:
		w.DragResize(0, 0, dx, dy)
		d.Redraw = true
	case DragButtonPress:
		localX, localY := newX-w.Geometry.Left, newY-w.Geometry.Top
		if b, ok := w.HitButton(localX, localY); !ok || b != d.dragButton {
			w.Decoration.Buttons[d.dragButton] = window.ButtonNormal
			w.Render()
			d.drag = DragIgnore
			d.Redraw = true
		}
	}
}

func (d *Display) endDrag(src WindowSource, sink EventSink) {
	defer func() { d.drag = DragNone }()

	if d.drag != DragButtonPress {
		return
	}
	w := src.Lookup(d.dragTarget)
	if w == nil {
		return
	}
	localX, localY := d.PointerX-w.Geometry.Left, d.PointerY-w.Geometry.Top
	b, ok := w.HitButton(localX, localY)
	w.Decoration.Buttons[d.dragButton] = window.ButtonNormal
	if !ok || b != d.dragButton {
		w.Render()
		return
	}
	switch d.dragButton {
	case window.ButtonMinimize:
		w.Tile = window.Minimized
	case window.ButtonMaximize:
		w.Maximize(d.ScreenW, d.ScreenH)
	case window.ButtonClose:
		sink.SendQuit(d.dragTarget)
	}
	w.Render()
	d.Redraw = true
}
