package display

import "display/internal/window"

// Linux evdev scan codes for the keys Display's global shortcuts care
// about (linux/input-event-codes.h), matching the raw codes the
// keyboard TTY reader (internal/devinput) decodes from the wire.
const (
	KeyLeftCtrl  = 29
	KeyLeftAlt   = 56
	KeyLeftMeta  = 125
	KeyRightMeta = 126
	KeyTab       = 15
	KeyT         = 20
	KeyDelete    = 111
	KeyF4        = 62
	KeyF10       = 68
	KeyF11       = 87
	KeyF12       = 88
	KeyLeft      = 105
	KeyRight     = 106
	KeyUp        = 103
	KeyDown      = 108
)

// HandleKeyEvent updates modifier state, dispatches global shortcuts
// (unless the focused window has input-grab), and forwards
// non-swallowed keys to the focused window (spec §4.4).
func (d *Display) HandleKeyEvent(ev KeyEvent, src WindowSource, sink EventSink) {
	d.updateModifier(ev, src, sink)

	focused, hasFocus := d.active, d.hasActive
	var focusedWin *window.Window
	if hasFocus {
		focusedWin = src.Lookup(focused)
	}

	grabbed := focusedWin != nil && focusedWin.Decoration.InputGrab
	if !grabbed && d.dispatchShortcut(ev, focused, focusedWin, hasFocus, src, sink) {
		return
	}

	if !hasFocus || focusedWin == nil {
		return
	}
	if ev.Down {
		focusedWin.SetKeyDown(ev.Code)
	} else {
		focusedWin.SetKeyUp(ev.Code)
	}
	sink.SendKeyboard(focused, ev)
}

func (d *Display) updateModifier(ev KeyEvent, src WindowSource, sink EventSink) {
	switch ev.Code {
	case KeyLeftCtrl:
		d.Modifiers.LeftCtrl = ev.Down
	case KeyLeftAlt:
		d.Modifiers.LeftAlt = ev.Down
		if !ev.Down && d.hasCandidate {
			d.commitTabCandidate(src, sink)
		}
	case KeyLeftMeta:
		d.Modifiers.LeftSuper = ev.Down
	case KeyRightMeta:
		d.Modifiers.RightSuper = ev.Down
	}
}

// dispatchShortcut handles one global shortcut if ev matches one,
// returning true if the keystroke was swallowed.
func (d *Display) dispatchShortcut(ev KeyEvent, focused Handle, focusedWin *window.Window, hasFocus bool, src WindowSource, sink EventSink) bool {
	if !ev.Down {
		return false
	}
	switch {
	case ev.Code == KeyDelete && d.Modifiers.LeftCtrl && d.Modifiers.LeftAlt:
		d.Exit(0)
		return true
	case ev.Code == KeyT && d.Modifiers.LeftCtrl && d.Modifiers.LeftAlt:
		d.spawnTerminal()
		return true
	case ev.Code == KeyF4 && d.Modifiers.LeftAlt:
		if hasFocus {
			sink.SendQuit(focused)
		}
		return true
	case ev.Code == KeyF10 && d.Modifiers.LeftAlt:
		if focusedWin != nil {
			focusedWin.Maximize(d.ScreenW, d.ScreenH)
			focusedWin.Render()
			d.Redraw = true
		}
		return true
	case ev.Code == KeyTab && d.Modifiers.LeftAlt:
		d.advanceTabCandidate(src)
		return true
	case (ev.Code == KeyLeft || ev.Code == KeyRight || ev.Code == KeyUp || ev.Code == KeyDown) &&
		(d.Modifiers.LeftSuper || d.Modifiers.RightSuper):
		if focusedWin != nil {
			focusedWin.ApplyTile(superArrowDirection(ev.Code), d.ScreenW, d.ScreenH)
			focusedWin.Render()
			d.Redraw = true
		}
		return true
	case ev.Code == KeyF11:
		if focusedWin != nil {
			focusedWin.Decoration.InputGrab = true
			focusedWin.Render()
			d.Redraw = true
		}
		return true
	case ev.Code == KeyF12:
		if focusedWin != nil {
			focusedWin.Decoration.InputGrab = false
			focusedWin.Render()
			d.Redraw = true
		}
		return true
	}
	return false
}

func superArrowDirection(code int) window.Direction {
	switch code {
	case KeyLeft:
		return window.DirLeft
	case KeyRight:
		return window.DirRight
	case KeyUp:
		return window.DirUp
	default:
		return window.DirDown
	}
}

// advanceTabCandidate moves tab_candidate to the window below the
// current candidate, wrapping to the top, and schedules a re-render of
// both the old and new candidate frames (spec §4.4 Alt+Tab).
func (d *Display) advanceTabCandidate(src WindowSource) {
	if len(d.zorder) == 0 {
		return
	}
	base := d.active
	baseOK := d.hasActive
	if d.hasCandidate {
		base = d.tabCandidate
		baseOK = true
	}
	var next Handle
	if !baseOK {
		next = d.zorder[len(d.zorder)-1]
	} else {
		i := d.indexOf(base)
		switch {
		case i < 0:
			next = d.zorder[len(d.zorder)-1]
		case i == 0:
			next = d.zorder[len(d.zorder)-1]
		default:
			next = d.zorder[i-1]
		}
	}
	d.tabCandidate = next
	d.hasCandidate = true
	if baseOK {
		if w := src.Lookup(base); w != nil {
			w.Render()
		}
	}
	if w := src.Lookup(next); w != nil {
		w.Render()
	}
	d.Redraw = true
}

// commitTabCandidate promotes tab_candidate to active on Alt release
// (spec §4.4).
func (d *Display) commitTabCandidate(src WindowSource, sink EventSink) {
	candidate := d.tabCandidate
	d.hasCandidate = false
	d.SetActive(candidate, src, sink)
}

func (d *Display) spawnTerminal() {
	if d.hooks.SpawnTerminal == nil {
		return
	}
	if err := d.hooks.SpawnTerminal(); err != nil {
		d.Log.Warn().Err(err).Msg("spawn terminal failed")
	}
}
