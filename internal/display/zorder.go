package display

// LinkAtTop links h as the new top of the Z-order. Precondition: h is
// not already linked (spec §4.4 link_at_top).
func (d *Display) LinkAtTop(h Handle) {
	d.zorder = append(d.zorder, h)
}

func (d *Display) indexOf(h Handle) int {
	for i, cur := range d.zorder {
		if cur == h {
			return i
		}
	}
	return -1
}

// Unlink removes h from the Z-order (spec §4.4 unlink). A no-op if h is
// not linked.
func (d *Display) Unlink(h Handle) {
	i := d.indexOf(h)
	if i < 0 {
		return
	}
	d.zorder = append(d.zorder[:i], d.zorder[i+1:]...)
}

// UnlinkForRemoval advances tab_candidate away from h (to the window
// below it, or to the new top, or clears it if h was the only window),
// clears active focus if h was active, and unlinks h (spec §4.4
// unlink_for_removal).
func (d *Display) UnlinkForRemoval(h Handle) {
	if d.hasCandidate && d.tabCandidate == h {
		i := d.indexOf(h)
		switch {
		case i > 0:
			d.tabCandidate = d.zorder[i-1]
		case len(d.zorder) > 1:
			d.tabCandidate = d.zorder[len(d.zorder)-1]
			if d.tabCandidate == h {
				d.hasCandidate = false
			}
		default:
			d.hasCandidate = false
		}
	}
	if d.hasActive && d.active == h {
		d.hasActive = false
		d.active = Handle{}
	}
	d.Unlink(h)
}

// SetActive un-focuses the prior active window (synthesizing key-up
// events for every bit still set in its held-key bitmap via src), marks
// h focused, and moves h to the top of the Z-order (spec §4.3's focus
// handoff, §4.4 set_active).
func (d *Display) SetActive(h Handle, src WindowSource, sink EventSink) {
	if d.hasActive && d.active != h {
		if prev := src.Lookup(d.active); prev != nil {
			prev.Decoration.Focused = false
			for _, code := range prev.DrainHeldKeys() {
				sink.SendKeyboard(d.active, KeyEvent{Code: code, Down: false})
			}
			prev.Render()
		}
	}
	d.active = h
	d.hasActive = true
	if w := src.Lookup(h); w != nil {
		w.Decoration.Focused = true
		w.Render()
	}
	d.Unlink(h)
	d.LinkAtTop(h)
	d.Redraw = true
}

// Active returns the focused window's handle, if any.
func (d *Display) Active() (Handle, bool) {
	return d.active, d.hasActive
}

// TabCandidate returns the Alt-Tab preview target, if any.
func (d *Display) TabCandidate() (Handle, bool) {
	return d.tabCandidate, d.hasCandidate
}

// ZOrder returns the Z-order list bottom-to-top. Callers must not
// retain or mutate the returned slice across further Display mutation.
func (d *Display) ZOrder() []Handle {
	return d.zorder
}

// WellFormed reports whether the Z-list invariants of spec §8 hold:
// active_window and tab_candidate, if set, are members of the list.
// (The list itself is a slice, so "doubly-linked well-formedness" is
// true by construction; this only checks the weak-reference invariant
// a slice representation can still violate.)
func (d *Display) WellFormed() bool {
	if d.hasActive && d.indexOf(d.active) < 0 {
		return false
	}
	if d.hasCandidate && d.indexOf(d.tabCandidate) < 0 {
		return false
	}
	return true
}
