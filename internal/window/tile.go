package window

// State is a window's tile placement policy (spec §4.3).
type State int

const (
	Regular State = iota
	Maximized
	Minimized
	TileLeft
	TileRight
	TileTop
	TileTopLeft
	TileTopRight
	TileBottom
	TileBottomLeft
	TileBottomRight
)

func (s State) String() string {
	switch s {
	case Regular:
		return "Regular"
	case Maximized:
		return "Maximized"
	case Minimized:
		return "Minimized"
	case TileLeft:
		return "TileLeft"
	case TileRight:
		return "TileRight"
	case TileTop:
		return "TileTop"
	case TileTopLeft:
		return "TileTopLeft"
	case TileTopRight:
		return "TileTopRight"
	case TileBottom:
		return "TileBottom"
	case TileBottomLeft:
		return "TileBottomLeft"
	case TileBottomRight:
		return "TileBottomRight"
	default:
		return "State(?)"
	}
}

// Direction is a Super+Arrow key used to drive the tile-state machine.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

type transitionKind int

const (
	noop transitionKind = iota
	gotoState
	restore
	maximizeDirect
)

type transition struct {
	kind   transitionKind
	target State
}

// tileTable is the authoritative transition table of spec §4.3. Entries
// absent for a (State, Direction) pair (e.g. every entry for Minimized)
// default to noop: Super+Arrow has no effect on a minimized window,
// which matches spec §9's open question (iii) about Minimized windows
// being left alone by placement changes.
var tileTable = map[State]map[Direction]transition{
	Regular: {
		DirLeft:  {gotoState, TileLeft},
		DirRight: {gotoState, TileRight},
		DirUp:    {gotoState, TileTop},
		DirDown:  {gotoState, TileBottom},
	},
	Maximized: {
		DirLeft:  {gotoState, TileLeft},
		DirRight: {gotoState, TileRight},
		DirUp:    {restore, Regular},
		DirDown:  {gotoState, TileTop},
	},
	TileLeft: {
		DirLeft:  {noop, TileLeft},
		DirRight: {restore, Regular},
		DirUp:    {gotoState, TileTopLeft},
		DirDown:  {gotoState, TileBottomLeft},
	},
	TileRight: {
		DirLeft:  {restore, Regular},
		DirRight: {noop, TileRight},
		DirUp:    {gotoState, TileTopRight},
		DirDown:  {gotoState, TileBottomRight},
	},
	TileTop: {
		DirLeft:  {gotoState, TileTopLeft},
		DirRight: {gotoState, TileTopRight},
		DirUp:    {maximizeDirect, Maximized},
		DirDown:  {restore, Regular},
	},
	TileTopLeft: {
		DirLeft:  {noop, TileTopLeft},
		DirRight: {gotoState, TileTop},
		DirUp:    {noop, TileTopLeft},
		DirDown:  {gotoState, TileLeft},
	},
	TileTopRight: {
		DirLeft:  {gotoState, TileTop},
		DirRight: {noop, TileTopRight},
		DirUp:    {noop, TileTopRight},
		DirDown:  {gotoState, TileRight},
	},
	TileBottom: {
		DirLeft:  {gotoState, TileBottomLeft},
		DirRight: {gotoState, TileBottomRight},
		DirUp:    {restore, Regular},
		DirDown:  {noop, TileBottom},
	},
	TileBottomLeft: {
		DirLeft:  {noop, TileBottomLeft},
		DirRight: {gotoState, TileBottom},
		DirUp:    {gotoState, TileLeft},
		DirDown:  {noop, TileBottomLeft},
	},
	TileBottomRight: {
		DirLeft:  {gotoState, TileBottom},
		DirRight: {noop, TileBottomRight},
		DirUp:    {gotoState, TileRight},
		DirDown:  {noop, TileBottomRight},
	},
}

// ApplyTile drives the tile-state machine one step for dir, recomputing
// geometry against (screenW, screenH). It is a pure function of
// (current state, direction, screen size): repeated application of the
// same direction from the same state is idempotent wherever the table
// marks a no-op.
func (w *Window) ApplyTile(dir Direction, screenW, screenH int) {
	row, ok := tileTable[w.Tile]
	if !ok {
		return
	}
	t, ok := row[dir]
	if !ok || t.kind == noop {
		return
	}
	switch t.kind {
	case restore:
		w.restoreGeometry()
	case maximizeDirect:
		w.Tile = Maximized
		w.Geometry = tileGeometry(Maximized, screenW, screenH)
	case gotoState:
		if w.Tile == Regular {
			w.saveGeometry()
		}
		w.Tile = t.target
		w.Geometry = tileGeometry(t.target, screenW, screenH)
	}
}

// Maximize toggles between Maximized and Regular (restoring saved
// geometry), used by the title-bar double-click gesture, Alt+F10, and
// the maximize title-bar button (spec §4.4).
func (w *Window) Maximize(screenW, screenH int) {
	if w.Tile == Maximized {
		w.restoreGeometry()
		return
	}
	if w.Tile == Regular {
		w.saveGeometry()
	}
	w.Tile = Maximized
	w.Geometry = tileGeometry(Maximized, screenW, screenH)
}

func (w *Window) saveGeometry() {
	w.saved = w.Geometry
	w.hasSaved = true
}

func (w *Window) restoreGeometry() {
	w.Tile = Regular
	if w.hasSaved {
		w.Geometry = w.saved
	}
}

// SavedGeometry reports the saved geometry and whether one has ever been
// recorded (used by tests asserting the restore round-trip property).
func (w *Window) SavedGeometry() (Geometry, bool) {
	return w.saved, w.hasSaved
}

// Restore sets Tile to Regular and, if a geometry was ever saved,
// reinstates it. Exported for the pointer drag state machine, which
// restores a tiled window before re-centering it under the pointer
// mid-drag (spec §4.4 TitleMove).
func (w *Window) Restore() {
	w.restoreGeometry()
}

// ApplyEdgeSnap sets the tile state directly to s (saving the current
// geometry first if leaving Regular) and recomputes geometry against
// (screenW, screenH). Used by the edge-snap drag gesture, which snaps
// by pointer position rather than by stepping through the direction
// table (spec §4.4 TitleMove / §8 scenario 4).
func (w *Window) ApplyEdgeSnap(s State, screenW, screenH int) {
	if w.Tile == Regular {
		w.saveGeometry()
	}
	w.Tile = s
	w.Geometry = tileGeometry(s, screenW, screenH)
}

// tileGeometry computes the on-screen rectangle for state against a
// screen of size (screenW, screenH). Left/Right split at screenW/2 with
// the right half absorbing the remainder pixel; Top/Bottom split
// likewise on screenH/2; corners are quarter rectangles (spec §4.3).
func tileGeometry(s State, screenW, screenH int) Geometry {
	leftW := screenW / 2
	rightW := screenW - leftW
	topH := screenH / 2
	botH := screenH - topH
	switch s {
	case Maximized:
		return Geometry{0, 0, screenW, screenH}
	case TileLeft:
		return Geometry{0, 0, leftW, screenH}
	case TileRight:
		return Geometry{leftW, 0, rightW, screenH}
	case TileTop:
		return Geometry{0, 0, screenW, topH}
	case TileBottom:
		return Geometry{0, topH, screenW, botH}
	case TileTopLeft:
		return Geometry{0, 0, leftW, topH}
	case TileTopRight:
		return Geometry{leftW, 0, rightW, topH}
	case TileBottomLeft:
		return Geometry{0, topH, leftW, botH}
	case TileBottomRight:
		return Geometry{leftW, topH, rightW, botH}
	default:
		return Geometry{}
	}
}

// ApplyResolutionChange re-applies the window's current tile rule
// against a new screen size so tiled windows track the new resolution.
// Regular windows whose origin is now off-screen snap to (0, 0).
// Minimized windows are left untouched (spec §9, open question iii,
// resolved as: preserve the literal current behavior).
func (w *Window) ApplyResolutionChange(screenW, screenH int) {
	switch w.Tile {
	case Minimized:
		return
	case Regular:
		if w.Geometry.Left >= screenW || w.Geometry.Top >= screenH ||
			w.Geometry.Left < 0 || w.Geometry.Top < 0 {
			w.Geometry.Left, w.Geometry.Top = 0, 0
		}
	default:
		w.Geometry = tileGeometry(w.Tile, screenW, screenH)
	}
}
