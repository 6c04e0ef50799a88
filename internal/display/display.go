// Package display owns the global scene: the window Z-order, focus,
// pointer drag state machine, keyboard modifier tracking, and the frame
// compositor. Windows are addressed by a (ConnID, WindowID) Handle
// rather than a pointer; the Window body itself is owned by its
// Connection, and Display only ever holds handles, resolved through a
// WindowSource at the point of use (spec §9's cyclic-Z-list redesign
// note — arena-index handles instead of raw back-pointers).
package display

import (
	"github.com/rs/zerolog"

	"display/internal/pixel"
	"display/internal/wallpaper"
	"display/internal/window"
)

// Handle identifies a window owned by some Connection. It is the only
// thing Display ever stores about a window's identity; everything else
// is fetched through a WindowSource.
type Handle struct {
	ConnID   uint32
	WindowID uint32
}

// WindowSource resolves a Handle to the Window it names. Returns nil if
// the handle no longer refers to a live window.
type WindowSource interface {
	Lookup(h Handle) *window.Window
}

// KeyEvent is a decoded keyboard event: a scan code and whether it is a
// key-down (true) or key-up (false), plus the Unicode rune it produces
// when relevant (0 for pure control keys).
type KeyEvent struct {
	Code int
	Rune rune
	Down bool
}

// EventSink delivers outbound protocol events triggered by Display
// state changes. Implemented by the connection layer.
type EventSink interface {
	SendResize(h Handle, width, height int)
	SendKeyboard(h Handle, ev KeyEvent)
	SendQuit(h Handle)
}

// Hooks are fire-and-forget external collaborators (spec §7: their
// failure is logged and ignored, never propagated). Nil fields fall
// back to a default.
type Hooks struct {
	SpawnTerminal    func() error
	AnnouncementText func(code int) string
}

// DragState is the pointer gesture in progress.
type DragState int

const (
	DragNone DragState = iota
	DragIgnore
	DragButtonPress
	DragTitleMove
	DragResizeTop
	DragResizeBottom
	DragResizeLeft
	DragResizeRight
	DragResizeTopLeft
	DragResizeTopRight
	DragResizeBottomLeft
	DragResizeBottomRight
)

// Modifiers tracks the subset of keyboard modifiers Display cares
// about for global shortcuts (spec §4.4, §3).
type Modifiers struct {
	LeftCtrl   bool
	LeftAlt    bool
	LeftSuper  bool
	RightSuper bool
}

// Display is the process-wide scene-state singleton, passed explicitly
// to every handler rather than referenced as module-level mutable state
// (spec §9 "Global mutable state" redesign note).
type Display struct {
	Log zerolog.Logger

	zorder       []Handle
	active       Handle
	hasActive    bool
	tabCandidate Handle
	hasCandidate bool

	PointerX, PointerY int
	Modifiers          Modifiers

	drag           DragState
	dragTarget     Handle
	dragButton     window.Button
	dragGrabX      int
	dragGrabY      int
	prevLeftDown   bool
	mouseAccum     [3]byte
	mouseAccumLen  int

	ScreenW, ScreenH int
	Output           pixel.View
	Wallpaper        pixel.View

	Running  bool
	ExitCode int

	announcement    string
	hasAnnouncement bool
	Redraw          bool

	nextCascade int

	hooks Hooks
}

// New returns a Display sized to (screenW, screenH), with an empty
// Z-order and no focus.
func New(screenW, screenH int, hooks Hooks, log zerolog.Logger) *Display {
	d := &Display{
		ScreenW:  screenW,
		ScreenH:  screenH,
		Output:   pixel.NewView(screenW, screenH),
		Wallpaper: pixel.NewView(screenW, screenH),
		Running:  true,
		Redraw:   true,
		hooks:    hooks,
		Log:      log,
	}
	wallpaper.Paint(d.Wallpaper)
	return d
}

// NextCascadePosition returns the next window placement position and
// advances the cascade, wrapping at 60% of min(ScreenW, ScreenH) (spec
// §4.3 window_initialize).
func (d *Display) NextCascadePosition() (x, y int) {
	limit := d.ScreenW
	if d.ScreenH < limit {
		limit = d.ScreenH
	}
	limit = limit * 6 / 10
	if limit <= 0 {
		limit = 1
	}
	pos := d.nextCascade
	d.nextCascade = (d.nextCascade + 30) % limit
	return pos, pos
}

func (d *Display) announcementFor(code int) string {
	if d.hooks.AnnouncementText != nil {
		return d.hooks.AnnouncementText(code)
	}
	return defaultAnnouncement(code)
}

func defaultAnnouncement(code int) string {
	switch code {
	case 0:
		return "Powering off…"
	case 1:
		return "Rebooting…"
	case 2:
		return "Halting…"
	case 3:
		return "Reinitializing…"
	case 4:
		return "Logging out…"
	default:
		return "Exiting…"
	}
}

// Exit records the exit code, composes the shutdown announcement via
// the (possibly hooked) init-service query, and schedules a final
// redraw (spec §4.5). The caller (server event loop) is responsible
// for performing exactly one more render-and-submit cycle and then
// returning from main.
func (d *Display) Exit(code int) {
	d.Running = false
	d.ExitCode = code
	d.announcement = d.announcementFor(code)
	d.hasAnnouncement = true
	d.Redraw = true
}

// Announcement reports the current shutdown message, if any.
func (d *Display) Announcement() (string, bool) {
	return d.announcement, d.hasAnnouncement
}

// ApplyResolutionChange reallocates Output/Wallpaper and repaints the
// wallpaper when the viewport size changes, then re-applies every
// window's current tile rule so tiled windows track the new size
// (spec §4.3, §4.5). Call with the new mode whenever it changes.
func (d *Display) ApplyResolutionChange(screenW, screenH int, src WindowSource) {
	if screenW == d.ScreenW && screenH == d.ScreenH {
		return
	}
	d.ScreenW, d.ScreenH = screenW, screenH
	d.Output = pixel.NewView(screenW, screenH)
	d.Wallpaper = pixel.NewView(screenW, screenH)
	wallpaper.Paint(d.Wallpaper)
	for _, h := range d.zorder {
		if w := src.Lookup(h); w != nil {
			w.ApplyResolutionChange(screenW, screenH)
		}
	}
	d.Redraw = true
}
