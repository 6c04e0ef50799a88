package display

import (
	"display/internal/bitfont"
	"display/internal/pixel"
	"display/internal/window"
)

var (
	cursorColor    = pixel.Opaque(0xff, 0xff, 0xff)
	announcementFg = pixel.Opaque(0xff, 0xff, 0xff)
	announcementBg = pixel.RGBA(0, 0, 0, 0xff)
)

const cursorSize = 12

// Render composites wallpaper, windows bottom-to-top, and the cursor
// (or the shutdown announcement) into Output, if Redraw is set (spec
// §4.5). Returns whether a frame was actually produced.
func (d *Display) Render(src WindowSource) bool {
	if !d.Redraw {
		return false
	}
	pixel.Copy(d.Output, d.Wallpaper)

	if msg, ok := d.Announcement(); ok {
		d.renderAnnouncement(msg)
		d.Redraw = false
		return true
	}

	for _, h := range d.zorder {
		w := src.Lookup(h)
		if w == nil || !w.Decoration.Show || w.Tile == window.Minimized {
			continue
		}
		// When the window is partly off-screen to the left/top, the
		// destination crop drops those leading pixels; the source must
		// drop the same leading columns/rows so the two stay aligned.
		offsetX, offsetY := 0, 0
		if w.Geometry.Left < 0 {
			offsetX = -w.Geometry.Left
		}
		if w.Geometry.Top < 0 {
			offsetY = -w.Geometry.Top
		}
		dst := d.Output.Crop(w.Geometry.Left, w.Geometry.Top, w.Geometry.Width, w.Geometry.Height)
		src := w.Buffer.Crop(offsetX, offsetY, w.Buffer.Width, w.Buffer.Height)
		pixel.Blend(dst, src)
	}

	d.renderCursor()
	d.Redraw = false
	return true
}

func (d *Display) renderAnnouncement(msg string) {
	textW := bitfont.MeasureString(msg)
	x := (d.ScreenW - textW) / 2
	y := (d.ScreenH - bitfont.GlyphHeight) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	bitfont.DrawString(d.Output, x+1, y+1, msg, announcementBg, 0)
	bitfont.DrawString(d.Output, x, y, msg, announcementFg, 0)
}

func (d *Display) renderCursor() {
	x, y := d.PointerX, d.PointerY
	for dy := 0; dy < cursorSize; dy++ {
		for dx := 0; dx < cursorSize-dy; dx++ {
			d.Output.Set(x+dx, y+dy, cursorColor)
		}
	}
}
