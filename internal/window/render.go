package window

import (
	"display/internal/bitfont"
	"display/internal/pixel"
)

// Decoration colors. Kept simple and fixed; the server does not expose
// theming (spec §1 scopes it out implicitly by never mentioning one).
var (
	colorBorder      = pixel.Opaque(0x30, 0x33, 0x3a)
	colorTitleActive = pixel.Opaque(0x2e, 0x5a, 0x9c)
	colorTitleIdle   = pixel.Opaque(0x3a, 0x3d, 0x44)
	colorTitleText   = pixel.Opaque(0xff, 0xff, 0xff)
	colorButton      = pixel.Opaque(0x45, 0x49, 0x52)
	colorButtonHover = pixel.Opaque(0x58, 0x5d, 0x68)
	colorButtonPress = pixel.Opaque(0x23, 0x26, 0x2c)
)

// Render redraws the window's decoration (border and title bar with
// text and buttons) into Buffer, leaving the client content rectangle
// untouched. Called after every client_resize and whenever decoration
// state (title, focus, button visuals) changes (spec §4.3).
func (w *Window) Render() {
	buf := w.Buffer
	titleColor := colorTitleIdle
	if w.Decoration.Focused {
		titleColor = colorTitleActive
	}
	width, height := w.Geometry.Width, w.Geometry.Height

	// Title bar background.
	for y := 0; y < TitleHeight && y < height; y++ {
		for x := 0; x < width; x++ {
			buf.Set(x, y, titleColor)
		}
	}
	// Border: left/right/bottom strips (top edge is the title bar).
	for y := TitleHeight; y < height; y++ {
		for x := 0; x < Border && x < width; x++ {
			buf.Set(x, y, colorBorder)
			buf.Set(width-1-x, y, colorBorder)
		}
	}
	for y := height - Border; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.Set(x, y, colorBorder)
		}
	}

	w.renderButtons(buf)
	w.renderTitleText(buf)
}

func (w *Window) renderButtons(buf pixel.View) {
	for i := Button(0); i < buttonCount; i++ {
		x, y, bw, bh := w.ButtonRect(i)
		if x+bw > w.Geometry.Width {
			continue
		}
		c := colorButton
		switch w.Decoration.Buttons[i] {
		case ButtonHover:
			c = colorButtonHover
		case ButtonPressed:
			c = colorButtonPress
		}
		for dy := 2; dy < bh-2; dy++ {
			for dx := 2; dx < bw-2; dx++ {
				buf.Set(x+dx, y+dy, c)
			}
		}
	}
}

func (w *Window) renderTitleText(buf pixel.View) {
	title := w.Decoration.Title
	if w.Decoration.InputGrab {
		title += " - Input Grabbed"
	}
	textW := bitfont.MeasureString(title)
	x := w.titleTextX(textW)
	y := (TitleHeight - bitfont.GlyphHeight) / 2
	maxX := w.buttonStripStart()
	bitfont.DrawString(buf, x, y, title, colorTitleText, maxX)
}
