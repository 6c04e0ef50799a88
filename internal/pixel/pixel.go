// Package pixel implements the framebuffer primitives: a packed 32-bit
// pixel type and a pitch-aware view into a shared pixel buffer.
package pixel

// Pixel is a 32-bit value packed as 0xAARRGGBB. On-screen pixels carry
// alpha 0xFF (opaque); the alpha channel is meaningful only as
// intermediate state during Blend.
type Pixel uint32

// RGBA packs straight (non-premultiplied) 8-bit channels into a Pixel.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Opaque packs an on-screen (alpha-less) color.
func Opaque(r, g, b uint8) Pixel {
	return RGBA(r, g, b, 0xFF)
}

func (p Pixel) A() uint8 { return uint8(p >> 24) }
func (p Pixel) R() uint8 { return uint8(p >> 16) }
func (p Pixel) G() uint8 { return uint8(p >> 8) }
func (p Pixel) B() uint8 { return uint8(p) }

// View is a value type carrying (width, height, pitch, buffer). Crop
// yields a sub-view sharing the same backing buffer; pitch may exceed
// width so a cropped view needn't touch the backing buffer.
//
// Invariant: Width <= Pitch. All reads/writes clip silently on
// out-of-range coordinates.
type View struct {
	Width, Height int
	Pitch         int
	Buf           []Pixel
	// origin is the offset in Buf of (0,0) of this view, expressed in
	// pixels (not bytes): Buf[origin + y*Pitch + x] is (x, y).
	origin int
}

// NewView allocates an owning view of the given size, with pitch equal
// to width.
func NewView(width, height int) View {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return View{
		Width:  width,
		Height: height,
		Pitch:  width,
		Buf:    make([]Pixel, width*height),
	}
}

// Crop returns a sub-view with origin (dx, dy) relative to v's origin,
// sized (w, h) clipped to the remaining extent of v. The returned view
// shares v's backing buffer.
func (v View) Crop(dx, dy, w, h int) View {
	if dx < 0 {
		w += dx
		dx = 0
	}
	if dy < 0 {
		h += dy
		dy = 0
	}
	if dx > v.Width {
		dx = v.Width
	}
	if dy > v.Height {
		dy = v.Height
	}
	if maxW := v.Width - dx; w > maxW {
		w = maxW
	}
	if maxH := v.Height - dy; h > maxH {
		h = maxH
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return View{
		Width:  w,
		Height: h,
		Pitch:  v.Pitch,
		Buf:    v.Buf,
		origin: v.origin + dy*v.Pitch + dx,
	}
}

// Get returns the pixel at (x, y), or 0 if out of range.
func (v View) Get(x, y int) Pixel {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return 0
	}
	return v.Buf[v.origin+y*v.Pitch+x]
}

// Set writes the pixel at (x, y); out of range is a silent no-op.
func (v View) Set(x, y int, p Pixel) {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return
	}
	v.Buf[v.origin+y*v.Pitch+x] = p
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Copy performs an opaque copy of min(dst, src) extent from src to dst.
func Copy(dst, src View) {
	w := minInt(dst.Width, src.Width)
	h := minInt(dst.Height, src.Height)
	for y := 0; y < h; y++ {
		drow := dst.origin + y*dst.Pitch
		srow := src.origin + y*src.Pitch
		copy(dst.Buf[drow:drow+w], src.Buf[srow:srow+w])
	}
}

// Blend alpha-composites src over dst using the straight-alpha formula
// out = src.rgb + dst.rgb*(1-src.a) (src.rgb is taken as-is, not
// premultiplied by the caller); output alpha is always opaque. Extent
// is min(dst, src).
func Blend(dst, src View) {
	w := minInt(dst.Width, src.Width)
	h := minInt(dst.Height, src.Height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := src.Get(x, y)
			a := s.A()
			if a == 0xFF {
				dst.Set(x, y, Opaque(s.R(), s.G(), s.B()))
				continue
			}
			if a == 0 {
				continue
			}
			d := dst.Get(x, y)
			inv := uint32(0xFF - a)
			r := clamp8(uint32(s.R()) + uint32(d.R())*inv/0xFF)
			g := clamp8(uint32(s.G()) + uint32(d.G())*inv/0xFF)
			b := clamp8(uint32(s.B()) + uint32(d.B())*inv/0xFF)
			dst.Set(x, y, Opaque(r, g, b))
		}
	}
}

func clamp8(v uint32) uint8 {
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}
