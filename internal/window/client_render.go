package window

import "display/internal/pixel"

// SubmitPixels writes a client-supplied rectangle of pixels into the
// content area at (left, top), sized (width, height). pixels is
// row-major, exactly width*height entries; out-of-range rows/columns
// are silently dropped (spec §8 "No pixel writes out of range": for
// any render_window coordinates the write never escapes the window's
// own buffer, since Set clips).
func (w *Window) SubmitPixels(left, top, width, height int, pixels []pixel.Pixel) {
	contentLeft, contentTop, _, _ := w.ContentRect()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			w.Buffer.Set(contentLeft+left+x, contentTop+top+y, p)
		}
	}
}
