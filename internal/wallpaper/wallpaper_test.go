package wallpaper

import (
	"testing"

	"display/internal/pixel"
)

func TestPaintDeterministic(t *testing.T) {
	a := pixel.NewView(64, 48)
	b := pixel.NewView(64, 48)
	Paint(a)
	Paint(b)
	for i := range a.Buf {
		if a.Buf[i] != b.Buf[i] {
			t.Fatalf("wallpaper not deterministic at index %d: %v != %v", i, a.Buf[i], b.Buf[i])
		}
	}
}

func TestPaintProducesVariation(t *testing.T) {
	v := pixel.NewView(64, 48)
	Paint(v)
	seenBase, seenAccent := false, false
	for _, p := range v.Buf {
		switch p {
		case base:
			seenBase = true
		case accent:
			seenAccent = true
		}
	}
	if !seenBase || !seenAccent {
		t.Fatal("wallpaper did not mix both tones over a 64x48 view")
	}
}
