package window

import "testing"

// TestTileTransitionTable walks every (state, direction) pair and checks
// the resulting state matches the authoritative table, including that
// every noop entry is idempotent under repeated application.
func TestTileTransitionTable(t *testing.T) {
	const screenW, screenH = 1920, 1080

	for state, row := range tileTable {
		for dir, tr := range row {
			w := New(0, 1)
			w.Tile = state
			w.Geometry = tileGeometry(state, screenW, screenH)
			if state != Regular {
				w.saveGeometry()
				w.hasSaved = true
			}

			w.ApplyTile(dir, screenW, screenH)

			var want State
			switch tr.kind {
			case noop:
				want = state
			case restore:
				want = Regular
			case maximizeDirect:
				want = Maximized
			case gotoState:
				want = tr.target
			}
			if w.Tile != want {
				t.Fatalf("ApplyTile(%v, %v) from %v = %v, want %v", state, dir, state, w.Tile, want)
			}

			if tr.kind == noop {
				before := w.Geometry
				w.ApplyTile(dir, screenW, screenH)
				if w.Tile != want || w.Geometry != before {
					t.Fatalf("noop transition for (%v, %v) is not idempotent", state, dir)
				}
			}
		}
	}
}

// TestTileTransitionTableCoversAllStatesButMinimized asserts every
// non-Minimized state has all four directions mapped, since an absent
// entry silently degrades to noop and would be easy to typo away.
func TestTileTransitionTableCoversAllStatesButMinimized(t *testing.T) {
	allStates := []State{
		Regular, Maximized, TileLeft, TileRight, TileTop,
		TileTopLeft, TileTopRight, TileBottom, TileBottomLeft, TileBottomRight,
	}
	allDirs := []Direction{DirLeft, DirRight, DirUp, DirDown}
	for _, s := range allStates {
		row, ok := tileTable[s]
		if !ok {
			t.Fatalf("state %v missing from tileTable entirely", s)
		}
		for _, d := range allDirs {
			if _, ok := row[d]; !ok {
				t.Fatalf("state %v missing direction %v", s, d)
			}
		}
	}
	if _, ok := tileTable[Minimized]; ok {
		t.Fatal("Minimized should have no table entry (defaults to noop)")
	}
}

func TestTileUpFromTopGoesDirectlyToMaximized(t *testing.T) {
	w := New(0, 1)
	w.Tile = TileTop
	w.Geometry = tileGeometry(TileTop, 1920, 1080)
	w.ApplyTile(DirUp, 1920, 1080)
	if w.Tile != Maximized {
		t.Fatalf("TileTop + Up = %v, want Maximized", w.Tile)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	cases := []State{Regular, TileLeft, TileRight, TileTop, TileBottom}
	for _, start := range cases {
		w := New(0, 1)
		w.ClientResize(300, 200)
		w.Geometry.Left, w.Geometry.Top = 17, 23
		original := w.Geometry
		if start != Regular {
			// Entering the tile from Regular saves original.
			w.ApplyEdgeSnap(start, 1920, 1080)
		}

		w.Maximize(1920, 1080)
		if w.Tile != Maximized {
			t.Fatalf("start=%v: Maximize did not set Maximized, got %v", start, w.Tile)
		}
		w.Maximize(1920, 1080)
		if w.Tile != Regular {
			t.Fatalf("start=%v: second Maximize toggle = %v, want Regular", start, w.Tile)
		}
		if w.Geometry != original {
			t.Fatalf("start=%v: restored geometry = %+v, want %+v", start, w.Geometry, original)
		}
	}
}

func TestRestoreRoundTripViaTileDirections(t *testing.T) {
	w := New(0, 1)
	w.ClientResize(300, 200)
	w.Geometry.Left, w.Geometry.Top = 5, 5
	original := w.Geometry

	w.ApplyTile(DirLeft, 1920, 1080)
	if w.Tile != TileLeft {
		t.Fatalf("ApplyTile(DirLeft) from Regular = %v, want TileLeft", w.Tile)
	}
	w.ApplyTile(DirRight, 1920, 1080)
	if w.Tile != Regular {
		t.Fatalf("ApplyTile(DirRight) from TileLeft = %v, want Regular", w.Tile)
	}
	if w.Geometry != original {
		t.Fatalf("restored geometry = %+v, want %+v", w.Geometry, original)
	}
}

func TestApplyResolutionChangeLeavesMinimizedAlone(t *testing.T) {
	w := New(0, 1)
	w.Tile = Minimized
	w.Geometry = Geometry{Left: 5000, Top: 5000, Width: 10, Height: 10}
	before := w.Geometry
	w.ApplyResolutionChange(800, 600)
	if w.Geometry != before {
		t.Fatalf("ApplyResolutionChange moved a Minimized window: %+v -> %+v", before, w.Geometry)
	}
}

func TestApplyResolutionChangeSnapsOffscreenRegular(t *testing.T) {
	w := New(0, 1)
	w.ClientResize(100, 100)
	w.Tile = Regular
	w.Geometry.Left, w.Geometry.Top = 5000, 5000
	w.ApplyResolutionChange(800, 600)
	if w.Geometry.Left != 0 || w.Geometry.Top != 0 {
		t.Fatalf("offscreen Regular window not snapped: (%d,%d)", w.Geometry.Left, w.Geometry.Top)
	}
}

func TestApplyResolutionChangeRecomputesTiled(t *testing.T) {
	w := New(0, 1)
	w.Tile = TileRight
	w.Geometry = tileGeometry(TileRight, 800, 600)
	w.ApplyResolutionChange(1920, 1080)
	want := tileGeometry(TileRight, 1920, 1080)
	if w.Geometry != want {
		t.Fatalf("TileRight geometry after resolution change = %+v, want %+v", w.Geometry, want)
	}
}
