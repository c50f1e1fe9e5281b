package game

import (
	"math"
	"testing"
)

func TestDefaultGeometryFitsLayout(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry()
	if g.CellWidth != cfg.Layout.CellSize || g.CellHeight != cfg.Layout.CellSize {
		t.Fatalf("cell = %vx%v, want %v square", g.CellWidth, g.CellHeight, cfg.Layout.CellSize)
	}

	r := g.CellRect(1, 2)
	if r.X != 8+2*42 || r.Y != 8+42 || r.W != 40 || r.H != 40 {
		t.Fatalf("CellRect(1,2) = %+v", r)
	}
	cx, cy := g.Center()
	w, h := cfg.SurfaceSize()
	if cx != w/2 || cy != h/2 {
		t.Fatalf("centre (%v,%v), want (%v,%v)", cx, cy, w/2, h/2)
	}
}

func TestCellAt(t *testing.T) {
	g := DefaultConfig().Geometry()
	cases := []struct {
		name     string
		x, y     float64
		row, col int
	}{
		{"first cell origin", 8, 8, 0, 0},
		{"inside (3,5)", 8 + 5*42 + 20, 8 + 3*42 + 20, 3, 5},
		{"gap after col 0 belongs to col 0", 8 + 40 + 1, 20, 0, 0},
		{"left inset", 7, 7, -1, -1},
		{"past last column", 8 + 29*42 + 1, 20, 0, 29},
	}
	for _, tc := range cases {
		r, c := g.CellAt(tc.x, tc.y)
		if r != tc.row || c != tc.col {
			t.Errorf("%s: CellAt(%v,%v) = (%d,%d), want (%d,%d)", tc.name, tc.x, tc.y, r, c, tc.row, tc.col)
		}
	}
}

func TestCellAt_DegenerateStride(t *testing.T) {
	g := ComputeGeometry(10, 10, Insets{}, 0, 0, 0, 0)
	r, c := g.CellAt(5, 5)
	if r != math.MinInt32 || c != math.MinInt32 {
		t.Fatalf("zero-stride CellAt = (%d,%d), want MinInt32", r, c)
	}

	// Surface smaller than its insets: negative cells, still no panic.
	g = ComputeGeometry(4, 4, Insets{Left: 8, Top: 8, Right: 8, Bottom: 8}, 2, 2, 3, 3)
	if g.CellWidth >= 0 {
		t.Fatalf("expected negative cell width, got %v", g.CellWidth)
	}
	r, c = g.CellAt(1, 1)
	if r != math.MinInt32 || c != math.MinInt32 {
		t.Fatalf("negative-stride CellAt = (%d,%d), want MinInt32", r, c)
	}
}

func TestGeometryForResizedSurface(t *testing.T) {
	cfg := DefaultConfig()
	w, h := cfg.SurfaceSize()
	g := cfg.GeometryFor(w*2, h*2)
	if g.CellWidth <= cfg.Layout.CellSize || g.CellHeight <= cfg.Layout.CellSize {
		t.Fatalf("doubling the surface did not grow the cells: %vx%v", g.CellWidth, g.CellHeight)
	}
	b := g.ContentBounds()
	if b.X != 8 || b.W != w*2-16 {
		t.Fatalf("content bounds %+v", b)
	}
	last := g.CellRect(cfg.Rows-1, cfg.Cols-1)
	if math.Abs(last.X+last.W-(b.X+b.W)) > 1e-9 {
		t.Fatalf("last column ends at %v, content at %v", last.X+last.W, b.X+b.W)
	}
}
