package game

import "math"

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Insets is the padding between the surface edge and the first row/column of cells.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// GridGeometry maps the continuous playing surface onto the discrete grid.
// It is derived data: recompute it whenever the surface size changes.
type GridGeometry struct {
	Rows, Cols    int
	InsetLeft     float64
	InsetTop      float64
	GapX, GapY    float64
	CellWidth     float64
	CellHeight    float64
	ContentWidth  float64 // surface width minus left/right insets
	ContentHeight float64 // surface height minus top/bottom insets
	SurfaceWidth  float64
	SurfaceHeight float64
}

// ComputeGeometry divides the content area (surface minus insets) into rows x cols
// equal cells separated by gapX/gapY.
//
//	cellWidth = (contentWidth - gapX*(cols-1)) / cols
func ComputeGeometry(surfaceW, surfaceH float64, in Insets, gapX, gapY float64, rows, cols int) GridGeometry {
	g := GridGeometry{
		Rows:          rows,
		Cols:          cols,
		InsetLeft:     in.Left,
		InsetTop:      in.Top,
		GapX:          gapX,
		GapY:          gapY,
		ContentWidth:  surfaceW - in.Left - in.Right,
		ContentHeight: surfaceH - in.Top - in.Bottom,
		SurfaceWidth:  surfaceW,
		SurfaceHeight: surfaceH,
	}
	if cols > 0 {
		g.CellWidth = (g.ContentWidth - gapX*float64(cols-1)) / float64(cols)
	}
	if rows > 0 {
		g.CellHeight = (g.ContentHeight - gapY*float64(rows-1)) / float64(rows)
	}
	return g
}

// CellRect returns the pixel rectangle of cell (r, c). Gaps are not part of any cell.
func (g GridGeometry) CellRect(r, c int) Rect {
	return Rect{
		X: g.InsetLeft + float64(c)*(g.CellWidth+g.GapX),
		Y: g.InsetTop + float64(r)*(g.CellHeight+g.GapY),
		W: g.CellWidth,
		H: g.CellHeight,
	}
}

// CellAt maps a surface point to the cell index whose stride contains it.
// The result may lie outside the grid; callers clip. A non-positive stride
// yields an index far outside any grid.
func (g GridGeometry) CellAt(x, y float64) (row, col int) {
	sx := g.CellWidth + g.GapX
	sy := g.CellHeight + g.GapY
	if !(sx > 0) || !(sy > 0) {
		return math.MinInt32, math.MinInt32
	}
	col = floorIndex((x - g.InsetLeft) / sx)
	row = floorIndex((y - g.InsetTop) / sy)
	return row, col
}

// ContentBounds is the playable bounce region.
func (g GridGeometry) ContentBounds() Rect {
	return Rect{X: g.InsetLeft, Y: g.InsetTop, W: g.ContentWidth, H: g.ContentHeight}
}

// Center returns the centre of the whole surface, where balls spawn.
func (g GridGeometry) Center() (x, y float64) {
	return g.SurfaceWidth / 2, g.SurfaceHeight / 2
}

// floorIndex floors v into an int, saturating instead of overflowing.
func floorIndex(v float64) int {
	f := math.Floor(v)
	switch {
	case math.IsNaN(f):
		return math.MinInt32
	case f < math.MinInt32:
		return math.MinInt32
	case f > math.MaxInt32:
		return math.MaxInt32
	}
	return int(f)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
