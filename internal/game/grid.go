package game

// Grid is the authoritative rows x cols board. Each cell holds at most one
// structure. The grid is shared by reference between the collision engine,
// the build rules and the end-of-level actions; nobody keeps a private copy.
type Grid struct {
	Rows  int
	Cols  int
	cells []Structure // row-major: index = row*Cols + col
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{Rows: rows, Cols: cols, cells: make([]Structure, rows*cols)}
}

// InBounds returns true if (r, c) is on the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Rows && c >= 0 && c < g.Cols
}

// At returns the structure at (r, c), or nil for empty or out-of-bounds cells.
func (g *Grid) At(r, c int) Structure {
	if !g.InBounds(r, c) {
		return nil
	}
	return g.cells[r*g.Cols+c]
}

// Occupied returns true if (r, c) holds a structure.
func (g *Grid) Occupied(r, c int) bool {
	return g.At(r, c) != nil
}

// Set places s at (r, c), replacing whatever was there. Out-of-bounds writes are ignored.
func (g *Grid) Set(r, c int, s Structure) {
	if !g.InBounds(r, c) {
		return
	}
	g.cells[r*g.Cols+c] = s
}

// Clear removes the structure at (r, c).
func (g *Grid) Clear(r, c int) {
	g.Set(r, c, nil)
}

// IsProtected reports whether every orthogonal neighbour of (r, c) that exists
// on the grid is occupied. Neighbours off the board don't count against it.
func (g *Grid) IsProtected(r, c int) bool {
	if r > 0 && g.At(r-1, c) == nil {
		return false
	}
	if r < g.Rows-1 && g.At(r+1, c) == nil {
		return false
	}
	if c > 0 && g.At(r, c-1) == nil {
		return false
	}
	if c < g.Cols-1 && g.At(r, c+1) == nil {
		return false
	}
	return true
}

// Each calls fn for every occupied cell in row-major order.
func (g *Grid) Each(fn func(r, c int, s Structure)) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if s := g.cells[r*g.Cols+c]; s != nil {
				fn(r, c, s)
			}
		}
	}
}

// Count returns how many cells hold a structure of the given kind.
func (g *Grid) Count(kind StructureKind) int {
	n := 0
	for _, s := range g.cells {
		if s != nil && s.Kind() == kind {
			n++
		}
	}
	return n
}
