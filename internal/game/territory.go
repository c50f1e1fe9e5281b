package game

// Territory labels every cell with the player whose king's exclusion zone
// covers it, or ColorFree. Only the labelled player may build inside a zone.
type Territory struct {
	Rows, Cols int
	labels     []Color
}

// NewTerritory creates a map with every cell free.
func NewTerritory(rows, cols int) *Territory {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	t := &Territory{Rows: rows, Cols: cols, labels: make([]Color, rows*cols)}
	for i := range t.labels {
		t.labels[i] = ColorFree
	}
	return t
}

func (t *Territory) inBounds(r, c int) bool {
	return r >= 0 && r < t.Rows && c >= 0 && c < t.Cols
}

// Label returns the label of (r, c). Cells off the map read as free.
func (t *Territory) Label(r, c int) Color {
	if !t.inBounds(r, c) {
		return ColorFree
	}
	return t.labels[r*t.Cols+c]
}

// Mark claims every cell within Manhattan distance dist of (kr, kc) for owner.
// Cells already claimed by an earlier king are overwritten.
func (t *Territory) Mark(kr, kc int, owner Color, dist int) {
	for r := kr - dist; r <= kr+dist; r++ {
		for c := kc - dist; c <= kc+dist; c++ {
			if !t.inBounds(r, c) {
				continue
			}
			if abs(r-kr)+abs(c-kc) <= dist {
				t.labels[r*t.Cols+c] = owner
			}
		}
	}
}

// CanBuild reports whether owner may build on (r, c).
func (t *Territory) CanBuild(r, c int, owner Color) bool {
	l := t.Label(r, c)
	return l == ColorFree || l == owner
}

// Count returns how many cells carry label l.
func (t *Territory) Count(l Color) int {
	n := 0
	for _, v := range t.labels {
		if v == l {
			n++
		}
	}
	return n
}

// KingSeat is where a player's king starts.
type KingSeat struct {
	Player   int
	Color    Color
	Row, Col int
}

// KingSeats returns the king layout for a player count: one corner when
// playing alone, the two ends of the middle row for two players, and all four
// corners for four. Any other count yields nil.
func KingSeats(numPlayers, rows, cols int) []KingSeat {
	switch numPlayers {
	case 1:
		return []KingSeat{{0, ColorBlue, 0, 0}}
	case 2:
		mid := (rows - 1) / 2
		return []KingSeat{
			{0, ColorBlue, mid, 0},
			{1, ColorRed, mid, cols - 1},
		}
	case 4:
		return []KingSeat{
			{0, ColorBlue, 0, 0},
			{1, ColorRed, rows - 1, 0},
			{2, ColorGreen, 0, cols - 1},
			{3, ColorGoldenrod, rows - 1, cols - 1},
		}
	}
	return nil
}

// ComputeTerritory marks each king's zone in player order. A solo game has
// no opponents to keep out, so nothing is marked.
func ComputeTerritory(numPlayers int, seats []KingSeat, rows, cols, dist int) *Territory {
	t := NewTerritory(rows, cols)
	if numPlayers < 2 {
		return t
	}
	for _, s := range seats {
		t.Mark(s.Row, s.Col, s.Color, dist)
	}
	return t
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
