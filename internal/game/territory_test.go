package game

import (
	"math/rand"
	"testing"
)

func TestKingSeats(t *testing.T) {
	if s := KingSeats(1, 15, 29); len(s) != 1 || s[0].Row != 0 || s[0].Col != 0 || s[0].Color != ColorBlue {
		t.Fatalf("solo seats %+v", s)
	}
	two := KingSeats(2, 15, 29)
	if len(two) != 2 || two[0].Row != 7 || two[0].Col != 0 || two[1].Row != 7 || two[1].Col != 28 {
		t.Fatalf("two-player seats %+v", two)
	}
	four := KingSeats(4, 15, 29)
	want := [][2]int{{0, 0}, {14, 0}, {0, 28}, {14, 28}}
	for i, s := range four {
		if s.Row != want[i][0] || s.Col != want[i][1] || s.Color != PlayerColor(i) {
			t.Fatalf("seat %d = %+v", i, s)
		}
	}
	if KingSeats(3, 15, 29) != nil {
		t.Fatal("three players got seats")
	}
}

func TestTerritory_TwoPlayers(t *testing.T) {
	seats := KingSeats(2, 15, 29)
	terr := ComputeTerritory(2, seats, 15, 29, 6)

	cases := []struct {
		r, c int
		want Color
	}{
		{7, 0, ColorBlue},
		{7, 6, ColorBlue},
		{7, 7, ColorFree},
		{1, 0, ColorBlue},
		{0, 0, ColorFree},
		{7, 28, ColorRed},
		{7, 22, ColorRed},
		{7, 14, ColorFree},
		{-1, 3, ColorFree},
	}
	for _, tc := range cases {
		if got := terr.Label(tc.r, tc.c); got != tc.want {
			t.Errorf("Label(%d,%d) = %s, want %s", tc.r, tc.c, got, tc.want)
		}
	}
	if !terr.CanBuild(7, 14, ColorRed) || !terr.CanBuild(7, 3, ColorBlue) || terr.CanBuild(7, 3, ColorRed) {
		t.Fatal("CanBuild disagrees with labels")
	}
	// Diamond of radius 6 clipped to a half plane: 7 + 2*(6+5+4+3+2+1) = 49 cells.
	if n := terr.Count(ColorBlue); n != 49 {
		t.Fatalf("blue zone has %d cells, want 49", n)
	}
}

func TestTerritory_SoloMarksNothing(t *testing.T) {
	terr := ComputeTerritory(1, KingSeats(1, 15, 29), 15, 29, 6)
	if n := terr.Count(ColorFree); n != 15*29 {
		t.Fatalf("%d free cells in a solo game, want all", n)
	}
}

func TestTerritory_LaterKingsOverwrite(t *testing.T) {
	terr := ComputeTerritory(4, KingSeats(4, 3, 3), 3, 3, 4)
	if n := terr.Count(ColorGoldenrod); n != 9 {
		t.Fatalf("goldenrod owns %d cells, want the whole overlapped board", n)
	}
}

func TestBaseWalls_Solo(t *testing.T) {
	grid := NewGrid(15, 29)
	n := GenerateBaseWalls(grid, 1, 16, rand.New(rand.NewSource(3)))
	if n != 16 || grid.Count(KindBaseWall) != 16 {
		t.Fatalf("filled %d, counted %d, want 16", n, grid.Count(KindBaseWall))
	}
	grid.Each(func(r, c int, s Structure) {
		if r == 0 || c == 0 || r == 14 || c == 28 {
			t.Errorf("base wall on the border at (%d,%d)", r, c)
		}
	})
}

func TestBaseWalls_TwoPlayersMirror(t *testing.T) {
	grid := NewGrid(15, 29)
	for _, s := range KingSeats(2, 15, 29) {
		grid.Set(s.Row, s.Col, NewKing(s.Color, 1, 25))
	}
	n := GenerateBaseWalls(grid, 2, 16, rand.New(rand.NewSource(11)))
	if n != 16 {
		t.Fatalf("filled %d, want 16", n)
	}
	grid.Each(func(r, c int, s Structure) {
		if s.Kind() != KindBaseWall {
			return
		}
		m := grid.At(r, 28-c)
		if m == nil || m.Kind() != KindBaseWall {
			t.Errorf("base wall at (%d,%d) has no mirror at (%d,%d)", r, c, r, 28-c)
		}
	})
	if grid.Count(KindKing) != 2 {
		t.Fatal("base walls replaced a king")
	}
}

func TestBaseWalls_FourPlayersMirror(t *testing.T) {
	grid := NewGrid(15, 29)
	n := GenerateBaseWalls(grid, 4, 16, rand.New(rand.NewSource(2)))
	if n != 16 {
		t.Fatalf("filled %d, want 16", n)
	}
	grid.Each(func(r, c int, s Structure) {
		for _, m := range [][2]int{{r, 28 - c}, {14 - r, c}, {14 - r, 28 - c}} {
			if !grid.Occupied(m[0], m[1]) {
				t.Errorf("base wall at (%d,%d) missing mirror (%d,%d)", r, c, m[0], m[1])
			}
		}
	})
}

func TestBaseWalls_CrowdedBoardTerminates(t *testing.T) {
	grid := NewGrid(3, 3)
	if n := GenerateBaseWalls(grid, 1, 10, rand.New(rand.NewSource(1))); n != 1 {
		t.Fatalf("3x3 board fits one interior wall, filled %d", n)
	}
}

func TestBaseWalls_Deterministic(t *testing.T) {
	a := NewGrid(15, 29)
	b := NewGrid(15, 29)
	GenerateBaseWalls(a, 2, 16, rand.New(rand.NewSource(77)))
	GenerateBaseWalls(b, 2, 16, rand.New(rand.NewSource(77)))
	a.Each(func(r, c int, s Structure) {
		if !b.Occupied(r, c) {
			t.Errorf("same seed, different layout at (%d,%d)", r, c)
		}
	})
}
