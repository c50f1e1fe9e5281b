package game

import (
	"math"
	"math/rand"
	"testing"
)

func testBoard() (*Grid, GridGeometry) {
	cfg := DefaultConfig()
	return NewGrid(cfg.Rows, cfg.Cols), cfg.Geometry()
}

func TestBallBouncesOffContentBounds(t *testing.T) {
	_, geom := testBoard()
	b := NewBall(geom.InsetLeft+12, 200, -600, 0, 10)
	b.Update(0.01, geom)
	if b.VX != 600 {
		t.Fatalf("vx = %v after hitting the left edge, want 600", b.VX)
	}
	if b.X != geom.InsetLeft+10 {
		t.Fatalf("x = %v, want clamped to %v", b.X, geom.InsetLeft+10)
	}

	bounds := geom.ContentBounds()
	b = NewBall(300, bounds.Y+bounds.H-11, 0, 400, 10)
	b.Update(0.01, geom)
	if b.VY != -400 || b.Y != bounds.Y+bounds.H-10 {
		t.Fatalf("bottom bounce: y=%v vy=%v", b.Y, b.VY)
	}
}

func TestSpawnBallsKeepSpeed(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	balls := SpawnBalls(200, 100, 50, 500, 10, rng)
	if len(balls) != 200 {
		t.Fatalf("spawned %d balls", len(balls))
	}
	for i, b := range balls {
		if b.X != 100 || b.Y != 50 {
			t.Fatalf("ball %d spawned at (%v,%v)", i, b.X, b.Y)
		}
		if math.Abs(b.Speed()-500) > 1e-9 {
			t.Fatalf("ball %d speed %v", i, b.Speed())
		}
	}
	if n := len(SpawnBalls(-3, 0, 0, 1, 1, rng)); n != 0 {
		t.Fatal("negative count should spawn nothing")
	}
}

func TestCollision_ReflectsAndDamages(t *testing.T) {
	grid, geom := testBoard()
	grid.Set(5, 5, NewWall(ColorBlue, 3))
	rect := geom.CellRect(5, 5)
	b := NewBall(rect.X-8, rect.Y+rect.H/2, 500, 0, 10)

	res := ResolveCollision(b, grid, geom)
	if !res.Hit || res.Row != 5 || res.Col != 5 {
		t.Fatalf("expected a hit on (5,5), got %+v", res)
	}
	if res.NX != -1 || res.NY != 0 {
		t.Fatalf("normal (%v,%v), want (-1,0)", res.NX, res.NY)
	}
	if b.VX != -500 || b.VY != 0 {
		t.Fatalf("velocity (%v,%v), want (-500,0)", b.VX, b.VY)
	}
	if b.X != rect.X-10 {
		t.Fatalf("ball not pushed flush: x=%v want %v", b.X, rect.X-10)
	}
	if !b.Collided {
		t.Fatal("Collided not set")
	}
	if res.Effect != HitDamaged || grid.At(5, 5).Lives() != 2 {
		t.Fatalf("effect %s lives %d", res.Effect, grid.At(5, 5).Lives())
	}
}

func TestCollision_DiagonalKeepsSpeed(t *testing.T) {
	grid, geom := testBoard()
	grid.Set(6, 6, NewBaseWall())
	rect := geom.CellRect(6, 6)
	b := NewBall(rect.X-5, rect.Y-5, 300, 400, 10)

	res := ResolveCollision(b, grid, geom)
	if !res.Hit || res.Effect != HitAbsorbed {
		t.Fatalf("corner contact: %+v", res)
	}
	if math.Abs(b.Speed()-500) > 1e-9 {
		t.Fatalf("speed %v after reflection, want 500", b.Speed())
	}
	if s := grid.At(6, 6); s == nil || s.Lives() != InfiniteLives {
		t.Fatal("base wall changed by a hit")
	}
}

func TestCollision_BuriedCentreGoesLeft(t *testing.T) {
	grid, geom := testBoard()
	grid.Set(5, 5, NewWall(ColorRed, 3))
	rect := geom.CellRect(5, 5)
	b := NewBall(rect.X+rect.W/2, rect.Y+rect.H/2, 100, 0, 10)

	res := ResolveCollision(b, grid, geom)
	if !res.Hit || res.NX != -1 || res.NY != 0 {
		t.Fatalf("buried centre: %+v", res)
	}
	if b.X != rect.X-10 || b.VX != -100 {
		t.Fatalf("ball at x=%v vx=%v, want x=%v vx=-100", b.X, b.VX, rect.X-10)
	}
}

func TestCollision_FirstOverlappingCellDecides(t *testing.T) {
	grid, geom := testBoard()
	grid.Set(4, 4, NewWall(ColorBlue, 3))
	grid.Set(5, 6, NewWall(ColorBlue, 3))
	right := geom.CellRect(5, 6)
	// Centre over (5,5), overlapping (5,6) but not (4,4).
	b := NewBall(right.X-7, right.Y+right.H/2, 200, 0, 10)

	res := ResolveCollision(b, grid, geom)
	if !res.Hit || res.Row != 5 || res.Col != 6 {
		t.Fatalf("expected a hit on (5,6) past the untouched (4,4), got %+v", res)
	}
	if grid.At(5, 6).Lives() != 2 || b.VX >= 0 {
		t.Fatalf("wall lives=%d vx=%v, want 2 and a reflected ball", grid.At(5, 6).Lives(), b.VX)
	}
	if grid.At(4, 4).Lives() != 3 {
		t.Fatal("untouched wall at (4,4) took damage")
	}
}

func TestCollision_WallBehindBaseWallRowIsHit(t *testing.T) {
	grid, geom := testBoard()
	for c := 3; c <= 10; c++ {
		grid.Set(4, c, NewBaseWall())
	}
	grid.Set(5, 6, NewWall(ColorBlue, 3))
	wall := geom.CellRect(5, 6)
	start := geom.CellRect(5, 4)
	b := NewBall(start.X+start.W/2, start.Y+start.H/2, 300, 0, 10)

	hits := 0
	for i := 0; i < 60; i++ {
		b.Update(1.0/60, geom)
		if res := ResolveCollision(b, grid, geom); res.Hit {
			if res.Row != 5 || res.Col != 6 {
				t.Fatalf("tick %d hit (%d,%d), want (5,6)", i, res.Row, res.Col)
			}
			hits++
		}
		if b.X > wall.X+wall.W {
			t.Fatalf("ball crossed the wall at (5,6): x=%.1f", b.X)
		}
	}
	if hits == 0 || grid.At(5, 6) == nil || grid.At(5, 6).Lives() != 2 {
		t.Fatalf("hits=%d, want one hit leaving the wall on 2 lives", hits)
	}
}

func TestCollision_DegenerateGeometry(t *testing.T) {
	grid := NewGrid(3, 3)
	grid.Set(0, 0, NewWall(ColorBlue, 1))
	geom := ComputeGeometry(0, 0, Insets{}, 0, 0, 3, 3)
	b := NewBall(0, 0, 10, 10, 5)
	if res := ResolveCollision(b, grid, geom); res.Hit {
		t.Fatalf("degenerate geometry produced a hit: %+v", res)
	}
}

func TestApplyHit(t *testing.T) {
	grid := NewGrid(3, 3)
	grid.Set(1, 1, NewWall(ColorBlue, 3))
	for i := 0; i < 2; i++ {
		if e := ApplyHit(grid, 1, 1); e != HitDamaged {
			t.Fatalf("hit %d: %s", i+1, e)
		}
	}
	if e := ApplyHit(grid, 1, 1); e != HitDestroyed || grid.Occupied(1, 1) {
		t.Fatalf("third hit: %s, occupied=%v", e, grid.Occupied(1, 1))
	}
	if e := ApplyHit(grid, 1, 1); e != HitNone {
		t.Fatalf("hit on empty cell: %s", e)
	}

	grid.Set(0, 0, NewKing(ColorBlue, 1, 25))
	grid.Set(0, 1, NewWall(ColorBlue, 1))
	grid.Set(1, 0, NewWall(ColorBlue, 1))
	if e := ApplyHit(grid, 0, 0); e != HitProtected || grid.At(0, 0).Lives() != 1 {
		t.Fatalf("surrounded king: %s", e)
	}
	grid.Clear(0, 1)
	if e := ApplyHit(grid, 0, 0); e != HitDestroyed {
		t.Fatalf("exposed king: %s", e)
	}
}

func TestApplyHit_WallsIgnoreProtection(t *testing.T) {
	grid := NewGrid(3, 3)
	grid.Set(1, 1, NewWall(ColorBlue, 1))
	for _, n := range [][2]int{{0, 1}, {2, 1}, {1, 0}, {1, 2}} {
		grid.Set(n[0], n[1], NewBaseWall())
	}
	if e := ApplyHit(grid, 1, 1); e != HitDestroyed {
		t.Fatalf("surrounded wall: %s, want destroyed", e)
	}
}
