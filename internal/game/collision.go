package game

import "math"

// normalEpsilon guards the normal division when the ball centre sits exactly on
// the closest point of a rectangle edge.
const normalEpsilon = 0.0001

// HitEffect is what a ball hit did to the structure it touched.
type HitEffect uint8

const (
	HitNone      HitEffect = iota
	HitAbsorbed            // infinite-lives structure, nothing changed
	HitProtected           // protectable structure fully surrounded, nothing changed
	HitDamaged             // lost lives but still standing
	HitDestroyed           // removed from the grid
)

func (h HitEffect) String() string {
	switch h {
	case HitAbsorbed:
		return "absorbed"
	case HitProtected:
		return "protected"
	case HitDamaged:
		return "damaged"
	case HitDestroyed:
		return "destroyed"
	default:
		return "none"
	}
}

// CollisionResult describes the single structure contact resolved for a ball
// during one tick.
type CollisionResult struct {
	Hit      bool
	Row, Col int
	NX, NY   float64 // unit contact normal, pointing from the structure to the ball
	Effect   HitEffect
	Kind     StructureKind // kind of the structure that was hit
	Color    Color         // owner of the structure that was hit
}

// ResolveCollision checks the ball against the 3x3 block of cells around the
// cell containing its centre. Cells are scanned in row-major order and the
// first occupied cell that overlaps the ball decides the tick: the ball is
// pushed out, its velocity is reflected about the contact normal, and the hit
// is applied to the structure. Occupied cells the ball doesn't touch are
// passed over.
//
// Cells off the grid are skipped. Degenerate geometry never panics; it simply
// produces no useful contacts.
func ResolveCollision(b *Ball, grid *Grid, geom GridGeometry) CollisionResult {
	b.Collided = false
	cr, cc := geom.CellAt(b.X, b.Y)
	if cr == math.MinInt32 || cc == math.MinInt32 {
		return CollisionResult{}
	}

	for r := cr - 1; r <= cr+1; r++ {
		for c := cc - 1; c <= cc+1; c++ {
			s := grid.At(r, c)
			if s == nil {
				continue
			}
			if res := resolveAgainstCell(b, grid, geom, r, c, s); res.Hit {
				return res
			}
		}
	}
	return CollisionResult{}
}

// resolveAgainstCell returns a zero result, leaving the ball untouched, when
// the ball doesn't overlap the cell.
func resolveAgainstCell(b *Ball, grid *Grid, geom GridGeometry, r, c int, s Structure) CollisionResult {
	rect := geom.CellRect(r, c)
	px := clamp(b.X, rect.X, rect.X+rect.W)
	py := clamp(b.Y, rect.Y, rect.Y+rect.H)
	dx := b.X - px
	dy := b.Y - py
	d2 := dx*dx + dy*dy
	if d2 > b.Radius*b.Radius {
		return CollisionResult{}
	}

	var nx, ny float64
	if px == b.X && py == b.Y {
		nx, ny = pushOutOfRect(b, rect)
	} else {
		dist := math.Sqrt(d2)
		denom := dist
		if denom == 0 {
			denom = normalEpsilon
		}
		nx, ny = dx/denom, dy/denom
		pen := b.Radius - dist
		b.X += nx * pen
		b.Y += ny * pen
	}

	dot := b.VX*nx + b.VY*ny
	b.VX -= 2 * dot * nx
	b.VY -= 2 * dot * ny
	b.Collided = true

	res := CollisionResult{
		Hit:   true,
		Row:   r,
		Col:   c,
		NX:    nx,
		NY:    ny,
		Kind:  s.Kind(),
		Color: s.Color(),
	}
	res.Effect = ApplyHit(grid, r, c)
	return res
}

// pushOutOfRect handles a centre buried inside rect: the ball is moved flush
// against the nearest edge. Ties go to left, then right, top, bottom.
func pushOutOfRect(b *Ball, rect Rect) (nx, ny float64) {
	dl := b.X - rect.X
	dr := rect.X + rect.W - b.X
	dt := b.Y - rect.Y
	db := rect.Y + rect.H - b.Y
	m := math.Min(math.Min(dl, dr), math.Min(dt, db))

	switch m {
	case dl:
		b.X = rect.X - b.Radius
		return -1, 0
	case dr:
		b.X = rect.X + rect.W + b.Radius
		return 1, 0
	case dt:
		b.Y = rect.Y - b.Radius
		return 0, -1
	default:
		b.Y = rect.Y + rect.H + b.Radius
		return 0, 1
	}
}

// ApplyHit dispatches one point of damage to the structure at (r, c).
// Protectable structures (kings, banks) ignore the hit while protected. Walls
// are always destructible. A destroyed structure is removed from the grid.
func ApplyHit(grid *Grid, r, c int) HitEffect {
	s := grid.At(r, c)
	if s == nil {
		return HitNone
	}
	if s.InfiniteLives() {
		s.OnHit(1)
		return HitAbsorbed
	}
	if s.Protectable() && grid.IsProtected(r, c) {
		return HitProtected
	}
	if s.OnHit(1) {
		grid.Clear(r, c)
		return HitDestroyed
	}
	return HitDamaged
}
