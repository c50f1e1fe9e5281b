package game

import (
	"math"
	"math/rand"
)

// Ball is a bouncing projectile.
type Ball struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Collided bool // whether the last tick registered a structure hit
}

// NewBall creates a ball at (x, y) moving at (vx, vy).
func NewBall(x, y, vx, vy, radius float64) *Ball {
	return &Ball{X: x, Y: y, VX: vx, VY: vy, Radius: radius}
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Update advances the ball by dt seconds of free flight, then bounces it off
// the content bounds. On every axis where the ball's edge crossed a boundary
// the velocity component is inverted and the centre clamped one radius inside.
func (b *Ball) Update(dt float64, geom GridGeometry) {
	b.X += b.VX * dt
	b.Y += b.VY * dt

	bounds := geom.ContentBounds()
	left, right := bounds.X, bounds.X+bounds.W
	top, bottom := bounds.Y, bounds.Y+bounds.H

	if b.X-b.Radius < left || b.X+b.Radius > right {
		b.VX = -b.VX
		b.X = clamp(b.X, left+b.Radius, right-b.Radius)
	}
	if b.Y-b.Radius < top || b.Y+b.Radius > bottom {
		b.VY = -b.VY
		b.Y = clamp(b.Y, top+b.Radius, bottom-b.Radius)
	}
}

// SpawnBalls creates n balls at (x, y), each heading in a uniformly random
// direction at the given speed.
func SpawnBalls(n int, x, y, speed, radius float64, rng *rand.Rand) []*Ball {
	if n < 0 {
		n = 0
	}
	balls := make([]*Ball, 0, n)
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		balls = append(balls, NewBall(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, radius))
	}
	return balls
}
