package game

import "math/rand"

// baseWallAttemptsPer bounds the random retries per requested placement so a
// crowded board can't spin forever.
const baseWallAttemptsPer = 200

// GenerateBaseWalls scatters neutral base walls on empty interior cells.
//
//   - 1 player: count walls anywhere off the outer border.
//   - 2 players: count/2 walls in the left half, each mirrored to the right half.
//   - 4 players: count/4 walls in the top-left quadrant, mirrored into all four
//     quadrants; a set is placed only when all four cells are empty.
//
// Counts truncate by integer division. Each placement gives up after
// baseWallAttemptsPer random tries, so a crowded board can end up with fewer
// walls than requested. It returns the number of cells filled.
func GenerateBaseWalls(grid *Grid, numPlayers, count int, rng *rand.Rand) int {
	filled := 0
	place := func(r, c int) bool {
		if !grid.InBounds(r, c) || grid.Occupied(r, c) {
			return false
		}
		grid.Set(r, c, NewBaseWall())
		filled++
		return true
	}

	switch numPlayers {
	case 1:
		target := count
		for placed, tries := 0, 0; placed < target && tries < target*baseWallAttemptsPer; tries++ {
			c := randInt(rng, grid.Cols-2) + 1
			r := randInt(rng, grid.Rows-2) + 1
			if place(r, c) {
				placed++
			}
		}

	case 2:
		target := count / 2
		maxCol := grid.Cols/2 - 1
		for placed, tries := 0, 0; placed < target && tries < target*baseWallAttemptsPer; tries++ {
			c := randInt(rng, maxCol-1) + 1
			r := randInt(rng, grid.Rows-2) + 1
			if place(r, c) {
				if mc := grid.Cols - 1 - c; mc != c {
					place(r, mc)
				}
				placed++
			}
		}

	case 4:
		target := count / 4
		maxRow := grid.Rows/2 - 1
		maxCol := grid.Cols/2 - 1
		for placed, tries := 0, 0; placed < target && tries < target*baseWallAttemptsPer; tries++ {
			r := randInt(rng, maxRow-1) + 1
			c := randInt(rng, maxCol-1) + 1
			cells := [4][2]int{
				{r, c},
				{r, grid.Cols - 1 - c},
				{grid.Rows - 1 - r, c},
				{grid.Rows - 1 - r, grid.Cols - 1 - c},
			}
			free := true
			for _, p := range cells {
				if !grid.InBounds(p[0], p[1]) || grid.Occupied(p[0], p[1]) {
					free = false
					break
				}
			}
			if !free {
				continue
			}
			for _, p := range cells {
				place(p[0], p[1])
			}
			placed++
		}
	}
	return filled
}

// randInt returns a value in [0, n), or 0 when n <= 0.
func randInt(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n) // #nosec G404 -- gameplay randomness
}
