package term

import (
	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/gdamore/tcell/v2"
)

// cellWidth is the number of terminal columns one board cell takes.
const cellWidth = 2

var playerStyles = map[game.Color]tcell.Color{
	game.ColorBlue:      tcell.ColorRoyalBlue,
	game.ColorRed:       tcell.ColorCrimson,
	game.ColorGreen:     tcell.ColorForestGreen,
	game.ColorGoldenrod: tcell.ColorGoldenrod,
}

// colorOf is the terminal colour of a structure owner.
func colorOf(c game.Color) tcell.Color {
	if tc, ok := playerStyles[c]; ok {
		return tc
	}
	return tcell.ColorGray
}

// glyphs returns the two runes drawn for a structure: a kind marker and a
// lives digit where lives are finite.
func glyphs(s game.Structure) [cellWidth]rune {
	if s == nil {
		return [cellWidth]rune{'·', ' '}
	}
	var g [cellWidth]rune
	switch s.Kind() {
	case game.KindKing:
		return [cellWidth]rune{'K', 'K'}
	case game.KindBaseWall:
		return [cellWidth]rune{'#', '#'}
	case game.KindBank:
		g[0] = '$'
	case game.KindRegeneratingWall:
		g[0] = 'r'
	default:
		g[0] = 'W'
	}
	g[1] = livesRune(s.Lives())
	return g
}

// livesRune renders a lives count as a single digit, '+' past nine.
func livesRune(n int) rune {
	switch {
	case n <= 0:
		return '0'
	case n > 9:
		return '+'
	}
	return rune('0' + n)
}

// cellStyle picks the style of a board cell.
func cellStyle(s game.Structure, label, active game.Color, showTerritory bool) tcell.Style {
	st := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkGray)
	if s != nil {
		st = st.Foreground(tcell.ColorWhite).Background(colorOf(s.Color()))
		if s.Kind() == game.KindKing {
			st = st.Bold(true)
		}
		return st
	}
	switch {
	case showTerritory && label != game.ColorFree:
		st = st.Foreground(colorOf(label))
	case active != game.ColorNone && label != game.ColorFree && label != active:
		st = st.Dim(true)
	}
	return st
}

// ballCounts buckets the balls by the cell whose stride contains them. Balls
// in the inset border fall outside the grid and are not counted.
func ballCounts(balls []*game.Ball, geom game.GridGeometry) map[[2]int]int {
	counts := make(map[[2]int]int)
	for _, b := range balls {
		r, c := geom.CellAt(b.X, b.Y)
		if r < 0 || c < 0 || r >= geom.Rows || c >= geom.Cols {
			continue
		}
		counts[[2]int{r, c}]++
	}
	return counts
}

// drawText writes s starting at (x, y), clipped at the screen width.
func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) int {
	w, _ := screen.Size()
	for _, r := range s {
		if x >= w {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
