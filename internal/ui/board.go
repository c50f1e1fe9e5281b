package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawBoard renders the grid, every structure and the optional territory
// overlay. The board surface starts at (g.boardX, g.boardY).
func (g *Game) drawBoard(screen *ebiten.Image) {
	m := g.match
	geom := m.Geometry()
	ox, oy := float32(g.boardX), float32(g.boardY)

	vector.FillRect(screen, ox, oy, float32(geom.SurfaceWidth), float32(geom.SurfaceHeight), boardColor, false)

	sr, sc := m.Spawner()
	grid := m.Grid()
	terr := m.Territory()
	active := m.ActivePlayer()

	for r := 0; r < geom.Rows; r++ {
		for c := 0; c < geom.Cols; c++ {
			rect := geom.CellRect(r, c)
			x, y := ox+float32(rect.X), oy+float32(rect.Y)
			w, h := float32(rect.W), float32(rect.H)

			fill := cellColor
			if r == sr && c == sc {
				fill = spawnerColor
			}
			vector.FillRect(screen, x, y, w, h, fill, false)

			if g.showTerritory || active != game.ColorNone {
				if tint, ok := territoryTint(terr.Label(r, c), active, g.showTerritory); ok {
					vector.FillRect(screen, x, y, w, h, tint, false)
				}
			}

			if s := grid.At(r, c); s != nil {
				drawStructure(screen, s, x, y, w, h)
			}
		}
	}
}

// territoryTint picks the overlay for a territory label. During a market
// turn only the cells the active player may not build on are dimmed, unless
// the full overlay is toggled on.
func territoryTint(label, active game.Color, full bool) (color.RGBA, bool) {
	if full {
		if label == game.ColorFree {
			return color.RGBA{}, false
		}
		return withAlpha(colorOf(label), 48), true
	}
	if label != game.ColorFree && label != active {
		return color.RGBA{A: 96}, true
	}
	return color.RGBA{}, false
}

func drawStructure(screen *ebiten.Image, s game.Structure, x, y, w, h float32) {
	fill := colorOf(s.Color())
	inset := float32(2)
	switch s.Kind() {
	case game.KindKing:
		vector.FillRect(screen, x, y, w, h, fill, false)
		vector.StrokeRect(screen, x+3, y+3, w-6, h-6, 2, highlightColor, false)
		ebitenutil.DebugPrintAt(screen, "K", int(x+w/2)-3, int(y+h/2)-8)
		return
	case game.KindBaseWall:
		vector.FillRect(screen, x, y, w, h, baseWallColor, false)
		vector.StrokeLine(screen, x, y, x+w, y+h, 1, shade(baseWallColor, 0.6), false)
		return
	case game.KindBank:
		vector.FillRect(screen, x+inset, y+inset, w-2*inset, h-2*inset, shade(fill, 0.7), false)
		vector.FillCircle(screen, x+w/2, y+h/2, w/4, fill, true)
		ebitenutil.DebugPrintAt(screen, "$", int(x+w/2)-3, int(y+h/2)-8)
		return
	case game.KindRegeneratingWall:
		vector.FillRect(screen, x+inset, y+inset, w-2*inset, h-2*inset, fill, false)
		vector.StrokeRect(screen, x+inset+2, y+inset+2, w-2*inset-4, h-2*inset-4, 1, highlightColor, false)
	default:
		vector.FillRect(screen, x+inset, y+inset, w-2*inset, h-2*inset, fill, false)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", s.Lives()), int(x+w/2)-3, int(y+h/2)-8)
}

// drawBalls renders every live ball.
func (g *Game) drawBalls(screen *ebiten.Image) {
	ox, oy := float32(g.boardX), float32(g.boardY)
	for _, b := range g.match.Balls() {
		vector.FillCircle(screen, ox+float32(b.X), oy+float32(b.Y), float32(b.Radius), ballColor, true)
	}
}
