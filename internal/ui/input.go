package ui

import (
	"errors"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// templateKeys binds market keys to structure kinds.
var templateKeys = map[ebiten.Key]game.StructureKind{
	ebiten.KeyW: game.KindWall,
	ebiten.KeyR: game.KindRegeneratingWall,
	ebiten.KeyB: game.KindBank,
}

// playerPicks are the keys of the pre-match player-count picker.
var playerPicks = []struct {
	key     ebiten.Key
	players int
}{
	{ebiten.Key1, 1},
	{ebiten.Key2, 2},
	{ebiten.Key4, 4},
}

// templateKey is the key label shown next to a template.
func templateKey(k game.StructureKind) string {
	switch k {
	case game.KindWall:
		return "W"
	case game.KindRegeneratingWall:
		return "R"
	case game.KindBank:
		return "B"
	}
	return "?"
}

// keyPressed reports a rising edge of k since the previous frame.
func (g *Game) keyPressed(current map[ebiten.Key]bool, k ebiten.Key) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	defer func() { g.prevKeys = currentKeys }()

	if g.keyPressed(currentKeys, ebiten.KeyEscape) {
		g.quit = true
		return
	}
	if g.keyPressed(currentKeys, ebiten.KeyM) && g.sound != nil {
		g.sound.SetMuted(!g.sound.Muted())
		if g.sound.Muted() {
			g.setStatus("sound off")
		} else {
			g.setStatus("sound on")
		}
	}

	if g.match == nil {
		for _, pick := range playerPicks {
			if g.keyPressed(currentKeys, pick.key) && g.match == nil {
				g.startMatch(pick.players)
			}
		}
		return
	}

	if g.keyPressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.keyPressed(currentKeys, ebiten.KeyT) {
		g.showTerritory = !g.showTerritory
	}
	if g.keyPressed(currentKeys, ebiten.KeyC) {
		g.copyReport()
	}
	if g.keyPressed(currentKeys, ebiten.KeyS) {
		g.match.ExpireTimer()
	}
	if g.keyPressed(currentKeys, ebiten.KeyN) && g.match.Phase() == game.PhaseGameOver {
		g.resetMatch()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		mx, my := ebiten.CursorPosition()
		row, col, ok := pickCell(g.match.Geometry(), float64(mx-g.boardX), float64(my-g.boardY))
		g.inspector.Select(row, col, ok)
	}

	if g.match.Phase() != game.PhaseMarket {
		return
	}
	for k, kind := range templateKeys {
		if g.keyPressed(currentKeys, k) {
			if err := g.match.Select(kind); err != nil {
				g.setStatus(err.Error())
			}
		}
	}
	if g.keyPressed(currentKeys, ebiten.KeyEnter) || g.keyPressed(currentKeys, ebiten.KeySpace) {
		_ = g.match.EndTurn()
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		row, col, ok := pickCell(g.match.Geometry(), float64(mx-g.boardX), float64(my-g.boardY))
		if !ok {
			return
		}
		g.build(row, col)
	}
}

// build places the selected template. Rejections only show a status line;
// the match is left unchanged.
func (g *Game) build(row, col int) {
	err := g.match.BuildSelected(row, col)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrNoSelection):
		g.setStatus("pick a structure first: W, R or B")
	default:
		g.setStatus(err.Error())
	}
}

// pickCell maps a point on the board surface to the cell under it. Points
// in the gaps between cells or outside the grid pick nothing.
func pickCell(geom game.GridGeometry, x, y float64) (row, col int, ok bool) {
	row, col = geom.CellAt(x, y)
	if row < 0 || col < 0 || row >= geom.Rows || col >= geom.Cols {
		return 0, 0, false
	}
	r := geom.CellRect(row, col)
	if x < r.X || y < r.Y || x >= r.X+r.W || y >= r.Y+r.H {
		return 0, 0, false
	}
	return row, col, true
}
