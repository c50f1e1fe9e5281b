package ui

import (
	"fmt"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 150
	inspBufH  = 96
	inspPad   = 4
	inspLineH = 13
)

// Inspector holds the cell picked with the right mouse button.
type Inspector struct {
	row, col int
	selected bool
}

// Select picks (row, col), or clears the selection when ok is false.
func (in *Inspector) Select(row, col int, ok bool) {
	in.row, in.col, in.selected = row, col, ok
}

// Selected returns the picked cell.
func (in *Inspector) Selected() (row, col int, ok bool) {
	return in.row, in.col, in.selected
}

// inspectLines describes a cell: what stands on it and whose territory it is.
func inspectLines(m *game.Match, row, col int) []string {
	lines := []string{fmt.Sprintf("cell (%d,%d)", row, col)}
	label := m.Territory().Label(row, col)
	if m.NumPlayers() > 1 {
		lines = append(lines, "territory: "+string(label))
	}
	s := m.Grid().At(row, col)
	if s == nil {
		if sr, sc := m.Spawner(); sr == row && sc == col {
			return append(lines, "ball spawner")
		}
		return append(lines, "empty")
	}
	lines = append(lines, fmt.Sprintf("%s (%s)", s.Kind(), s.Color()))
	if s.InfiniteLives() {
		lines = append(lines, "lives: infinite")
	} else {
		lines = append(lines, fmt.Sprintf("lives: %d", s.Lives()))
	}
	switch v := s.(type) {
	case *game.King:
		lines = append(lines, fmt.Sprintf("income: %d/level", v.Income()))
		if m.Grid().IsProtected(row, col) {
			lines = append(lines, "shielded")
		}
	case *game.Bank:
		lines = append(lines, fmt.Sprintf("income: %d/level", v.Income()))
	case *game.RegeneratingWall:
		lines = append(lines, fmt.Sprintf("regen: +%d/level", v.Regen()))
	}
	return lines
}

// drawInspector renders the inspector panel into an offscreen buffer at 1x,
// then blits it at inspScale into the bottom-left of the board.
func (g *Game) drawInspector(screen *ebiten.Image) {
	row, col, ok := g.inspector.Selected()
	if !ok || g.match == nil || !g.match.Grid().InBounds(row, col) {
		return
	}
	if g.inspBuf == nil {
		g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspBuf
	buf.Clear()

	bw, bh := float32(inspBufW), float32(inspBufH)
	vector.FillRect(buf, 0, 0, bw, bh, panelColor, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelEdgeColor, false)

	ly := inspPad
	for _, line := range inspectLines(g.match, row, col) {
		ebitenutil.DebugPrintAt(buf, line, inspPad, ly)
		ly += inspLineH
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(g.boardX+8), float64(g.boardY+g.boardH-inspBufH*inspScale-8))
	screen.DrawImage(buf, opts)

	r := g.match.Geometry().CellRect(row, col)
	vector.StrokeRect(screen, float32(g.boardX)+float32(r.X), float32(g.boardY)+float32(r.Y),
		float32(r.W), float32(r.H), 2, highlightColor, false)
}
