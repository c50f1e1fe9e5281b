package main

import (
	"sort"
	"strings"

	"github.com/Garsondee/ball-siege/internal/game"
)

// marketPlan spends the active player's market turn.
type marketPlan func(m *game.Match)

var strategies = map[string]marketPlan{
	"none":    func(*game.Match) {},
	"fortify": fortify,
}

func strategyNames() string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// fortify buys one bank when it can keep a wall's price in reserve, then
// rings the king with walls, nearest cells first, until the money runs out.
func fortify(m *game.Match) {
	seat := m.MarketTurn()
	cfg := m.Config()
	wall, okWall := cfg.Template(game.KindWall)
	bank, okBank := cfg.Template(game.KindBank)
	if !okWall {
		return
	}
	cells := ringCells(m, seat)

	if okBank && m.Ledger().Balance(seat) >= bank.Price+wall.Price {
		for i := len(cells) - 1; i >= 0; i-- {
			if m.Build(cells[i][0], cells[i][1], game.KindBank) == nil {
				cells = append(cells[:i], cells[i+1:]...)
				break
			}
		}
	}
	for _, c := range cells {
		if m.Ledger().Balance(seat) < wall.Price {
			return
		}
		_ = m.Build(c[0], c[1], game.KindWall)
	}
}

// ringCells lists the empty cells within two steps of the seat's king that
// the seat may build on, nearest first.
func ringCells(m *game.Match, seat int) [][2]int {
	var king game.KingSeat
	found := false
	for _, s := range m.Seats() {
		if s.Player == seat {
			king, found = s, true
		}
	}
	if !found {
		return nil
	}
	owner := game.PlayerColor(seat)
	grid := m.Grid()
	terr := m.Territory()

	var cells [][2]int
	for dist := 1; dist <= 2; dist++ {
		for dr := -dist; dr <= dist; dr++ {
			for dc := -dist; dc <= dist; dc++ {
				if abs(dr)+abs(dc) != dist {
					continue
				}
				r, c := king.Row+dr, king.Col+dc
				if !grid.InBounds(r, c) || grid.Occupied(r, c) || !terr.CanBuild(r, c, owner) {
					continue
				}
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
