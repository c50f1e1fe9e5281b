package ui

import (
	"strings"
	"testing"

	"github.com/Garsondee/ball-siege/internal/game"
)

func TestEventFeedWrapsAndKeepsOrder(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, game.ColorNone, "x")
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("feed holds %d entries, want %d", len(got), feedMaxEntries)
	}
	if got[0].Level != 5 || got[len(got)-1].Level != feedMaxEntries+4 {
		t.Fatalf("oldest/newest = %d/%d, want 5/%d", got[0].Level, got[len(got)-1].Level, feedMaxEntries+4)
	}
}

func TestBannerFadesInHoldsAndOut(t *testing.T) {
	b := NewBanner()
	b.Show("Level 2", "", textColor, false)
	if !(b.Alpha() < 0.01) {
		t.Fatalf("alpha right after Show = %f, want 0", b.Alpha())
	}
	b.Update(bannerFadeIn / 2)
	if a := b.Alpha(); a <= 0 || a >= 1 {
		t.Fatalf("alpha mid fade-in = %f, want in (0,1)", a)
	}
	b.Update(bannerFadeIn)
	if b.Alpha() != 1 || b.stage != bannerHolding {
		t.Fatalf("after fade-in: alpha=%f stage=%d", b.Alpha(), b.stage)
	}
	b.Update(bannerHold + 0.01)
	if b.stage != bannerOut {
		t.Fatalf("after hold: stage=%d, want fading out", b.stage)
	}
	b.Update(bannerFadeOut + 0.01)
	if b.Visible() {
		t.Fatalf("banner still visible after fade-out, alpha=%f", b.Alpha())
	}
}

func TestBannerGameOverIsSticky(t *testing.T) {
	b := NewBanner()
	b.OnEvent(game.Event{Type: game.EventGameOver, Data: game.GameOverEvent{Outcome: game.MatchOutcome{
		Kind: game.OutcomeWinner, NumPlayers: 2, Winner: game.ColorGreen,
	}}})
	for i := 0; i < 600; i++ {
		b.Update(1.0 / 60)
	}
	if !b.Visible() || b.Title != "Game Over" {
		t.Fatalf("game over banner gone: visible=%v title=%q", b.Visible(), b.Title)
	}
	if !strings.Contains(b.Subtitle, "green") {
		t.Fatalf("subtitle %q does not name the winner", b.Subtitle)
	}
	b.Hide()
	if b.Visible() {
		t.Fatal("Hide left the banner up")
	}
}

func TestPickCell(t *testing.T) {
	cfg := game.DefaultConfig()
	geom := cfg.Geometry()

	r := geom.CellRect(2, 5)
	row, col, ok := pickCell(geom, r.X+r.W/2, r.Y+r.H/2)
	if !ok || row != 2 || col != 5 {
		t.Fatalf("centre of (2,5) picked (%d,%d,%v)", row, col, ok)
	}

	// Gap to the right of the cell.
	if _, _, ok := pickCell(geom, r.X+r.W+geom.GapX/2, r.Y+r.H/2); ok {
		t.Fatal("a point in the gap picked a cell")
	}
	// Inset border and outside the board.
	if _, _, ok := pickCell(geom, 1, 1); ok {
		t.Fatal("a point in the inset picked a cell")
	}
	if _, _, ok := pickCell(geom, geom.SurfaceWidth+50, 10); ok {
		t.Fatal("a point past the board picked a cell")
	}
}

func TestTerritoryTint(t *testing.T) {
	if _, ok := territoryTint(game.ColorFree, game.ColorBlue, false); ok {
		t.Fatal("free cells are never dimmed")
	}
	if _, ok := territoryTint(game.ColorBlue, game.ColorBlue, false); ok {
		t.Fatal("own territory is not dimmed during the owner's turn")
	}
	if _, ok := territoryTint(game.ColorRed, game.ColorBlue, false); !ok {
		t.Fatal("enemy territory should be dimmed during a market turn")
	}
	c, ok := territoryTint(game.ColorRed, game.ColorNone, true)
	if !ok || c.R != colorOf(game.ColorRed).R {
		t.Fatalf("full overlay tint = %v %v, want red", c, ok)
	}
}

func TestInspectLines(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.BaseWalls = 0
	m := game.NewMatch(cfg, 1)
	if err := m.Setup(2); err != nil {
		t.Fatalf("setup: %v", err)
	}
	seat := m.Seats()[0]
	lines := strings.Join(inspectLines(m, seat.Row, seat.Col), "\n")
	for _, want := range []string{"king (blue)", "income: 25/level", "territory: blue"} {
		if !strings.Contains(lines, want) {
			t.Fatalf("inspector for the blue king missing %q:\n%s", want, lines)
		}
	}

	sr, sc := m.Spawner()
	if got := inspectLines(m, sr, sc); got[len(got)-1] != "ball spawner" {
		t.Fatalf("spawner cell described as %q", got)
	}
}
