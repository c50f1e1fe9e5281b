package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/ball-siege/internal/game"
)

func TestWinTally(t *testing.T) {
	all := []runStats{
		{finished: true, outcome: game.MatchOutcome{Kind: game.OutcomeWinner, Winner: game.ColorRed}},
		{finished: true, outcome: game.MatchOutcome{Kind: game.OutcomeWinner, Winner: game.ColorRed}},
		{finished: true, outcome: game.MatchOutcome{Kind: game.OutcomeNoSurvivor}},
		{finished: false},
	}
	tally := winTally(all)
	if tally["red"] != 2 || tally["capped"] != 1 || tally[game.OutcomeNoSurvivor.String()] != 1 {
		t.Fatalf("unexpected tally: %v", tally)
	}
}

func TestDetectStall_TrueWhenCappedWithoutEliminations(t *testing.T) {
	stalled, reason := detectStall(runStats{players: 2, levels: 31})
	if !stalled {
		t.Fatalf("expected stall=true, got false (reason=%s)", reason)
	}
	if !strings.Contains(reason, "31") {
		t.Fatalf("expected reason to name the level, got: %s", reason)
	}
}

func TestDetectStall_FalseWhenFinishedOrSolo(t *testing.T) {
	if stalled, reason := detectStall(runStats{players: 2, finished: true}); stalled {
		t.Fatalf("finished match flagged as stalled (reason=%s)", reason)
	}
	if stalled, reason := detectStall(runStats{players: 1}); stalled {
		t.Fatalf("solo match flagged as stalled (reason=%s)", reason)
	}
	rs := runStats{players: 4, eliminationOrder: []game.Color{game.ColorGreen}}
	if stalled, reason := detectStall(rs); stalled {
		t.Fatalf("match with an elimination flagged as stalled (reason=%s)", reason)
	}
}

func TestFortifySpendsAroundTheKing(t *testing.T) {
	tm := game.NewTestMatch(game.WithPlayers(2), game.WithSeed(9))
	if tm.SetupErr != nil {
		t.Fatalf("setup: %v", tm.SetupErr)
	}
	king := tm.Seats()[0]
	fortify(tm.Match)

	if got := tm.Grid().Count(game.KindBank); got != 1 {
		t.Fatalf("banks built = %d, want 1", got)
	}
	// 100 start: bank 50, then five 10 walls.
	if got := tm.Grid().Count(game.KindWall); got != 5 {
		t.Fatalf("walls built = %d, want 5", got)
	}
	if bal := tm.Ledger().Balance(0); bal != 0 {
		t.Fatalf("balance after fortify = %d, want 0", bal)
	}
	s := tm.Grid().At(king.Row, king.Col+1)
	if s == nil || s.Kind() != game.KindWall {
		t.Fatalf("cell beside the king holds %v, want a wall", s)
	}
}

func TestPlayMatchStopsAtLevelCap(t *testing.T) {
	tm := game.NewTestMatch(game.WithPlayers(2), game.WithBallCount(0))
	rs := playMatch(tm, strategies["none"], 3)
	if rs.finished {
		t.Fatalf("ball-less match finished: %s", rs.outcome)
	}
	if rs.levels != 4 {
		t.Fatalf("levels = %d, want the cap+1", rs.levels)
	}
	if stalled, _ := detectStall(rs); !stalled {
		t.Fatal("capped two-player match should read as stalled")
	}
}
