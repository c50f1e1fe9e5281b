package game

import (
	"strings"
	"testing"
)

func TestMatchLogFilters(t *testing.T) {
	ml := NewMatchLog(false)
	ml.Add(1, 1, "blue", "build", "wall", "(7,1) price=10", 10)
	ml.Add(40, 1, "red", "destroy", "wall", "(7,27)", 0)
	ml.Add(90, 2, "red", "elim", "king_lost", "alive=1", 1)
	ml.AddVerbose(41, 1, "red", "hit", "wall", "(7,27) damaged", 0)

	if len(ml.Entries()) != 3 {
		t.Fatalf("%d entries; a quiet log must drop verbose lines", len(ml.Entries()))
	}
	if ml.CountCategory("destroy", "") != 1 || len(ml.FilterPlayer("red")) != 2 || len(ml.FilterLevel(1)) != 2 {
		t.Fatal("filters disagree with the recorded entries")
	}
	last, ok := ml.LastOf("elim", "king_lost")
	if !ok || last.Tick != 90 {
		t.Fatalf("LastOf = %+v,%v", last, ok)
	}
	if !ml.HasEntry("build", "wall", "price=10") || ml.HasEntry("build", "bank", "") {
		t.Fatal("HasEntry mismatch")
	}
	if s := ml.Format(); !strings.Contains(s, "[T=0040 L=01] red") {
		t.Fatalf("format:\n%s", s)
	}

	verbose := NewMatchLog(true)
	verbose.AddVerbose(1, 1, "red", "hit", "wall", "", 0)
	if len(verbose.Entries()) != 1 || !verbose.Verbose() {
		t.Fatal("verbose log dropped a hit")
	}
}

func TestLevelReporterWindow(t *testing.T) {
	r := NewLevelReporter(2)
	if r.WindowSummary() != nil || r.FormatLatest() != "No data.\n" {
		t.Fatal("empty reporter should have no summary")
	}
	for lvl := 1; lvl <= 3; lvl++ {
		r.BeginLevel(lvl, 10)
		r.RecordTick()
		r.RecordHit(CollisionResult{Hit: true, Kind: KindWall, Effect: HitDestroyed})
		r.RecordHit(CollisionResult{Hit: true, Kind: KindKing, Effect: HitProtected})
		r.RecordIncome(0, 25*lvl)
		r.EndLevel(2, 5, false)
	}
	r.RecordTick() // no open level: ignored
	if r.Latest().Ticks != 1 {
		t.Fatalf("ticks recorded after the level closed: %d", r.Latest().Ticks)
	}

	wr := r.WindowSummary()
	if wr.FromLevel != 2 || wr.ToLevel != 3 || wr.SampleCount != 2 {
		t.Fatalf("window %+v", wr)
	}
	if wr.AvgHits != 2 || wr.AvgProtected != 1 || wr.AvgIncome[0] != 62.5 || wr.TotalDestroyed[KindWall] != 2 {
		t.Fatalf("window averages %+v", wr)
	}
	if s := wr.Format(); !strings.Contains(s, "L=2..3") || !strings.Contains(s, "wall=2") {
		t.Fatalf("format:\n%s", s)
	}
}
