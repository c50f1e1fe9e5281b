package game

import (
	"fmt"
	"strings"
)

// reportWindowLevels is the default sliding window for recent-level summaries.
const reportWindowLevels = 5

// LevelReport captures what happened during one level's ball phase and the
// end-of-level actions that followed it.
type LevelReport struct {
	Level int
	Ticks int
	Balls int

	Hits      [structureKindCount]int // structure hits by kind
	Destroyed [structureKindCount]int
	Protected int // hits absorbed by the protection rule
	Absorbed  int // hits on base walls

	Income     [MaxPlayers]int // money credited by end-of-level actions
	Eliminated []Color         // players knocked out during the level

	Alive     int // players alive when the level ended
	Standing  int // structures on the grid when the level ended
	Finished  bool
	EndedGame bool
}

// TotalHits sums hits over every structure kind.
func (r *LevelReport) TotalHits() int {
	n := 0
	for _, h := range r.Hits {
		n += h
	}
	return n
}

// TotalDestroyed sums destructions over every structure kind.
func (r *LevelReport) TotalDestroyed() int {
	n := 0
	for _, d := range r.Destroyed {
		n += d
	}
	return n
}

// LevelReporter collects one LevelReport per played level and can summarise
// the most recent ones.
type LevelReporter struct {
	history      []LevelReport
	windowLevels int
}

// NewLevelReporter creates a reporter whose window covers windowLevels levels.
func NewLevelReporter(windowLevels int) *LevelReporter {
	if windowLevels <= 0 {
		windowLevels = reportWindowLevels
	}
	return &LevelReporter{windowLevels: windowLevels}
}

// BeginLevel opens a report for a level that is starting.
func (r *LevelReporter) BeginLevel(level, balls int) {
	r.history = append(r.history, LevelReport{Level: level, Balls: balls})
}

func (r *LevelReporter) current() *LevelReport {
	if len(r.history) == 0 || r.history[len(r.history)-1].Finished {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// RecordTick counts one simulation step of the open level.
func (r *LevelReporter) RecordTick() {
	if cur := r.current(); cur != nil {
		cur.Ticks++
	}
}

// RecordHit tallies one resolved collision.
func (r *LevelReporter) RecordHit(res CollisionResult) {
	cur := r.current()
	if cur == nil || !res.Hit || res.Kind >= structureKindCount {
		return
	}
	cur.Hits[res.Kind]++
	switch res.Effect {
	case HitDestroyed:
		cur.Destroyed[res.Kind]++
	case HitProtected:
		cur.Protected++
	case HitAbsorbed:
		cur.Absorbed++
	}
}

// RecordElimination notes a player knocked out in the open level.
func (r *LevelReporter) RecordElimination(c Color) {
	if cur := r.current(); cur != nil {
		cur.Eliminated = append(cur.Eliminated, c)
	}
}

// RecordIncome adds money credited to a seat while closing the level.
func (r *LevelReporter) RecordIncome(player, amount int) {
	if cur := r.current(); cur != nil && validSeat(player) {
		cur.Income[player] += amount
	}
}

// EndLevel closes the open report.
func (r *LevelReporter) EndLevel(alive, standing int, endedGame bool) {
	cur := r.current()
	if cur == nil {
		return
	}
	cur.Alive = alive
	cur.Standing = standing
	cur.EndedGame = endedGame
	cur.Finished = true
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *LevelReporter) Latest() *LevelReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *LevelReporter) History() []LevelReport {
	return r.history
}

// WindowReport aggregates the most recent levels.
type WindowReport struct {
	FromLevel, ToLevel int
	SampleCount        int

	AvgHits      float64
	AvgDestroyed float64
	AvgProtected float64
	AvgIncome    [MaxPlayers]float64

	TotalDestroyed [structureKindCount]int
}

// WindowSummary aggregates the last windowLevels reports.
func (r *LevelReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	from := len(r.history) - r.windowLevels
	if from < 0 {
		from = 0
	}
	window := r.history[from:]
	n := float64(len(window))
	wr := &WindowReport{
		FromLevel:   window[0].Level,
		ToLevel:     window[len(window)-1].Level,
		SampleCount: len(window),
	}
	for i := range window {
		rpt := &window[i]
		wr.AvgHits += float64(rpt.TotalHits())
		wr.AvgDestroyed += float64(rpt.TotalDestroyed())
		wr.AvgProtected += float64(rpt.Protected)
		for p := range rpt.Income {
			wr.AvgIncome[p] += float64(rpt.Income[p])
		}
		for k := range rpt.Destroyed {
			wr.TotalDestroyed[k] += rpt.Destroyed[k]
		}
	}
	wr.AvgHits /= n
	wr.AvgDestroyed /= n
	wr.AvgProtected /= n
	for p := range wr.AvgIncome {
		wr.AvgIncome[p] /= n
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Level Report (L=%d..%d, %d levels) ===\n",
		wr.FromLevel, wr.ToLevel, wr.SampleCount)
	fmt.Fprintf(&sb, "  hits/level=%.1f  destroyed/level=%.2f  protected/level=%.1f\n",
		wr.AvgHits, wr.AvgDestroyed, wr.AvgProtected)
	sb.WriteString("  destroyed:")
	for k := StructureKind(0); k < structureKindCount; k++ {
		if n := wr.TotalDestroyed[k]; n > 0 {
			fmt.Fprintf(&sb, " %s=%d", k, n)
		}
	}
	sb.WriteString("\n  income/level:")
	for p := 0; p < MaxPlayers; p++ {
		if wr.AvgIncome[p] > 0 {
			fmt.Fprintf(&sb, " %s=%.1f", PlayerColor(p), wr.AvgIncome[p])
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// FormatLatest returns a concise line for the most recent level.
func (r *LevelReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	return formatLevelLine(rpt)
}

func formatLevelLine(rpt *LevelReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "L%02d balls=%d ticks=%d hits=%d destroyed=%d protected=%d alive=%d standing=%d",
		rpt.Level, rpt.Balls, rpt.Ticks, rpt.TotalHits(), rpt.TotalDestroyed(),
		rpt.Protected, rpt.Alive, rpt.Standing)
	for _, c := range rpt.Eliminated {
		fmt.Fprintf(&sb, " out=%s", c)
	}
	sb.WriteByte('\n')
	return sb.String()
}
