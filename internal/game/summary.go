package game

import (
	"fmt"
	"strings"
)

// Summary returns a plain-text report of the match so far: identity, seats,
// money, structures on the board and one line per played level. The UI
// copies it to the clipboard and the headless runner prints it.
func (m *Match) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Ball Siege match report ---\n")
	fmt.Fprintf(&b, "match=%s players=%d grid=%dx%d phase=%s level=%d tick=%d clock=%.1fs\n",
		m.ID, m.state.NumPlayers, m.cfg.Rows, m.cfg.Cols, m.phase, m.state.Level, m.tick, m.clock)
	if o, over := m.Result(); over {
		fmt.Fprintf(&b, "result: %s (%s)\n", o.Text(), o)
	}
	b.WriteByte('\n')

	b.WriteString("== seats ==\n")
	for p := 0; p < MaxPlayers; p++ {
		status := "alive"
		switch {
		case p >= m.state.NumPlayers:
			status = "unused"
		case m.state.Eliminated[p]:
			status = "eliminated"
		}
		fmt.Fprintf(&b, "  %-10s %-10s money=%s structures=%d\n",
			PlayerColor(p), status, LedgerDisplay(m.ledger, p), m.ownedBy(PlayerColor(p)))
	}
	b.WriteByte('\n')

	b.WriteString("== board ==\n")
	for k := StructureKind(0); k < structureKindCount; k++ {
		if n := m.grid.Count(k); n > 0 {
			fmt.Fprintf(&b, "  %-11s %d\n", k, n)
		}
	}
	b.WriteByte('\n')

	levels := m.reporter.History()
	b.WriteString("== levels ==\n")
	if len(levels) == 0 {
		b.WriteString("(no level played yet)\n")
	}
	for i := range levels {
		b.WriteString("  ")
		b.WriteString(formatLevelLine(&levels[i]))
	}
	if len(levels) > 0 {
		b.WriteByte('\n')
		b.WriteString(m.reporter.WindowSummary().Format())
	}

	events := storyEvents(m.simLog)
	if len(events) > 0 {
		b.WriteString("\nevents:\n")
		for _, e := range events {
			b.WriteString("  - ")
			b.WriteString(e)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Match) ownedBy(c Color) int {
	n := 0
	m.grid.Each(func(_, _ int, s Structure) {
		if s.Color() == c {
			n++
		}
	})
	return n
}

// storyEvents picks the log entries worth telling: eliminations, king and
// bank losses, and the outcome.
func storyEvents(ml *MatchLog) []string {
	var out []string
	for _, e := range ml.Entries() {
		switch {
		case e.Category == "elim":
			out = append(out, fmt.Sprintf("L%d T=%d %s eliminated (%s)", e.Level, e.Tick, e.Player, e.Value))
		case e.Category == "destroy" && (e.Key == KindKing.String() || e.Key == KindBank.String()):
			out = append(out, fmt.Sprintf("L%d T=%d %s lost a %s at %s", e.Level, e.Tick, e.Player, e.Key, e.Value))
		case e.Category == "outcome":
			out = append(out, fmt.Sprintf("L%d T=%d %s", e.Level, e.Tick, e.Value))
		}
	}
	return out
}
