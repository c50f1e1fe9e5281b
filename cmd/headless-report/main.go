package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/ball-siege/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	players  int
	strategy string

	outcome  game.MatchOutcome
	finished bool // false when the level cap stopped the run
	levels   int  // highest level reached
	ticks    int

	firstEliminationLevel int
	eliminationOrder      []game.Color

	builds    int
	spent     int
	destroyed [game.MaxPlayers + 1]int // structures lost per seat; last slot is neutral
	protected int
	income    [game.MaxPlayers]int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var players int
	var maxLevels int
	var balls int
	var seedBase int64
	var seedStep int64
	var strategy string
	var configPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&players, "players", 2, "players per match (1, 2 or 4)")
	flag.IntVar(&maxLevels, "levels", 30, "stop a match after this many levels")
	flag.IntVar(&balls, "balls", -1, "balls per level (negative keeps the configured formula)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&strategy, "strategy", "fortify", "market strategy: none or fortify")
	flag.StringVar(&configPath, "config", "", "JSON config overlaid on the defaults")
	flag.BoolVar(&verbose, "v", false, "print each match summary")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if players <= 0 {
		fmt.Println("error: -players must be 1, 2 or 4")
		return
	}
	if maxLevels <= 0 {
		fmt.Println("error: -levels must be > 0")
		return
	}
	plan, ok := strategies[strategy]
	if !ok {
		fmt.Printf("error: unsupported strategy %q (supported: %s)\n", strategy, strategyNames())
		return
	}
	cfg := game.DefaultConfig()
	if configPath != "" {
		loaded, err := game.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		cfg = loaded
	}
	if balls >= 0 {
		cfg.BaseBalls = balls
		cfg.BallsPerLevel = 0
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("players=%d strategy=%s runs=%d level_cap=%d seed_base=%d seed_step=%d\n\n",
		players, strategy, runs, maxLevels, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		tm := game.NewTestMatch(
			game.WithConfig(cfg),
			game.WithSeed(seed),
			game.WithPlayers(players),
		)
		if tm.SetupErr != nil {
			fmt.Printf("error: %v\n", tm.SetupErr)
			return
		}
		stats := playMatch(tm, plan, maxLevels)
		stats.runIndex = i + 1
		stats.seed = seed
		stats.strategy = strategy
		all = append(all, stats)
		printRun(stats)
		if verbose {
			fmt.Println(tm.Summary())
		}
	}

	printAggregate(all)
}

// playMatch plays tm to the end or the level cap, letting plan spend each
// market turn.
func playMatch(tm *game.TestMatch, plan marketPlan, maxLevels int) runStats {
	for tm.Phase() != game.PhaseGameOver && tm.Level() <= maxLevels {
		if tm.Phase() == game.PhaseMarket {
			plan(tm.Match)
			_ = tm.EndTurn()
			continue
		}
		tm.Update(tm.Step())
	}
	return collectStats(tm)
}

func collectStats(tm *game.TestMatch) runStats {
	rs := runStats{
		players:               tm.NumPlayers(),
		levels:                tm.Level(),
		ticks:                 tm.Tick(),
		firstEliminationLevel: -1,
		windowSummary:         tm.Reporter().WindowSummary(),
	}
	rs.outcome, rs.finished = tm.Result()

	for _, e := range tm.Log().Entries() {
		switch e.Category {
		case "build":
			rs.builds++
			rs.spent += int(e.NumVal)
		case "destroy":
			if p := game.PlayerIndex(game.Color(e.Player)); p >= 0 {
				rs.destroyed[p]++
			} else {
				rs.destroyed[game.MaxPlayers]++
			}
		case "elim":
			if rs.firstEliminationLevel < 0 {
				rs.firstEliminationLevel = e.Level
			}
			rs.eliminationOrder = append(rs.eliminationOrder, game.Color(e.Player))
		}
	}
	for _, rpt := range tm.Reporter().History() {
		rs.protected += rpt.Protected
		for p := range rpt.Income {
			rs.income[p] += rpt.Income[p]
		}
	}
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	result := "capped"
	if rs.finished {
		result = rs.outcome.Text()
	}
	fmt.Printf("result: %s  level=%d ticks=%d\n", result, rs.levels, rs.ticks)
	fmt.Printf("economy: builds=%d spent=%d income=%s\n", rs.builds, rs.spent, formatSeats(rs.income[:rs.players]))
	fmt.Printf("losses: %s neutral=%d protected_hits=%d\n",
		formatSeats(rs.destroyed[:rs.players]), rs.destroyed[game.MaxPlayers], rs.protected)
	fmt.Printf("eliminations: first_level=%d order=%s\n", rs.firstEliminationLevel, joinColors(rs.eliminationOrder))
	if stalled, reason := detectStall(rs); stalled {
		fmt.Printf("stall: %s\n", reason)
	}
	fmt.Print(rs.windowSummary.Format())
	fmt.Println()
}

func printAggregate(all []runStats) {
	levels := make([]int, 0, len(all))
	firstElims := make([]int, 0, len(all))
	totalBuilds := 0
	totalSpent := 0
	stalls := 0
	for _, rs := range all {
		levels = append(levels, rs.levels)
		if rs.firstEliminationLevel >= 0 {
			firstElims = append(firstElims, rs.firstEliminationLevel)
		}
		totalBuilds += rs.builds
		totalSpent += rs.spent
		if stalled, _ := detectStall(rs); stalled {
			stalls++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d stalled=%d\n", len(all), stalls)
	fmt.Printf("avg_per_run: builds=%.1f spent=%.1f\n", avg(totalBuilds, len(all)), avg(totalSpent, len(all)))
	fmt.Printf("level_reached: avg=%s  first_elimination_avg=%s\n", avgString(levels), avgString(firstElims))

	tally := winTally(all)
	keys := make([]string, 0, len(tally))
	for k := range tally {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Print("results:")
	for _, k := range keys {
		fmt.Printf(" %s=%d", k, tally[k])
	}
	fmt.Println()
}

// winTally counts match results by winner colour, or by outcome kind for
// matches without a winner.
func winTally(all []runStats) map[string]int {
	tally := map[string]int{}
	for _, rs := range all {
		switch {
		case !rs.finished:
			tally["capped"]++
		case rs.outcome.Kind == game.OutcomeWinner:
			tally[string(rs.outcome.Winner)]++
		default:
			tally[rs.outcome.Kind.String()]++
		}
	}
	return tally
}

// detectStall flags a multiplayer run that hit the level cap with every
// king still standing.
func detectStall(rs runStats) (bool, string) {
	if rs.finished {
		return false, "finished"
	}
	if rs.players < 2 {
		return false, "solo"
	}
	if len(rs.eliminationOrder) > 0 {
		return false, "eliminations"
	}
	return true, fmt.Sprintf("no_elimination_by_level_%d", rs.levels)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func formatSeats(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%s=%d", game.PlayerColor(i), v)
	}
	return strings.Join(parts, " ")
}

func joinColors(cs []game.Color) string {
	if len(cs) == 0 {
		return "none"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
