package game

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// TestMatch is a headless match harness used by tests and the batch runner.
// It wraps a real Match, seeds it deterministically, silences lifecycle
// logging and records every dispatched event.
type TestMatch struct {
	*Match

	Cfg      Config
	Players  int
	SetupErr error
	Recorder *EventRecorder

	seed     int64
	verbose  bool
	surfaceW float64
	surfaceH float64
}

// matchOptionKind controls the pass in which an option is applied.
type matchOptionKind int

const (
	matchOptInfra matchOptionKind = iota // config, seed, players, verbose: applied before the match exists
	matchOptBoard                        // structures and balances: applied after Setup
)

// TestOption is a builder function applied to a TestMatch during construction.
type TestOption struct {
	kind matchOptionKind
	fn   func(*TestMatch)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) { tm.seed = seed }}
}

// WithPlayers sets the player count passed to Setup. 0 leaves the match in
// the setup phase.
func WithPlayers(n int) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) { tm.Players = n }}
}

// WithGridSize sets the board dimensions.
func WithGridSize(rows, cols int) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) {
		tm.Cfg.Rows = rows
		tm.Cfg.Cols = cols
	}}
}

// WithSurface fits the board to a w x h surface instead of the configured layout.
func WithSurface(w, h float64) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) {
		tm.surfaceW = w
		tm.surfaceH = h
	}}
}

// WithBaseWalls sets how many neutral walls Setup generates. The harness
// default is none so boards start empty apart from kings.
func WithBaseWalls(n int) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) { tm.Cfg.BaseWalls = n }}
}

// WithBallCount makes every level spawn exactly n balls.
func WithBallCount(n int) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) {
		tm.Cfg.BaseBalls = n
		tm.Cfg.BallsPerLevel = 0
	}}
}

// WithConfig replaces the whole configuration. Apply it before other
// config-touching options.
func WithConfig(cfg Config) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) { tm.Cfg = cfg }}
}

// WithVerbose records every structure hit in the match log.
func WithVerbose(v bool) TestOption {
	return TestOption{matchOptInfra, func(tm *TestMatch) { tm.verbose = v }}
}

// WithStructure places s at (r, c) after Setup, replacing whatever is there.
func WithStructure(r, c int, s Structure) TestOption {
	return TestOption{matchOptBoard, func(tm *TestMatch) { tm.grid.Set(r, c, s) }}
}

// WithBalance sets a seat's money after Setup.
func WithBalance(player, amount int) TestOption {
	return TestOption{matchOptBoard, func(tm *TestMatch) { tm.ledger.SetBalance(player, amount) }}
}

// NewTestMatch constructs a TestMatch from the given options in two passes:
//  1. Infrastructure (config, seed, players, verbose), then the match and Setup
//  2. Board (structures, balances)
func NewTestMatch(opts ...TestOption) *TestMatch {
	tm := &TestMatch{
		Cfg:     DefaultConfig(),
		Players: 1,
		seed:    1,
	}
	tm.Cfg.BaseWalls = 0
	for _, o := range opts {
		if o.kind == matchOptInfra {
			o.fn(tm)
		}
	}

	quiet := log.New()
	quiet.SetOutput(io.Discard)
	mopts := []MatchOption{UseLogger(quiet), UseMatchLog(NewMatchLog(tm.verbose))}
	if tm.surfaceW > 0 && tm.surfaceH > 0 {
		mopts = append(mopts, UseGeometry(tm.Cfg.GeometryFor(tm.surfaceW, tm.surfaceH)))
	}
	tm.Match = NewMatch(tm.Cfg, tm.seed, mopts...)
	tm.Recorder = NewEventRecorder()
	tm.Match.Events().SubscribeAll(tm.Recorder)

	if tm.Players != 0 {
		tm.SetupErr = tm.Setup(tm.Players)
	}
	for _, o := range opts {
		if o.kind == matchOptBoard {
			o.fn(tm)
		}
	}
	return tm
}

// Step is the duration of one harness tick.
func (tm *TestMatch) Step() float64 {
	return tm.Cfg.MaxSimStep
}

// RunTicks advances the match n ticks of MaxSimStep each.
func (tm *TestMatch) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tm.Update(tm.Step())
	}
}

// RunUntil advances the match up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tm *TestMatch) RunUntil(predicate func(*TestMatch) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tm.Update(tm.Step())
		if predicate(tm) {
			return tm.Tick()
		}
	}
	return -1
}

// SkipMarket ends every remaining market turn.
func (tm *TestMatch) SkipMarket() {
	for tm.Phase() == PhaseMarket {
		if err := tm.EndTurn(); err != nil {
			return
		}
	}
}

// PlaceBall adds a ball to the running level.
func (tm *TestMatch) PlaceBall(x, y, vx, vy float64) *Ball {
	b := NewBall(x, y, vx, vy, tm.Cfg.BallRadius)
	tm.balls = append(tm.balls, b)
	return b
}

// ClearBalls removes every ball.
func (tm *TestMatch) ClearBalls() {
	tm.balls = nil
}

// CellCenter returns the surface coordinates of the centre of (r, c).
func (tm *TestMatch) CellCenter(r, c int) (x, y float64) {
	rc := tm.Geometry().CellRect(r, c)
	return rc.X + rc.W/2, rc.Y + rc.H/2
}

// EventRecorder keeps every event it receives.
type EventRecorder struct {
	Events []Event
}

// NewEventRecorder creates an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) OnEvent(e Event) {
	r.Events = append(r.Events, e)
}

// OfType returns the recorded events of type t, oldest first.
func (r *EventRecorder) OfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Phases returns the phases entered, in order.
func (r *EventRecorder) Phases() []Phase {
	var out []Phase
	for _, e := range r.OfType(EventPhaseEnter) {
		out = append(out, e.Data.(PhaseEvent).Phase)
	}
	return out
}

// Reset drops everything recorded so far.
func (r *EventRecorder) Reset() {
	r.Events = nil
}
