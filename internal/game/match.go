package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Phase is the state of the match state machine.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseMarket
	PhaseLevelRunning
	PhaseLevelEnded
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseMarket:
		return "market"
	case PhaseLevelRunning:
		return "level_running"
	case PhaseLevelEnded:
		return "level_ended"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MatchState is the session state the phase machine mutates.
type MatchState struct {
	NumPlayers int
	Eliminated [MaxPlayers]bool
	Level      int
	MarketTurn int       // active seat, -1 outside a market
	Selection  *Template // structure picked for the next build, nil for none
}

// AliveCount returns how many seated players still have their king.
func (s MatchState) AliveCount() int {
	n := 0
	for i := 0; i < s.NumPlayers; i++ {
		if !s.Eliminated[i] {
			n++
		}
	}
	return n
}

// MatchOption customises a Match at construction.
type MatchOption func(*Match)

// UseLedger replaces the default in-memory ledger.
func UseLedger(l Ledger) MatchOption {
	return func(m *Match) { m.ledger = l }
}

// UseMatchLog replaces the default (non-verbose) match log.
func UseMatchLog(ml *MatchLog) MatchOption {
	return func(m *Match) { m.simLog = ml }
}

// UseLogger routes lifecycle logging through l.
func UseLogger(l *log.Logger) MatchOption {
	return func(m *Match) { m.log = l.WithField("match", m.ID) }
}

// UseGeometry fits the board to a surface other than the configured layout.
func UseGeometry(g GridGeometry) MatchOption {
	return func(m *Match) { m.geom = g }
}

// Match is one game session: the grid, the balls, the money and the phase
// machine that drives them. It is single-threaded; the caller drives it by
// calling Update once per frame and forwarding player input between frames.
type Match struct {
	ID string

	cfg       Config
	log       *log.Entry
	rng       *rand.Rand
	grid      *Grid
	geom      GridGeometry
	territory *Territory
	ledger    Ledger
	events    *Dispatcher
	simLog    *MatchLog
	reporter  *LevelReporter

	state     MatchState
	phase     Phase
	seats     []KingSeat
	balls     []*Ball
	timer     *Countdown
	clock     float64 // simulated seconds since construction
	tick      int
	outcome   MatchOutcome
	setupDone bool
}

// NewMatch creates a match in the setup phase. seed drives ball directions
// and base-wall placement.
func NewMatch(cfg Config, seed int64, opts ...MatchOption) *Match {
	m := &Match{
		ID:        uuid.New().String(),
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		grid:      NewGrid(cfg.Rows, cfg.Cols),
		geom:      cfg.Geometry(),
		territory: NewTerritory(cfg.Rows, cfg.Cols),
		ledger:    NewMemoryLedger(),
		events:    NewDispatcher(),
		simLog:    NewMatchLog(false),
		reporter:  NewLevelReporter(0),
		state:     MatchState{Level: 1, MarketTurn: -1},
		phase:     PhaseSetup,
	}
	m.log = log.WithField("match", m.ID)
	for _, o := range opts {
		o(m)
	}
	return m
}

// Setup seats numPlayers players: kings are placed, base walls generated and
// territory computed, then the first market opens. Any count other than 1, 2
// or 4 is rejected without touching the match.
func (m *Match) Setup(numPlayers int) error {
	if m.setupDone {
		return ErrAlreadyStarted
	}
	if numPlayers != 1 && numPlayers != 2 && numPlayers != 4 {
		m.log.WithField("players", numPlayers).Error("rejected setup")
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, numPlayers)
	}
	m.setupDone = true
	m.state.NumPlayers = numPlayers

	m.seats = KingSeats(numPlayers, m.cfg.Rows, m.cfg.Cols)
	for _, s := range m.seats {
		m.grid.Set(s.Row, s.Col, NewKing(s.Color, m.cfg.KingLives, m.cfg.KingIncome))
	}
	for p := 0; p < MaxPlayers; p++ {
		if p < numPlayers {
			m.ledger.SetBalance(p, m.cfg.StartingMoney)
		} else {
			m.ledger.MarkEliminated(p)
		}
	}
	walls := GenerateBaseWalls(m.grid, numPlayers, m.cfg.BaseWalls, m.rng)
	m.territory = ComputeTerritory(numPlayers, m.seats, m.cfg.Rows, m.cfg.Cols, m.cfg.BuildDistance)

	m.simLog.Add(m.tick, m.state.Level, "--", "phase", "setup",
		fmt.Sprintf("players=%d base_walls=%d", numPlayers, walls), float64(numPlayers))
	m.log.WithFields(log.Fields{
		"players":    numPlayers,
		"base_walls": walls,
		"grid":       fmt.Sprintf("%dx%d", m.cfg.Rows, m.cfg.Cols),
	}).Info("match set up")

	m.enterMarket()
	return nil
}

// --- Market ---

func (m *Match) enterMarket() {
	m.state.MarketTurn = -1
	m.advanceMarketTurn()
}

// advanceMarketTurn hands the market to the next seat that still has a king.
// Running past the last seat closes the market and starts the level.
func (m *Match) advanceMarketTurn() {
	m.timer.Cancel()
	m.state.Selection = nil
	for {
		m.state.MarketTurn++
		if m.state.MarketTurn >= m.state.NumPlayers {
			m.endMarket()
			return
		}
		if !m.state.Eliminated[m.state.MarketTurn] {
			break
		}
	}

	m.phase = PhaseMarket
	m.timer = NewCountdown(m.clock, m.cfg.MarketTurnTime)
	c := PlayerColor(m.state.MarketTurn)
	m.simLog.Add(m.tick, m.state.Level, string(c), "market", "turn_start",
		fmt.Sprintf("seat %d", m.state.MarketTurn), float64(m.state.MarketTurn))
	m.enterPhase(PhaseMarket, "Market Time")
}

func (m *Match) endMarket() {
	m.state.MarketTurn = -1
	m.state.Selection = nil
	m.simLog.Add(m.tick, m.state.Level, "--", "market", "closed", "", 0)
	m.startLevel(m.cfg.BallsForLevel(m.state.Level))
}

// EndTurn gives up the rest of the active player's market turn.
func (m *Match) EndTurn() error {
	if m.phase == PhaseGameOver {
		return ErrGameOver
	}
	if m.phase != PhaseMarket {
		return ErrNotInMarket
	}
	m.simLog.Add(m.tick, m.state.Level, string(m.ActivePlayer()), "market", "turn_end",
		fmt.Sprintf("%.1fs left", m.timer.Remaining(m.clock)), m.timer.Remaining(m.clock))
	m.advanceMarketTurn()
	return nil
}

// Select picks the template the active player builds with on the next
// BuildSelected call.
func (m *Match) Select(kind StructureKind) error {
	if m.phase == PhaseGameOver {
		return ErrGameOver
	}
	if m.phase != PhaseMarket {
		return ErrNotInMarket
	}
	t, ok := m.cfg.Template(kind)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, kind)
	}
	m.state.Selection = &t
	return nil
}

// ClearSelection drops the current template selection.
func (m *Match) ClearSelection() {
	m.state.Selection = nil
}

// Selection returns the selected template, if any.
func (m *Match) Selection() (Template, bool) {
	if m.state.Selection == nil {
		return Template{}, false
	}
	return *m.state.Selection, true
}

// BuildSelected builds the selected template at (row, col).
func (m *Match) BuildSelected(row, col int) error {
	if m.state.Selection == nil {
		if m.phase != PhaseMarket {
			return ErrNotInMarket
		}
		return ErrNoSelection
	}
	return m.Build(row, col, m.state.Selection.Kind)
}

// Build buys a structure of the given kind for the active market player and
// places it at (row, col). The request fails, leaving the match untouched,
// when the player can't afford it, the cell holds a king or another
// player's structure, or the cell lies in an enemy king's territory. The
// player's own non-king structures are replaced.
func (m *Match) Build(row, col int, kind StructureKind) error {
	if m.phase == PhaseGameOver {
		return ErrGameOver
	}
	if m.phase != PhaseMarket {
		return ErrNotInMarket
	}
	t, ok := m.cfg.Template(kind)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, kind)
	}
	if !m.grid.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	seat := m.state.MarketTurn
	owner := PlayerColor(seat)
	balance := m.ledger.Balance(seat)
	if balance < t.Price {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, t.Name, t.Price, balance)
	}
	if prev := m.grid.At(row, col); prev != nil && (prev.Color() != owner || prev.Kind() == KindKing) {
		return fmt.Errorf("%w: %s at (%d,%d)", ErrCellOccupied, prev.Kind(), row, col)
	}
	if !m.territory.CanBuild(row, col, owner) {
		return fmt.Errorf("%w: (%d,%d) belongs to %s", ErrTerritoryDenied, row, col, m.territory.Label(row, col))
	}

	s, err := NewFromTemplate(t, owner)
	if err != nil {
		return err
	}
	m.grid.Set(row, col, s)
	m.setBalance(seat, balance-t.Price)
	m.simLog.Add(m.tick, m.state.Level, string(owner), "build", kind.String(),
		fmt.Sprintf("(%d,%d) price=%d", row, col, t.Price), float64(t.Price))
	m.events.Dispatch(Event{Type: EventStructureChanged, Data: StructureEvent{
		Row: row, Col: col, Kind: s.Kind(), Color: owner, Lives: s.Lives(), Present: true,
	}})
	return nil
}

// --- Levels ---

// StartLevel ends any market early and starts the current level with the
// given number of balls. A negative count uses the configured formula.
func (m *Match) StartLevel(balls int) error {
	switch m.phase {
	case PhaseSetup:
		return ErrNotSetUp
	case PhaseGameOver:
		return ErrGameOver
	}
	if balls < 0 {
		balls = m.cfg.BallsForLevel(m.state.Level)
	}
	m.startLevel(balls)
	return nil
}

func (m *Match) startLevel(balls int) {
	m.timer.Cancel()
	m.state.MarketTurn = -1
	m.state.Selection = nil

	cx, cy := m.geom.Center()
	m.balls = SpawnBalls(balls, cx, cy, m.cfg.BallSpeed, m.cfg.BallRadius, m.rng)
	m.phase = PhaseLevelRunning
	m.timer = NewCountdown(m.clock, m.cfg.TimePerLevel)
	m.reporter.BeginLevel(m.state.Level, balls)
	m.simLog.Add(m.tick, m.state.Level, "--", "phase", "balls",
		fmt.Sprintf("%d balls", balls), float64(balls))
	m.enterPhase(PhaseLevelRunning, fmt.Sprintf("Level %d", m.state.Level))
}

// endLevel clears the balls, advances the level counter and runs every
// structure's per-level action before deciding between market and next level.
func (m *Match) endLevel() {
	m.timer.Cancel()
	m.balls = nil
	m.phase = PhaseLevelEnded
	m.enterPhase(PhaseLevelEnded, fmt.Sprintf("Level %d Complete", m.state.Level))

	m.state.Level++
	m.runTurnActions()
	m.reporter.EndLevel(m.state.AliveCount(), m.standing(), false)

	if (m.state.Level-1)%m.cfg.MarketEvery == 0 {
		m.enterMarket()
		return
	}
	m.startLevel(m.cfg.BallsForLevel(m.state.Level))
}

// runTurnActions applies income and regeneration in row-major order.
func (m *Match) runTurnActions() {
	m.grid.Each(func(r, c int, s Structure) {
		s.OnTurn(m)
		if s.Kind() == KindRegeneratingWall {
			m.events.Dispatch(Event{Type: EventStructureChanged, Data: StructureEvent{
				Row: r, Col: c, Kind: s.Kind(), Color: s.Color(), Lives: s.Lives(), Present: true,
			}})
		}
	})
}

// Credit pays amount to the player owning c. Eliminated players and
// neutral colours receive nothing.
func (m *Match) Credit(c Color, amount int) {
	p := PlayerIndex(c)
	if p < 0 || p >= m.state.NumPlayers || m.state.Eliminated[p] {
		return
	}
	m.setBalance(p, m.ledger.Balance(p)+amount)
	m.reporter.RecordIncome(p, amount)
	m.simLog.Add(m.tick, m.state.Level, string(c), "turn", "income",
		fmt.Sprintf("+%d", amount), float64(amount))
}

func (m *Match) setBalance(p, amount int) {
	prev := m.ledger.Balance(p)
	m.ledger.SetBalance(p, amount)
	m.events.Dispatch(Event{Type: EventBalanceChanged, Data: BalanceEvent{
		Player: p, Balance: amount, Delta: amount - prev,
	}})
}

func (m *Match) standing() int {
	n := 0
	m.grid.Each(func(int, int, Structure) { n++ })
	return n
}

// --- Simulation ---

// Update advances the match by dt seconds. Long frames are split into steps
// no longer than Config.MaxSimStep so fast balls can't tunnel through cells.
func (m *Match) Update(dt float64) {
	if !(dt > 0) {
		return
	}
	step := m.cfg.MaxSimStep
	for dt > 0 && m.running() {
		h := math.Min(dt, step)
		dt -= h
		m.step(h)
	}
}

func (m *Match) running() bool {
	return m.phase != PhaseSetup && m.phase != PhaseGameOver
}

func (m *Match) step(h float64) {
	m.clock += h
	m.tick++
	if m.phase == PhaseLevelRunning {
		m.reporter.RecordTick()
		m.simulateBalls(h)
		if m.phase == PhaseGameOver {
			return
		}
	}
	if m.timer.Poll(m.clock) {
		m.onTimerExpired()
	}
}

func (m *Match) onTimerExpired() {
	switch m.phase {
	case PhaseMarket:
		m.simLog.Add(m.tick, m.state.Level, string(m.ActivePlayer()), "market", "timeout", "", 0)
		m.advanceMarketTurn()
	case PhaseLevelRunning:
		m.endLevel()
	}
}

// ExpireTimer fires the active countdown immediately, as if its deadline had
// passed. Presenters use it for "skip"; tests use it to step phases.
func (m *Match) ExpireTimer() {
	if !m.timer.Active() || !m.running() {
		return
	}
	m.timer.Cancel()
	m.onTimerExpired()
}

func (m *Match) simulateBalls(h float64) {
	for _, b := range m.balls {
		b.Update(h, m.geom)
		res := ResolveCollision(b, m.grid, m.geom)
		if !res.Hit {
			continue
		}
		m.onHit(res)
		if m.phase == PhaseGameOver {
			return
		}
	}
}

func (m *Match) onHit(res CollisionResult) {
	m.reporter.RecordHit(res)
	m.simLog.AddVerbose(m.tick, m.state.Level, string(res.Color), "hit", res.Kind.String(),
		fmt.Sprintf("(%d,%d) %s", res.Row, res.Col, res.Effect), 0)

	switch res.Effect {
	case HitDamaged:
		s := m.grid.At(res.Row, res.Col)
		m.events.Dispatch(Event{Type: EventStructureChanged, Data: StructureEvent{
			Row: res.Row, Col: res.Col, Kind: res.Kind, Color: res.Color,
			Lives: s.Lives(), Present: true, Effect: res.Effect,
		}})
	case HitDestroyed:
		m.simLog.Add(m.tick, m.state.Level, string(res.Color), "destroy", res.Kind.String(),
			fmt.Sprintf("(%d,%d)", res.Row, res.Col), 0)
		m.events.Dispatch(Event{Type: EventStructureChanged, Data: StructureEvent{
			Row: res.Row, Col: res.Col, Kind: res.Kind, Color: res.Color, Effect: res.Effect,
		}})
		if res.Kind == KindKing {
			m.Eliminate(res.Color)
		}
	}
}

// --- Elimination ---

// Eliminate knocks out the player owning c and ends the match if that
// decides it. Unknown, unseated or already eliminated colours are ignored.
func (m *Match) Eliminate(c Color) {
	p := PlayerIndex(c)
	if p < 0 || p >= m.state.NumPlayers || m.state.Eliminated[p] || m.phase == PhaseGameOver {
		return
	}
	m.state.Eliminated[p] = true
	m.ledger.MarkEliminated(p)
	v := EvaluateVictory(m.state.NumPlayers, m.state.Eliminated[:m.state.NumPlayers])

	m.log.WithFields(log.Fields{"player": c, "level": m.state.Level, "alive": v.Alive}).Warn("player eliminated")
	m.simLog.Add(m.tick, m.state.Level, string(c), "elim", "king_lost",
		fmt.Sprintf("alive=%d", v.Alive), float64(v.Alive))
	m.reporter.RecordElimination(c)
	m.events.Dispatch(Event{Type: EventPlayerEliminated, Data: EliminationEvent{
		Player: p, Color: c, Level: m.state.Level, Alive: v.Alive,
	}})

	if v.Over {
		m.finish(v)
		return
	}
	if m.phase == PhaseMarket && m.state.MarketTurn == p {
		m.advanceMarketTurn()
	}
}

// finish stops the simulation for good: the timer is cancelled, the balls
// are dropped and the outcome is published.
func (m *Match) finish(v Verdict) {
	m.timer.Cancel()
	m.balls = nil
	m.state.MarketTurn = -1
	m.state.Selection = nil
	m.outcome = DetermineOutcome(m.state.NumPlayers, m.state.Level, v)
	m.reporter.EndLevel(v.Alive, m.standing(), true)
	m.phase = PhaseGameOver

	m.simLog.Add(m.tick, m.state.Level, string(m.outcome.Winner), "outcome", m.outcome.String(),
		m.outcome.Text(), float64(m.state.Level))
	m.log.WithFields(log.Fields{
		"outcome": m.outcome.String(),
		"level":   m.state.Level,
		"winner":  m.outcome.Winner,
	}).Info("match over")
	m.enterPhase(PhaseGameOver, "Game Over")
	m.events.Dispatch(Event{Type: EventGameOver, Data: GameOverEvent{Outcome: m.outcome}})
}

// enterPhase notifies listeners of a transition. Listeners run synchronously
// and can't hold the transition back.
func (m *Match) enterPhase(p Phase, title string) {
	ev := PhaseEvent{
		Phase:      p,
		Level:      m.state.Level,
		MarketTurn: m.state.MarketTurn,
		Player:     m.ActivePlayer(),
		Title:      title,
		Duration:   m.timer.Remaining(m.clock),
	}
	m.simLog.Add(m.tick, m.state.Level, "--", "phase", "enter", p.String(), float64(p))
	m.log.WithFields(log.Fields{
		"phase":  p.String(),
		"level":  m.state.Level,
		"player": ev.Player,
	}).Info(title)
	m.events.Dispatch(Event{Type: EventPhaseEnter, Data: ev})
}

// --- Accessors ---

func (m *Match) Phase() Phase             { return m.phase }
func (m *Match) Level() int               { return m.state.Level }
func (m *Match) MarketTurn() int          { return m.state.MarketTurn }
func (m *Match) NumPlayers() int          { return m.state.NumPlayers }
func (m *Match) Balls() []*Ball           { return m.balls }
func (m *Match) Grid() *Grid              { return m.grid }
func (m *Match) Territory() *Territory    { return m.territory }
func (m *Match) Geometry() GridGeometry   { return m.geom }
func (m *Match) Ledger() Ledger           { return m.ledger }
func (m *Match) Events() *Dispatcher      { return m.events }
func (m *Match) Log() *MatchLog           { return m.simLog }
func (m *Match) Reporter() *LevelReporter { return m.reporter }
func (m *Match) Config() Config           { return m.cfg }
func (m *Match) Seats() []KingSeat        { return m.seats }
func (m *Match) Tick() int                { return m.tick }
func (m *Match) Clock() float64           { return m.clock }

// State returns a copy of the session state.
func (m *Match) State() MatchState {
	s := m.state
	if s.Selection != nil {
		t := *s.Selection
		s.Selection = &t
	}
	return s
}

// SetGeometry refits the board after the surface was resized. Balls keep
// their positions; the next bounds check pulls them back inside.
func (m *Match) SetGeometry(g GridGeometry) {
	m.geom = g
}

// AliveCount returns how many seated players still have their king.
func (m *Match) AliveCount() int { return m.state.AliveCount() }

// Eliminated reports whether seat p has been knocked out.
func (m *Match) Eliminated(p int) bool {
	return p >= 0 && p < m.state.NumPlayers && m.state.Eliminated[p]
}

// ActivePlayer returns the colour whose market turn it is, or ColorNone.
func (m *Match) ActivePlayer() Color {
	if m.phase != PhaseMarket {
		return ColorNone
	}
	return PlayerColor(m.state.MarketTurn)
}

// Result returns the outcome once the match is over.
func (m *Match) Result() (MatchOutcome, bool) {
	return m.outcome, m.phase == PhaseGameOver
}

// TimerRemaining returns the seconds left on the active countdown.
func (m *Match) TimerRemaining() float64 {
	return m.timer.Remaining(m.clock)
}

// TimerSeconds is TimerRemaining rounded up for display.
func (m *Match) TimerSeconds() int {
	return m.timer.Seconds(m.clock)
}

// TimerActive reports whether a phase countdown is running.
func (m *Match) TimerActive() bool {
	return m.timer.Active()
}

// Spawner returns the cell drawn as the ball spawner, the centre of the board.
func (m *Match) Spawner() (row, col int) {
	return (m.cfg.Rows - 1) / 2, (m.cfg.Cols - 1) / 2
}
