// Package term is a terminal front end for a match, drawn with tcell. Every
// board cell is two columns wide; balls show as a count over the cell they
// cross.
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
)

const (
	frameInterval = 33 * time.Millisecond
	feedLines     = 6
	boardTop      = 2 // rows above the board: money bar and phase line
)

// Options configures an App.
type Options struct {
	Config  game.Config
	Seed    int64
	Players int
	Logger  *log.Logger
}

// App drives one match on a terminal screen.
type App struct {
	screen tcell.Screen
	match  *game.Match
	logger *log.Logger

	cursorRow, cursorCol int
	showTerritory        bool
	status               string
	feed                 []string
	last                 time.Time
}

// New seats opts.Players on a fresh match drawn onto screen. The screen must
// already be initialised; the caller owns Fini.
func New(screen tcell.Screen, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	a := &App{screen: screen, logger: logger}
	m := game.NewMatch(opts.Config, opts.Seed, game.UseLogger(logger))
	m.Events().SubscribeAll(game.ListenerFunc(a.onEvent))
	if err := m.Setup(opts.Players); err != nil {
		return nil, err
	}
	a.match = m
	if seats := m.Seats(); len(seats) > 0 {
		a.cursorRow, a.cursorCol = seats[0].Row, seats[0].Col
	}
	return a, nil
}

// Match returns the match being played.
func (a *App) Match() *game.Match { return a.match }

func (a *App) onEvent(e game.Event) {
	if _, _, msg, ok := game.DescribeEvent(e); ok {
		a.feed = append(a.feed, msg)
		if len(a.feed) > feedLines {
			a.feed = a.feed[len(a.feed)-feedLines:]
		}
	}
}

// errQuit ends Run without error.
var errQuit = errors.New("quit")

// Run polls input and advances the match until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan tcell.Event, 64)
	go pumpEvents(ctx, a.screen.PollEvent, events)

	a.last = time.Now()
	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.handleEvent(ev); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
			a.draw()
		case now := <-ticker.C:
			a.match.Update(now.Sub(a.last).Seconds())
			a.last = now
			a.draw()
		}
	}
}

// pumpEvents forwards polled events to out until poll returns nil, which closes
// out, or ctx ends.
func pumpEvents(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.HandleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return nil
}

// HandleKey applies one key press. Arrow keys move the build cursor, w/r/b
// pick a template, space builds, enter ends the turn.
func (a *App) HandleKey(ev *tcell.EventKey) error {
	m := a.match
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return errQuit
	case tcell.KeyUp:
		a.moveCursor(-1, 0)
	case tcell.KeyDown:
		a.moveCursor(1, 0)
	case tcell.KeyLeft:
		a.moveCursor(0, -1)
	case tcell.KeyRight:
		a.moveCursor(0, 1)
	case tcell.KeyEnter:
		a.report(m.EndTurn())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return errQuit
		case 'w':
			a.report(m.Select(game.KindWall))
		case 'r':
			a.report(m.Select(game.KindRegeneratingWall))
		case 'b':
			a.report(m.Select(game.KindBank))
		case ' ':
			a.report(m.BuildSelected(a.cursorRow, a.cursorCol))
		case 's':
			m.ExpireTimer()
		case 't':
			a.showTerritory = !a.showTerritory
		}
	}
	return nil
}

func (a *App) report(err error) {
	if err != nil {
		a.status = err.Error()
		return
	}
	a.status = ""
}

func (a *App) moveCursor(dr, dc int) {
	cfg := a.match.Config()
	a.cursorRow = min(max(a.cursorRow+dr, 0), cfg.Rows-1)
	a.cursorCol = min(max(a.cursorCol+dc, 0), cfg.Cols-1)
}

// draw repaints the whole screen.
func (a *App) draw() {
	s := a.screen
	s.Clear()
	m := a.match
	plain := tcell.StyleDefault

	x := 0
	for p := 0; p < game.MaxPlayers; p++ {
		st := plain.Foreground(colorOf(game.PlayerColor(p)))
		if m.ActivePlayer() == game.PlayerColor(p) {
			st = st.Reverse(true)
		}
		x = drawText(s, x, 0, st, fmt.Sprintf(" %s %s ", game.PlayerColor(p), game.LedgerDisplay(m.Ledger(), p)))
		x++
	}

	phase := fmt.Sprintf("Level %d  %s", m.Level(), m.Phase())
	if m.TimerActive() {
		phase += fmt.Sprintf("  %ds", m.TimerSeconds())
	}
	if sel, ok := m.Selection(); ok {
		phase += fmt.Sprintf("  [%s %d€]", sel.Name, sel.Price)
	}
	if out, over := m.Result(); over {
		phase = out.Text()
	}
	drawText(s, 0, 1, plain.Bold(true), phase)

	grid := m.Grid()
	terr := m.Territory()
	active := m.ActivePlayer()
	balls := ballCounts(m.Balls(), m.Geometry())
	sr, sc := m.Spawner()
	cfg := m.Config()
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			st := grid.At(r, c)
			style := cellStyle(st, terr.Label(r, c), active, a.showTerritory)
			g := glyphs(st)
			if st == nil && r == sr && c == sc {
				g = [cellWidth]rune{'@', ' '}
			}
			if n := balls[[2]int{r, c}]; n > 0 && st == nil {
				g = [cellWidth]rune{'o', livesRune(n)}
				style = style.Foreground(tcell.ColorWhite)
			}
			if m.Phase() == game.PhaseMarket && r == a.cursorRow && c == a.cursorCol {
				style = style.Reverse(true)
			}
			for i, ch := range g {
				s.SetContent(c*cellWidth+i, boardTop+r, ch, nil, style)
			}
		}
	}

	y := boardTop + cfg.Rows + 1
	if a.status != "" {
		drawText(s, 0, y, plain.Foreground(tcell.ColorYellow), a.status)
	}
	y++
	drawText(s, 0, y, plain.Dim(true), "arrows move  w/r/b pick  space build  enter end turn  s skip  t territory  q quit")
	y++
	for _, line := range a.feed {
		y++
		drawText(s, 0, y, plain, line)
	}
	s.Show()
}
