// Package ui is the ebiten front end: it draws a game.Match and turns mouse
// and keyboard input into market actions.
package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/ball-siege/internal/audio"
	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
)

const (
	borderWidth    = 16
	feedPanelWidth = 300
	topBarHeight   = 44
	statusDuration = 2.5 // seconds a status line stays up
)

// Options configures a Game.
type Options struct {
	Config  game.Config
	Seed    int64
	Players int           // 0 shows the player-count picker
	Sound   *audio.Player // nil plays nothing
	Logger  *log.Logger   // nil uses the standard logger
}

// Game implements ebiten.Game around a single match. A finished match can
// be replaced with a fresh one without restarting the window.
type Game struct {
	cfg    game.Config
	seed   int64
	logger *log.Logger
	match  *game.Match
	played int // matches started, offsets the seed of rematches

	feed      *EventFeed
	banner    *Banner
	sound     *audio.Player
	inspector Inspector

	showTerritory bool
	showHUD       bool
	prevKeys      map[ebiten.Key]bool

	status    string
	statusTTL float64
	quit      bool

	width, height  int
	boardX, boardY int
	boardW, boardH int

	// Offscreen buffers, rendered at 1x and blitted scaled.
	hudBuf  *ebiten.Image
	inspBuf *ebiten.Image
}

// WindowSize is the initial window size fitting the configured board.
func WindowSize(cfg game.Config) (w, h int) {
	sw, sh := cfg.SurfaceSize()
	return borderWidth*2 + int(sw) + feedPanelWidth, borderWidth*2 + topBarHeight + int(sh)
}

// New creates the front end. With Options.Players set the first match
// starts immediately.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	g := &Game{
		cfg:      opts.Config,
		seed:     opts.Seed,
		logger:   logger,
		feed:     NewEventFeed(),
		banner:   NewBanner(),
		sound:    opts.Sound,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.width, g.height = WindowSize(g.cfg)
	g.fitBoard()
	if opts.Players > 0 {
		g.startMatch(opts.Players)
	}
	return g
}

// Match returns the current match, nil while the player count is picked.
func (g *Game) Match() *game.Match { return g.match }

// startMatch seats n players on a fresh board.
func (g *Game) startMatch(n int) {
	m := game.NewMatch(g.cfg, g.seed+int64(g.played), game.UseLogger(g.logger),
		game.UseGeometry(g.cfg.GeometryFor(float64(g.boardW), float64(g.boardH))))
	m.Events().SubscribeAll(g.feed)
	m.Events().SubscribeAll(g.banner)
	if g.sound != nil {
		m.Events().SubscribeAll(g.sound)
	}
	if err := m.Setup(n); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.played++
	g.match = m
	g.inspector.Select(0, 0, false)
	g.feed.Add(m.Level(), game.ColorNone, fmt.Sprintf("new match, %d player(s)", n))
}

// resetMatch drops the finished match and returns to the player picker.
func (g *Game) resetMatch() {
	g.match = nil
	g.banner.Hide()
	g.inspector.Select(0, 0, false)
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTTL = statusDuration
}

func (g *Game) Update() error {
	g.handleInput()
	if g.quit {
		if g.sound != nil {
			g.sound.Close()
		}
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.banner.Update(dt)
	if g.statusTTL > 0 {
		g.statusTTL -= dt
	}
	if g.match != nil {
		g.match.Update(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	if g.match == nil {
		g.drawPicker(screen)
		return
	}

	g.drawBoard(screen)
	g.drawBalls(screen)

	ox, oy := float32(g.boardX), float32(g.boardY)
	vector.StrokeRect(screen, ox-1, oy-1, float32(g.boardW)+2, float32(g.boardH)+2, 2.0, panelEdgeColor, false)

	g.drawTopBar(screen)
	g.feed.Draw(screen, g.width-feedPanelWidth, 0, feedPanelWidth, g.height)
	g.drawInspector(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.banner.Draw(screen, g.boardX+g.boardW/2, g.boardY+g.boardH/2)

	if g.statusTTL > 0 && g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, g.boardX+6, g.boardY+g.boardH+1)
	}
}

// drawPicker is the pre-match screen asking for a player count.
func (g *Game) drawPicker(screen *ebiten.Image) {
	g.banner.Draw(screen, g.width/2, g.height/2-60)
	lines := []string{
		"BALL SIEGE",
		"",
		"[1] solo   [2] two players   [4] four players",
		"",
		"[M] mute   [Esc] quit",
	}
	y := g.height/2 - len(lines)*8
	for _, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, g.width/2-len(l)*3, y)
		y += 16
	}
	if g.statusTTL > 0 && g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, g.width/2-len(g.status)*3, y+16)
	}
}

// Layout refits the board to the window. The grid geometry is recomputed
// whenever the available surface changes.
func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.width || outsideH != g.height {
		g.width, g.height = outsideW, outsideH
		g.fitBoard()
		if g.match != nil {
			g.match.SetGeometry(g.cfg.GeometryFor(float64(g.boardW), float64(g.boardH)))
		}
	}
	return g.width, g.height
}

// fitBoard places the board surface inside the window, leaving room for the
// top bar and the event feed.
func (g *Game) fitBoard() {
	g.boardX = borderWidth
	g.boardY = borderWidth + topBarHeight
	g.boardW = max(g.width-feedPanelWidth-2*borderWidth, 1)
	g.boardH = max(g.height-topBarHeight-2*borderWidth, 1)
	g.hudBuf = nil
}

// drawTopBar shows the money counters, the phase and its countdown.
func (g *Game) drawTopBar(screen *ebiten.Image) {
	m := g.match
	x := g.boardX
	y := borderWidth

	for p := 0; p < game.MaxPlayers; p++ {
		c := game.PlayerColor(p)
		fill := colorOf(c)
		if m.Eliminated(p) {
			fill = shade(fill, 0.35)
		}
		vector.FillRect(screen, float32(x), float32(y), 12, 12, fill, false)
		if m.ActivePlayer() == c {
			vector.StrokeRect(screen, float32(x-2), float32(y-2), 16, 16, 1.5, highlightColor, false)
		}
		ebitenutil.DebugPrintAt(screen, game.LedgerDisplay(m.Ledger(), p), x+18, y-2)
		x += 90
	}

	phase := m.Phase().String()
	if m.TimerActive() {
		phase = fmt.Sprintf("%s  %ds", phase, m.TimerSeconds())
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d   %s", m.Level(), phase), x+20, y-2)

	if m.Phase() == game.PhaseMarket {
		g.drawMarketRow(screen, g.boardX, y+18)
	}
	if out, over := m.Result(); over {
		ebitenutil.DebugPrintAt(screen, out.Text()+"   [N] new match  [C] copy report", g.boardX, y+18)
	}
}

// drawMarketRow lists the buyable templates and marks the selected one.
func (g *Game) drawMarketRow(screen *ebiten.Image, x, y int) {
	m := g.match
	sel, hasSel := m.Selection()
	seat := m.MarketTurn()
	balance := m.Ledger().Balance(seat)
	for _, t := range g.cfg.Templates {
		label := fmt.Sprintf("[%s] %s %d€", templateKey(t.Kind), t.Name, t.Price)
		w := len(label)*6 + 8
		edge := panelEdgeColor
		if hasSel && sel.Kind == t.Kind {
			edge = colorOf(m.ActivePlayer())
		}
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), 16, 1, edge, false)
		if t.Price > balance {
			vector.FillRect(screen, float32(x), float32(y), float32(w), 16, color.RGBA{A: 120}, false)
		}
		ebitenutil.DebugPrintAt(screen, label, x+4, y)
		x += w + 8
	}
	ebitenutil.DebugPrintAt(screen, "[Enter] end turn", x+8, y)
}

// drawHUD draws the key legend into hudBuf at 1x, then composites it at
// hudScale into the bottom-right of the board.
func (g *Game) drawHUD(screen *ebiten.Image) {
	const hudScale = 2
	lines := []string{
		"click=build  right-click=inspect",
		"T territory  S skip timer",
		"C copy report  M mute  H hide",
	}
	const lineH, charW, padX, padY = 12, 6, 5, 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := maxLen*charW + padX*2
	boxH := len(lines)*lineH + padY*2

	if g.hudBuf == nil {
		g.hudBuf = ebiten.NewImage(boxW, boxH)
	}
	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, 0, 0, float32(boxW), float32(boxH), color.RGBA{R: 6, G: 8, B: 12, A: 200}, false)
	vector.StrokeRect(g.hudBuf, 0, 0, float32(boxW), float32(boxH), 1.0, panelEdgeColor, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, padX, padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	opts.GeoM.Translate(float64(g.boardX+g.boardW-boxW*hudScale-8), float64(g.boardY+g.boardH-boxH*hudScale-8))
	opts.ColorScale.ScaleAlpha(0.85)
	screen.DrawImage(g.hudBuf, opts)
}
