package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/basicfont"
)

const (
	bannerFadeIn  = 0.35 // seconds
	bannerHold    = 1.2
	bannerFadeOut = 0.5
)

type bannerStage int

const (
	bannerIdle bannerStage = iota
	bannerIn
	bannerHolding
	bannerOut
)

// Banner is the phase announcement faded over the board: "Market Time",
// "Level 3", "Game Over". A sticky banner stays up once faded in.
type Banner struct {
	Title    string
	Subtitle string
	Tint     color.RGBA

	stage  bannerStage
	tween  *gween.Tween
	hold   float64
	alpha  float32
	sticky bool
}

// NewBanner returns an idle banner.
func NewBanner() *Banner {
	return &Banner{Tint: textColor}
}

// Show starts the fade-in of a new announcement, replacing any current one.
func (b *Banner) Show(title, subtitle string, tint color.RGBA, sticky bool) {
	b.Title, b.Subtitle, b.Tint, b.sticky = title, subtitle, tint, sticky
	b.tween = gween.New(b.alpha, 1, bannerFadeIn, ease.OutCubic)
	b.stage = bannerIn
}

// Hide drops the banner immediately.
func (b *Banner) Hide() {
	b.stage = bannerIdle
	b.alpha = 0
	b.tween = nil
	b.sticky = false
}

// Update advances the fade by dt seconds.
func (b *Banner) Update(dt float64) {
	switch b.stage {
	case bannerIn:
		a, done := b.tween.Update(float32(dt))
		b.alpha = a
		if done {
			b.stage = bannerHolding
			b.hold = bannerHold
		}
	case bannerHolding:
		if b.sticky {
			return
		}
		b.hold -= dt
		if b.hold <= 0 {
			b.tween = gween.New(b.alpha, 0, bannerFadeOut, ease.InQuad)
			b.stage = bannerOut
		}
	case bannerOut:
		a, done := b.tween.Update(float32(dt))
		b.alpha = a
		if done {
			b.stage = bannerIdle
			b.alpha = 0
		}
	}
}

// Alpha is the current opacity in [0,1].
func (b *Banner) Alpha() float32 { return b.alpha }

// Visible reports whether anything would be drawn.
func (b *Banner) Visible() bool { return b.stage != bannerIdle && b.alpha > 0 }

// OnEvent announces phase entries and the final result.
func (b *Banner) OnEvent(e game.Event) {
	switch d := e.Data.(type) {
	case game.PhaseEvent:
		switch d.Phase {
		case game.PhaseMarket:
			b.Show(d.Title, fmt.Sprintf("%s builds", d.Player), colorOf(d.Player), false)
		case game.PhaseLevelRunning:
			b.Show(d.Title, fmt.Sprintf("%.0f seconds", d.Duration), textColor, false)
		}
	case game.GameOverEvent:
		tint := textColor
		if d.Outcome.Kind == game.OutcomeWinner {
			tint = colorOf(d.Outcome.Winner)
		}
		b.Show("Game Over", d.Outcome.Text(), tint, true)
	}
}

// Draw renders the banner centred on (cx, cy).
func (b *Banner) Draw(screen *ebiten.Image, cx, cy int) {
	if !b.Visible() {
		return
	}
	face := basicfont.Face7x13
	a := uint8(b.alpha * 255)

	w := 7 * max(len(b.Title), len(b.Subtitle))
	w += 48
	h := 52
	x := float32(cx - w/2)
	y := float32(cy - h/2)
	vector.FillRect(screen, x, y, float32(w), float32(h), withAlpha(panelColor, uint8(b.alpha*220)), false)
	vector.StrokeRect(screen, x, y, float32(w), float32(h), 1.5, withAlpha(b.Tint, a), false)

	text.Draw(screen, b.Title, face, cx-7*len(b.Title)/2, cy-4, withAlpha(b.Tint, a))
	if b.Subtitle != "" {
		text.Draw(screen, b.Subtitle, face, cx-7*len(b.Subtitle)/2, cy+14, withAlpha(dimTextColor, a))
	}
}
