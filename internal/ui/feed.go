package ui

import (
	"image/color"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Level   int
	Player  game.Color // game.ColorNone for global lines
	Message string
}

// EventFeed is a ring buffer of match events rendered as a side panel.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(level int, player game.Color, msg string) {
	f.entries[f.head] = FeedEntry{Level: level, Player: player, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// OnEvent turns match events into feed lines.
func (f *EventFeed) OnEvent(e game.Event) {
	if level, player, msg, ok := game.DescribeEvent(e); ok {
		f.Add(level, player, msg)
	}
}

// Draw renders the feed panel at panelX, from panelY down panelH pixels.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelY, panelW, panelH int) {
	px, py := float32(panelX), float32(panelY)
	vector.FillRect(screen, px, py, float32(panelW), float32(panelH), panelColor, false)
	vector.StrokeLine(screen, px, py, px, py+float32(panelH), 1.0, panelEdgeColor, false)

	vector.FillRect(screen, px, py, float32(panelW), 16, color.RGBA{R: 22, G: 28, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, panelY+1)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if maxVisible <= 0 {
		return
	}
	start := 0
	if len(entries) > maxVisible {
		start = len(entries) - maxVisible
	}
	visible := entries[start:]
	recent := 3

	y := panelY + 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, px+2, float32(y), float32(panelW-4), feedLineHeight, color.RGBA{R: 30, G: 36, B: 50, A: 160}, false)
		}
		dot := dimTextColor
		if e.Player != game.ColorNone && e.Player != "" {
			dot = colorOf(e.Player)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, dot, false)
		ebitenutil.DebugPrintAt(screen, e.Message, panelX+12, y)
		y += feedLineHeight
	}
}
