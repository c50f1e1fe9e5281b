package ui

import (
	"image/color"

	"github.com/Garsondee/ball-siege/internal/game"
)

var (
	bgColor        = color.RGBA{R: 14, G: 16, B: 22, A: 255}
	boardColor     = color.RGBA{R: 24, G: 28, B: 38, A: 255}
	cellColor      = color.RGBA{R: 34, G: 39, B: 52, A: 255}
	spawnerColor   = color.RGBA{R: 60, G: 52, B: 80, A: 255}
	baseWallColor  = color.RGBA{R: 92, G: 92, B: 100, A: 255}
	ballColor      = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	panelColor     = color.RGBA{R: 10, G: 12, B: 16, A: 248}
	panelEdgeColor = color.RGBA{R: 50, G: 60, B: 80, A: 255}
	textColor      = color.RGBA{R: 220, G: 224, B: 232, A: 255}
	dimTextColor   = color.RGBA{R: 140, G: 146, B: 160, A: 255}
	highlightColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// playerRGBA is the on-screen colour of each seat.
var playerRGBA = map[game.Color]color.RGBA{
	game.ColorBlue:      {R: 65, G: 105, B: 225, A: 255},
	game.ColorRed:       {R: 220, G: 20, B: 60, A: 255},
	game.ColorGreen:     {R: 34, G: 139, B: 34, A: 255},
	game.ColorGoldenrod: {R: 218, G: 165, B: 32, A: 255},
}

// colorOf returns the fill colour of a structure owner.
func colorOf(c game.Color) color.RGBA {
	if rgba, ok := playerRGBA[c]; ok {
		return rgba
	}
	return baseWallColor
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// shade darkens c by factor f in [0,1].
func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
