package game

// MaxPlayers is the number of seats on the board (and money counters on screen).
const MaxPlayers = 4

// Color identifies a player, the neutral base walls, or an unclaimed territory cell.
type Color string

const (
	ColorNone      Color = "none" // neutral structures (base walls)
	ColorFree      Color = "free" // territory cell nobody has claimed
	ColorBlue      Color = "blue"
	ColorRed       Color = "red"
	ColorGreen     Color = "green"
	ColorGoldenrod Color = "goldenrod"
)

// PlayerColors maps seat index to player colour.
var PlayerColors = [MaxPlayers]Color{ColorBlue, ColorRed, ColorGreen, ColorGoldenrod}

// PlayerIndex returns the seat index owning c, or -1 for neutral/unknown colours.
func PlayerIndex(c Color) int {
	for i, pc := range PlayerColors {
		if pc == c {
			return i
		}
	}
	return -1
}

// PlayerColor returns the colour of seat i, or ColorNone when i is not a seat.
func PlayerColor(i int) Color {
	if i < 0 || i >= MaxPlayers {
		return ColorNone
	}
	return PlayerColors[i]
}
