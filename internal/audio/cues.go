package audio

import (
	"time"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/gopxl/beep"
)

// Cue is a short sound tied to a match event.
type Cue int

const (
	CueMarket     Cue = iota // a market turn begins
	CueLevel                 // balls released
	CueBuild                 // structure bought
	CueDestroy               // wall or bank destroyed
	CueEliminated            // a king fell
	CueGameOver
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueMarket:
		return "market"
	case CueLevel:
		return "level"
	case CueBuild:
		return "build"
	case CueDestroy:
		return "destroy"
	case CueEliminated:
		return "eliminated"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// CueFor maps a match event to the cue it should trigger, if any.
func CueFor(e game.Event) (Cue, bool) {
	switch e.Type {
	case game.EventPhaseEnter:
		pe, ok := e.Data.(game.PhaseEvent)
		if !ok {
			return 0, false
		}
		switch pe.Phase {
		case game.PhaseMarket:
			return CueMarket, true
		case game.PhaseLevelRunning:
			return CueLevel, true
		}
	case game.EventStructureChanged:
		se, ok := e.Data.(game.StructureEvent)
		if !ok {
			return 0, false
		}
		switch {
		case se.Effect == game.HitDestroyed && se.Kind != game.KindKing:
			return CueDestroy, true
		case se.Effect == game.HitNone && se.Present && se.Kind != game.KindRegeneratingWall:
			return CueBuild, true
		}
	case game.EventPlayerEliminated:
		return CueEliminated, true
	case game.EventGameOver:
		return CueGameOver, true
	}
	return 0, false
}

// Streamer synthesises a cue at the given sample rate.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueMarket:
		return melody(rate, 0.35,
			note{660, 90 * ms, WaveSine},
			note{880, 140 * ms, WaveSine})
	case CueLevel:
		return melody(rate, 0.35,
			note{440, 80 * ms, WaveTriangle},
			note{554, 80 * ms, WaveTriangle},
			note{659, 160 * ms, WaveTriangle})
	case CueBuild:
		return melody(rate, 0.25, note{990, 50 * ms, WaveSine})
	case CueDestroy:
		return melody(rate, 0.15, note{180, 40 * ms, WaveSquare})
	case CueEliminated:
		return melody(rate, 0.4,
			note{330, 150 * ms, WaveSquare},
			note{220, 250 * ms, WaveSquare})
	case CueGameOver:
		return melody(rate, 0.4,
			note{523, 160 * ms, WaveSine},
			note{392, 160 * ms, WaveSine},
			note{262, 400 * ms, WaveSine})
	}
	return beep.Silence(0)
}
