package game

import "fmt"

type OutcomeKind int

const (
	OutcomeUndecided OutcomeKind = iota
	OutcomeSoloEnded            // solo survival: the lone king fell
	OutcomeWinner               // multiplayer: one king left standing
	OutcomeNoSurvivor           // multiplayer: the last kings fell together
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSoloEnded:
		return "solo_ended"
	case OutcomeWinner:
		return "winner"
	case OutcomeNoSurvivor:
		return "no_survivor"
	case OutcomeUndecided:
		return "undecided"
	default:
		return "unknown"
	}
}

// Verdict is the elimination evaluator's answer for one moment of a match.
type Verdict struct {
	Over     bool
	Alive    int
	Survivor int // seat of the last player standing, -1 when there is none
}

// EvaluateVictory decides whether a match is over. Solo games end when the
// player is eliminated; two and four player games end when one player is left.
func EvaluateVictory(numPlayers int, eliminated []bool) Verdict {
	v := Verdict{Alive: numPlayers, Survivor: -1}
	for i := 0; i < numPlayers && i < len(eliminated); i++ {
		if eliminated[i] {
			v.Alive--
		}
	}
	if numPlayers == 1 {
		v.Over = v.Alive <= 0
		return v
	}
	v.Over = v.Alive <= 1
	if v.Alive == 1 {
		for i := 0; i < numPlayers; i++ {
			if i >= len(eliminated) || !eliminated[i] {
				v.Survivor = i
				break
			}
		}
	}
	return v
}

// MatchOutcome is the final result reported when a match ends.
type MatchOutcome struct {
	Kind       OutcomeKind
	NumPlayers int
	Level      int // level reached when the match ended
	Survivor   int // seat index, -1 for none
	Winner     Color
	Alive      int
}

func (o MatchOutcome) String() string {
	return o.Kind.String()
}

// Text is the line shown to players when the match ends.
func (o MatchOutcome) Text() string {
	switch o.Kind {
	case OutcomeSoloEnded:
		return fmt.Sprintf("You Reached Level %d!", o.Level)
	case OutcomeWinner:
		return fmt.Sprintf("The winner is %s!", o.Winner)
	case OutcomeNoSurvivor:
		return "No king survived!"
	default:
		return ""
	}
}

// DetermineOutcome turns a finished verdict into the reported result.
func DetermineOutcome(numPlayers, level int, v Verdict) MatchOutcome {
	o := MatchOutcome{
		NumPlayers: numPlayers,
		Level:      level,
		Survivor:   v.Survivor,
		Alive:      v.Alive,
	}
	switch {
	case !v.Over:
		o.Kind = OutcomeUndecided
	case numPlayers == 1:
		o.Kind = OutcomeSoloEnded
	case v.Survivor >= 0:
		o.Kind = OutcomeWinner
		o.Winner = PlayerColor(v.Survivor)
	default:
		o.Kind = OutcomeNoSurvivor
	}
	return o
}
