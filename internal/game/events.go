package game

import (
	"fmt"
	"reflect"
)

// EventType names a match notification.
type EventType string

const (
	EventPhaseEnter       EventType = "phase_enter"
	EventStructureChanged EventType = "structure_changed"
	EventBalanceChanged   EventType = "balance_changed"
	EventPlayerEliminated EventType = "player_eliminated"
	EventGameOver         EventType = "game_over"
)

// AllEventTypes lists every type the match dispatches.
var AllEventTypes = []EventType{
	EventPhaseEnter,
	EventStructureChanged,
	EventBalanceChanged,
	EventPlayerEliminated,
	EventGameOver,
}

// Event is one notification. Data holds the typed payload for Type.
type Event struct {
	Type EventType
	Data interface{}
}

// PhaseEvent is the payload of EventPhaseEnter.
type PhaseEvent struct {
	Phase      Phase
	Level      int
	MarketTurn int   // active seat during a market turn, -1 otherwise
	Player     Color // active player during a market turn
	Title      string
	Duration   float64 // seconds on the phase countdown, 0 if none
}

// StructureEvent is the payload of EventStructureChanged. Kind and Color
// describe the structure before the change; Present is false once removed.
type StructureEvent struct {
	Row, Col int
	Kind     StructureKind
	Color    Color
	Lives    int
	Present  bool
	Effect   HitEffect // HitNone for builds and per-level actions
}

// BalanceEvent is the payload of EventBalanceChanged.
type BalanceEvent struct {
	Player  int
	Balance int
	Delta   int
}

// EliminationEvent is the payload of EventPlayerEliminated.
type EliminationEvent struct {
	Player int
	Color  Color
	Level  int
	Alive  int
}

// GameOverEvent is the payload of EventGameOver.
type GameOverEvent struct {
	Outcome MatchOutcome
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher fans events out to subscribers synchronously, in subscription
// order. The match does not wait for any acknowledgement.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Listener)}
}

// Subscribe registers l for events of type t.
func (d *Dispatcher) Subscribe(t EventType, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// SubscribeAll registers l for every event type.
func (d *Dispatcher) SubscribeAll(l Listener) {
	for _, t := range AllEventTypes {
		d.Subscribe(t, l)
	}
}

// Unsubscribe removes the first registration of l for type t. Listeners of
// non-comparable types (ListenerFunc) can't be removed.
func (d *Dispatcher) Unsubscribe(t EventType, l Listener) {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return
	}
	ls := d.listeners[t]
	for i, x := range ls {
		if reflect.TypeOf(x) == reflect.TypeOf(l) && x == l {
			d.listeners[t] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// Dispatch delivers e to every subscriber of e.Type.
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
}

// DescribeEvent renders an event as a one-line feed entry. Routine hits,
// spending and regeneration ticks are not worth a line and report ok=false.
func DescribeEvent(e Event) (level int, player Color, msg string, ok bool) {
	switch d := e.Data.(type) {
	case PhaseEvent:
		switch d.Phase {
		case PhaseMarket:
			return d.Level, d.Player, fmt.Sprintf("%s's market turn (%.0fs)", d.Player, d.Duration), true
		case PhaseLevelRunning:
			return d.Level, ColorNone, fmt.Sprintf("level %d started", d.Level), true
		case PhaseLevelEnded:
			return d.Level, ColorNone, fmt.Sprintf("level %d over", d.Level), true
		}
	case StructureEvent:
		switch {
		case d.Effect == HitDestroyed:
			return 0, d.Color, fmt.Sprintf("%s lost at (%d,%d)", d.Kind, d.Row, d.Col), true
		case d.Effect == HitNone && d.Present && d.Kind != KindRegeneratingWall:
			return 0, d.Color, fmt.Sprintf("built %s at (%d,%d)", d.Kind, d.Row, d.Col), true
		}
	case BalanceEvent:
		if d.Delta > 0 {
			return 0, PlayerColor(d.Player), fmt.Sprintf("+%d€ (now %d€)", d.Delta, d.Balance), true
		}
	case EliminationEvent:
		return d.Level, d.Color, fmt.Sprintf("%s eliminated, %d left", d.Color, d.Alive), true
	case GameOverEvent:
		return d.Outcome.Level, d.Outcome.Winner, d.Outcome.Text(), true
	}
	return 0, "", "", false
}
