package audio

import (
	"testing"
	"time"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/gopxl/beep"
)

func TestOscillatorStaysInRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := NewOscillator(440, 20*time.Millisecond, wave, rate)
		samples := make([][2]float64, 256)
		n, ok := osc.Stream(samples)
		if !ok || n != 256 {
			t.Fatalf("wave %d: streamed n=%d ok=%v, want 256 true", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Fatalf("wave %d sample %d out of range: %f", wave, i, samples[i][0])
			}
		}
	}
}

func TestOscillatorEnds(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 10*time.Millisecond, WaveSine, rate) // 10 samples
	samples := make([][2]float64, 64)
	n, ok := osc.Stream(samples)
	if n != 10 || !ok {
		t.Fatalf("first stream n=%d ok=%v, want 10 true", n, ok)
	}
	n, ok = osc.Stream(samples)
	if n != 0 || ok {
		t.Fatalf("drained stream n=%d ok=%v, want 0 false", n, ok)
	}
}

func TestEveryCueIsFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	buf := make([][2]float64, 512)
	for c := Cue(0); c < cueCount; c++ {
		s := c.Streamer(rate)
		total := 0
		for i := 0; i < 100; i++ {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
			if i == 99 {
				t.Fatalf("cue %s never ended", c)
			}
		}
		if total == 0 {
			t.Fatalf("cue %s produced no samples", c)
		}
	}
}

func TestCueForMapsMatchEvents(t *testing.T) {
	cases := []struct {
		name string
		ev   game.Event
		want Cue
		ok   bool
	}{
		{"market", game.Event{Type: game.EventPhaseEnter, Data: game.PhaseEvent{Phase: game.PhaseMarket}}, CueMarket, true},
		{"level", game.Event{Type: game.EventPhaseEnter, Data: game.PhaseEvent{Phase: game.PhaseLevelRunning}}, CueLevel, true},
		{"level ended", game.Event{Type: game.EventPhaseEnter, Data: game.PhaseEvent{Phase: game.PhaseLevelEnded}}, 0, false},
		{"wall destroyed", game.Event{Type: game.EventStructureChanged, Data: game.StructureEvent{Kind: game.KindWall, Effect: game.HitDestroyed}}, CueDestroy, true},
		{"wall damaged", game.Event{Type: game.EventStructureChanged, Data: game.StructureEvent{Kind: game.KindWall, Effect: game.HitDamaged, Present: true}}, 0, false},
		{"build", game.Event{Type: game.EventStructureChanged, Data: game.StructureEvent{Kind: game.KindBank, Present: true}}, CueBuild, true},
		{"eliminated", game.Event{Type: game.EventPlayerEliminated, Data: game.EliminationEvent{}}, CueEliminated, true},
		{"game over", game.Event{Type: game.EventGameOver, Data: game.GameOverEvent{}}, CueGameOver, true},
		{"balance", game.Event{Type: game.EventBalanceChanged, Data: game.BalanceEvent{}}, 0, false},
	}
	for _, tc := range cases {
		got, ok := CueFor(tc.ev)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("%s: CueFor = (%s, %v), want (%s, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPlayerRateLimitsAndMutes(t *testing.T) {
	p := NewPlayer()
	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }

	if !p.admit(CueDestroy) {
		t.Fatal("first destroy cue should be admitted")
	}
	clock = clock.Add(cueSpacing / 2)
	if p.admit(CueDestroy) {
		t.Fatal("repeat inside the spacing window should be dropped")
	}
	if !p.admit(CueBuild) {
		t.Fatal("a different cue is not rate limited by destroy")
	}
	clock = clock.Add(cueSpacing)
	if !p.admit(CueDestroy) {
		t.Fatal("destroy cue should be admitted again after the window")
	}

	p.SetMuted(true)
	clock = clock.Add(time.Second)
	if p.admit(CueGameOver) {
		t.Fatal("muted player admitted a cue")
	}
	// Play on an uninitialised player must be a silent no-op.
	p.SetMuted(false)
	p.Play(CueGameOver)
}
