package audio

import (
	"sync"
	"time"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// cueSpacing is the minimum gap between two plays of the same cue, so a
// level full of breaking walls doesn't turn into one long buzz.
const cueSpacing = 80 * time.Millisecond

// Player plays match cues through the system speaker. It implements
// game.Listener; subscribe it to a match's dispatcher. A Player that failed
// to initialise, or is muted, drops cues silently.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	lastPlayed  [cueCount]time.Time
	now         func() time.Time
}

// NewPlayer creates a player. Call Init before any sound is heard.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}, now: time.Now}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted turns playback off or on.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// Muted reports whether playback is off.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play queues a cue. Repeats inside cueSpacing are dropped.
func (p *Player) Play(c Cue) {
	if c < 0 || c >= cueCount {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.admit(c) || !p.initialized {
		return
	}
	s := c.Streamer(sampleRate)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// admit applies mute and rate limiting. Callers hold p.mu.
func (p *Player) admit(c Cue) bool {
	if p.muted {
		return false
	}
	now := p.now()
	if now.Sub(p.lastPlayed[c]) < cueSpacing {
		return false
	}
	p.lastPlayed[c] = now
	return true
}

// OnEvent plays the cue mapped to e, if any.
func (p *Player) OnEvent(e game.Event) {
	if c, ok := CueFor(e); ok {
		p.Play(c)
	}
}

// Close stops every queued cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
