package game

import "math"

// Countdown is a cancellable deadline on the match clock. It fires at most
// once. The match owns at most one live countdown and cancels it before
// arming the next, so a stale deadline can never advance the phase twice.
type Countdown struct {
	start    float64
	deadline float64
	active   bool
	fired    bool
}

// NewCountdown arms a countdown that expires duration seconds after now.
func NewCountdown(now, duration float64) *Countdown {
	return &Countdown{start: now, deadline: now + duration, active: true}
}

// Poll reports whether the countdown expired at or before now. It returns
// true exactly once; afterwards the countdown is spent.
func (c *Countdown) Poll(now float64) bool {
	if c == nil || !c.active || now < c.deadline {
		return false
	}
	c.active = false
	c.fired = true
	return true
}

// Cancel disarms the countdown. Cancelling a nil, fired or already cancelled
// countdown is a no-op.
func (c *Countdown) Cancel() {
	if c == nil {
		return
	}
	c.active = false
}

// Active reports whether the countdown is armed and has not fired.
func (c *Countdown) Active() bool {
	return c != nil && c.active
}

// Fired reports whether the countdown reached its deadline.
func (c *Countdown) Fired() bool {
	return c != nil && c.fired
}

// Remaining returns the seconds left, or 0 when inactive.
func (c *Countdown) Remaining(now float64) float64 {
	if !c.Active() {
		return 0
	}
	return math.Max(0, c.deadline-now)
}

// Seconds is Remaining rounded up, the way a HUD shows it.
func (c *Countdown) Seconds(now float64) int {
	return int(math.Ceil(c.Remaining(now)))
}
