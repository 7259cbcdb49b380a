package sim

import (
	"time"

	"github.com/robotalks/linebot/pkg/hal"
)

// DefaultClockStep is the largest time slice delivered to listeners in one
// notification.
const DefaultClockStep = time.Millisecond

// Clock is a virtual clock implementing hal.Clock.
type Clock struct {
	// Step limits each advance seen by listeners, so the simulated world
	// integrates motion in slices no coarser than Step.
	Step time.Duration

	now       time.Duration
	listeners []func(now time.Duration)
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{Step: DefaultClockStep}
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// OnAdvance registers a listener called after every time slice.
func (c *Clock) OnAdvance(fn func(now time.Duration)) {
	c.listeners = append(c.listeners, fn)
}

// Delay implements hal.Clock.
func (c *Clock) Delay(d time.Duration) {
	c.Advance(d)
}

// Advance moves virtual time forward.
func (c *Clock) Advance(d time.Duration) {
	for d > 0 {
		slice := d
		if c.Step > 0 && slice > c.Step {
			slice = c.Step
		}
		c.now += slice
		d -= slice
		for _, fn := range c.listeners {
			fn(c.now)
		}
	}
}

// Timer is a one-shot countdown raising a hal.Flag on expiry, the way a
// hardware compare-match interrupt would.
type Timer struct {
	clock    *Clock
	expired  *hal.Flag
	deadline time.Duration
	armed    bool
}

// NewTimer creates a Timer raising expired. A nil flag gets a private one.
func NewTimer(clock *Clock, expired *hal.Flag) *Timer {
	if expired == nil {
		expired = &hal.Flag{}
	}
	t := &Timer{clock: clock, expired: expired}
	clock.OnAdvance(t.tick)
	return t
}

// Start implements hal.Timer.
func (t *Timer) Start(d time.Duration) {
	t.expired.Clear()
	t.deadline, t.armed = t.clock.Now()+d, true
	if d <= 0 {
		t.tick(t.clock.Now())
	}
}

// Expired implements hal.Timer.
func (t *Timer) Expired() bool {
	return t.expired.IsSet()
}

// Flag exposes the expiry flag for predicates.
func (t *Timer) Flag() *hal.Flag {
	return t.expired
}

func (t *Timer) tick(now time.Duration) {
	if t.armed && now >= t.deadline {
		t.armed = false
		t.expired.Set()
	}
}
