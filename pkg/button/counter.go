// Package button reads the on-board push button.
package button

import (
	"time"

	"github.com/robotalks/linebot/pkg/hal"
)

// Counter defaults.
const (
	DefaultWindow     = 2 * time.Second
	DefaultDebounce   = 10 * time.Millisecond
	DefaultMaxPresses = 9
)

// Counter counts presses keyed in by an operator. Each press restarts a
// countdown; counting ends when the countdown expires.
type Counter struct {
	Button   hal.Button
	Clock    hal.Clock
	Timer    hal.Timer
	Window   time.Duration
	Debounce time.Duration
	// MaxPresses saturates the count; one more press wraps to 1.
	MaxPresses uint8
}

// NewCounter creates a Counter with default timing.
func NewCounter(button hal.Button, clock hal.Clock, timer hal.Timer) *Counter {
	return &Counter{
		Button:     button,
		Clock:      clock,
		Timer:      timer,
		Window:     DefaultWindow,
		Debounce:   DefaultDebounce,
		MaxPresses: DefaultMaxPresses,
	}
}

// IsPressed reads the button twice, Debounce apart, until both reads agree.
func (c *Counter) IsPressed() bool {
	for {
		first := c.Button.Pressed()
		c.Clock.Delay(c.Debounce)
		if second := c.Button.Pressed(); first == second {
			return first
		}
	}
}

// WaitForPress blocks until a debounced press.
func (c *Counter) WaitForPress() {
	for !c.IsPressed() {
	}
}

// PressCount blocks for the first press, then counts presses until Window
// passes without one.
func (c *Counter) PressCount() uint8 {
	c.WaitForPress()
	c.Timer.Start(c.Window)
	count := uint8(1)
	// the first press is still held when counting starts
	prev, cur := true, true
	for !c.Timer.Expired() {
		prev, cur = cur, c.IsPressed()
		if cur && !prev {
			if count < c.MaxPresses {
				count++
			} else {
				count = 1
			}
			c.Timer.Start(c.Window)
		}
	}
	return count
}
