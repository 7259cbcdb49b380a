package sim

import (
	"time"

	"github.com/robotalks/linebot/pkg/hal"
)

type buttonPress struct {
	at, hold time.Duration
}

// Button is a push button with scheduled presses and an edge interrupt.
// While the interrupt is enabled, every press edge raises the flag.
type Button struct {
	clock   *Clock
	flag    *hal.Flag
	presses []buttonPress
	enabled bool
	down    bool
}

// NewButton creates a button raising flag on press edges.
func NewButton(clock *Clock, flag *hal.Flag) *Button {
	b := &Button{clock: clock, flag: flag}
	clock.OnAdvance(b.tick)
	return b
}

// PressAt schedules a press at the given virtual time.
func (b *Button) PressAt(at, hold time.Duration) *Button {
	b.presses = append(b.presses, buttonPress{at: at, hold: hold})
	return b
}

// Pressed implements hal.Button.
func (b *Button) Pressed() bool {
	return b.pressedAt(b.clock.Now())
}

// Enable implements hal.Interrupt.
func (b *Button) Enable() {
	b.flag.Clear()
	b.enabled = true
}

// Disable implements hal.Interrupt.
func (b *Button) Disable() {
	b.enabled = false
	b.flag.Clear()
}

func (b *Button) pressedAt(now time.Duration) bool {
	for _, p := range b.presses {
		if now >= p.at && now < p.at+p.hold {
			return true
		}
	}
	return false
}

func (b *Button) tick(now time.Duration) {
	down := b.pressedAt(now)
	if down && !b.down && b.enabled {
		b.flag.Set()
	}
	b.down = down
}
