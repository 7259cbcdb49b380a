package periph

import (
	"sync/atomic"
	"time"

	"github.com/robotalks/linebot/pkg/hal"
)

// spinThreshold is the longest delay served by spinning instead of sleeping.
const spinThreshold = 2 * time.Millisecond

// Clock implements hal.Clock on the host monotonic clock.
type Clock struct{}

// Delay implements hal.Clock.
func (Clock) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	if d >= spinThreshold {
		time.Sleep(d)
		return
	}
	for start := time.Now(); time.Since(start) < d; {
	}
}

// Timer implements hal.Timer with a runtime timer raising a hal.Flag.
type Timer struct {
	expired *hal.Flag
	gen     atomic.Uint64
	timer   *time.Timer
}

// NewTimer creates a Timer raising expired.
func NewTimer(expired *hal.Flag) *Timer {
	if expired == nil {
		expired = &hal.Flag{}
	}
	return &Timer{expired: expired}
}

// Start implements hal.Timer.
func (t *Timer) Start(d time.Duration) {
	gen := t.gen.Add(1)
	if t.timer != nil {
		t.timer.Stop()
	}
	t.expired.Clear()
	t.timer = time.AfterFunc(d, func() {
		// a restarted countdown must not be expired by its predecessor
		if t.gen.Load() == gen {
			t.expired.Set()
		}
	})
}

// Expired implements hal.Timer.
func (t *Timer) Expired() bool {
	return t.expired.IsSet()
}
