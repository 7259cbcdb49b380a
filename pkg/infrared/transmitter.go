package infrared

import (
	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/hal"
)

// Transmitter keys the carrier on the emitter.
type Transmitter struct {
	Emitter hal.InfraredTransmitter
	Clock   hal.Clock
	Timing  Timing
}

// NewTransmitter creates a Transmitter with SIRC timing.
func NewTransmitter(emitter hal.InfraredTransmitter, clock hal.Clock) *Transmitter {
	return &Transmitter{Emitter: emitter, Clock: clock, Timing: SIRC}
}

// SendPair emits one burst and its trailing silence.
func (t *Transmitter) SendPair(p TimePair) {
	t.Emitter.SetCarrier(true)
	t.Clock.Delay(p.On())
	t.Emitter.SetCarrier(false)
	t.Clock.Delay(p.Off())
}

// SendPairs emits bursts in order.
func (t *Transmitter) SendPairs(pairs []TimePair) {
	for _, p := range pairs {
		t.SendPair(p)
	}
}

// Send transmits the frame Timing.Repeats times, each followed by the
// inter-frame gap.
func (t *Transmitter) Send(f Frame) {
	pairs := t.Timing.Marshal(f)
	repeats := t.Timing.Repeats
	if repeats < 1 {
		repeats = 1
	}
	for i := 0; i < repeats; i++ {
		t.SendPairs(pairs)
		t.Clock.Delay(t.Timing.FrameGap)
	}
	glog.V(2).Infof("ir sent %v x%d", f, repeats)
}
