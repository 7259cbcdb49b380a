package infrared

import (
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/hal"
)

// PressCounter counts button presses, blocking until the operator is done.
type PressCounter interface {
	PressCount() uint8
}

// PressCountFunc adapts a func to PressCounter.
type PressCountFunc func() uint8

// PressCount implements PressCounter.
func (f PressCountFunc) PressCount() uint8 {
	return f()
}

// Source tells which path produced a Reception.
type Source int

// Sources.
const (
	SourceInfrared Source = iota
	SourceButton
)

func (s Source) String() string {
	if s == SourceButton {
		return "button"
	}
	return "infrared"
}

// Reception is the value returned by Receiver.
type Reception struct {
	Raw    uint16
	Source Source
}

// Command extracts the 7 command bits. For a button reception this is the
// press count.
func (r Reception) Command() uint8 {
	return uint8(r.Raw & CommandMask)
}

// Address extracts the 5 address bits. A button reception has none.
func (r Reception) Address() uint8 {
	return uint8(r.Raw >> CommandBits & AddressMask)
}

func (r Reception) String() string {
	return fmt.Sprintf("%s raw=0x%03x cmd=%d addr=%d", r.Source, r.Raw, r.Command(), r.Address())
}

// Receiver polls the photodetector until a frame decodes or the button is
// pressed.
type Receiver struct {
	Detector     hal.InfraredReceiver
	Clock        hal.Clock
	SamplePeriod time.Duration
	Thresholds   Thresholds

	// ButtonPressed is raised by the button interrupt. Nil disables the
	// fallback.
	ButtonPressed   *hal.Flag
	ButtonInterrupt hal.Interrupt
	Presses         PressCounter
}

// NewReceiver creates a Receiver with default timing and no fallback.
func NewReceiver(detector hal.InfraredReceiver, clock hal.Clock) *Receiver {
	return &Receiver{
		Detector:     detector,
		Clock:        clock,
		SamplePeriod: DefaultSamplePeriod,
		Thresholds:   DefaultThresholds,
	}
}

// WithButton enables the button fallback.
func (r *Receiver) WithButton(pressed *hal.Flag, irq hal.Interrupt, presses PressCounter) *Receiver {
	r.ButtonPressed, r.ButtonInterrupt, r.Presses = pressed, irq, presses
	return r
}

// Receive blocks until a frame decodes or the button fallback fires.
// The button interrupt is armed on entry and disarmed on return.
func (r *Receiver) Receive() Reception {
	if r.ButtonInterrupt != nil {
		r.ButtonInterrupt.Enable()
		defer r.ButtonInterrupt.Disable()
	}
	dec := NewDecoder(r.Thresholds)
	for {
		if r.ButtonPressed != nil && r.ButtonPressed.IsSet() && r.Presses != nil {
			count := r.Presses.PressCount()
			rec := Reception{Raw: uint16(count), Source: SourceButton}
			glog.Warningf("ir fallback to button: %d presses", count)
			return rec
		}
		if dec.Sample(r.Detector.CarrierDetected()) {
			rec := Reception{Raw: dec.Value(), Source: SourceInfrared}
			if dec.Bursts > FrameBits+1 {
				glog.V(2).Infof("ir saw %d bursts for one frame", dec.Bursts)
			}
			glog.V(2).Infof("ir received %v", rec)
			return rec
		}
		r.Clock.Delay(r.SamplePeriod)
	}
}

// ReceiveDigit receives and keeps only the command bits.
func (r *Receiver) ReceiveDigit() uint8 {
	return r.Receive().Command()
}
