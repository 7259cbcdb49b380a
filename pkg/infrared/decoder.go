package infrared

import "time"

// Thresholds classify a burst by its length in polling ticks.
type Thresholds struct {
	HeaderTicks int `yaml:"header-ticks"`
	HighTicks   int `yaml:"high-ticks"`
}

// Receiver timing defaults. The tick counts were tuned against a polling
// loop sampling every DefaultSamplePeriod.
const (
	DefaultSamplePeriod = 2 * time.Microsecond
	DefaultHeaderTicks  = 800
	DefaultHighTicks    = 450
)

// DefaultThresholds match DefaultSamplePeriod.
var DefaultThresholds = Thresholds{
	HeaderTicks: DefaultHeaderTicks,
	HighTicks:   DefaultHighTicks,
}

// ThresholdsFor re-derives the tick thresholds for another sample period,
// keeping the same durations.
func ThresholdsFor(period time.Duration) Thresholds {
	if period <= 0 {
		return DefaultThresholds
	}
	scale := func(ticks int) int {
		return int(time.Duration(ticks) * DefaultSamplePeriod / period)
	}
	return Thresholds{
		HeaderTicks: scale(DefaultHeaderTicks),
		HighTicks:   scale(DefaultHighTicks),
	}
}

// Decoder classifies bursts on their falling edge. It is fed one carrier
// sample per polling tick.
//
// A burst of at least HeaderTicks is a header: it (re)starts the frame,
// so a second header mid-frame resynchronizes. Once a header was seen, a
// burst of at least HighTicks is a 1 bit and any shorter burst a 0 bit.
// Bursts before the first header are ignored.
type Decoder struct {
	Thresholds Thresholds
	// Bursts counts falling edges seen, headers included.
	Bursts int

	headerSeen bool
	high       bool
	ticks      int
	bits       int
	value      uint16
}

// NewDecoder creates a Decoder with thresholds t.
func NewDecoder(t Thresholds) *Decoder {
	return &Decoder{Thresholds: t}
}

// Reset clears all progress.
func (d *Decoder) Reset() {
	*d = Decoder{Thresholds: d.Thresholds}
}

// Sample consumes one tick and reports whether the frame is complete.
// After completion further samples are ignored.
func (d *Decoder) Sample(carrier bool) bool {
	if d.bits >= FrameBits {
		return true
	}
	wasHigh := d.high
	d.high = carrier
	if carrier {
		d.ticks++
		return false
	}
	if !wasHigh {
		return false
	}
	d.Bursts++
	switch {
	case d.ticks >= d.Thresholds.HeaderTicks:
		d.headerSeen, d.value, d.bits = true, 0, 0
	case d.headerSeen:
		if d.ticks >= d.Thresholds.HighTicks {
			d.value |= 1 << uint(d.bits)
		} else {
			d.value &^= 1 << uint(d.bits)
		}
		d.bits++
	}
	d.ticks = 0
	return d.bits >= FrameBits
}

// Feed replays bursts sampled every period and reports completion.
func (d *Decoder) Feed(period time.Duration, pairs ...TimePair) bool {
	for _, p := range pairs {
		for n := int(p.On() / period); n > 0; n-- {
			d.Sample(true)
		}
		off := int(p.Off() / period)
		if off < 1 {
			off = 1
		}
		for ; off > 0; off-- {
			if d.Sample(false) {
				return true
			}
		}
	}
	return d.Done()
}

// Done reports whether 12 bits were decoded.
func (d *Decoder) Done() bool {
	return d.bits >= FrameBits
}

// HeaderSeen reports whether a header was decoded.
func (d *Decoder) HeaderSeen() bool {
	return d.headerSeen
}

// Bits returns how many data bits were decoded so far.
func (d *Decoder) Bits() int {
	return d.bits
}

// Value returns the accumulated bits.
func (d *Decoder) Value() uint16 {
	return d.value
}
