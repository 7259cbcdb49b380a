package infrared

import (
	"fmt"
	"time"
)

// Frame layout.
const (
	CommandBits = 7
	AddressBits = 5
	FrameBits   = CommandBits + AddressBits

	CommandMask uint16 = 1<<CommandBits - 1
	AddressMask uint16 = 1<<AddressBits - 1
)

// TimePair is one carrier burst followed by silence.
type TimePair [2]time.Duration

// On is the carrier burst length.
func (p TimePair) On() time.Duration {
	return p[0]
}

// Off is the silence following the burst.
func (p TimePair) Off() time.Duration {
	return p[1]
}

// FrameMarshaller turns a frame into bursts.
type FrameMarshaller interface {
	MarshalFrame() []TimePair
}

// Timing holds the pulse lengths of the protocol.
type Timing struct {
	Header    time.Duration `yaml:"header"`
	HeaderGap time.Duration `yaml:"header-gap"`
	One       time.Duration `yaml:"one"`
	Zero      time.Duration `yaml:"zero"`
	Gap       time.Duration `yaml:"gap"`
	FrameGap  time.Duration `yaml:"frame-gap"`
	Repeats   int           `yaml:"repeats"`
}

// SIRC is the nominal protocol timing.
var SIRC = Timing{
	Header:    2400 * time.Microsecond,
	HeaderGap: 600 * time.Microsecond,
	One:       1200 * time.Microsecond,
	Zero:      600 * time.Microsecond,
	Gap:       600 * time.Microsecond,
	FrameGap:  45 * time.Millisecond,
	Repeats:   3,
}

// Frame is a 7-bit command for a 5-bit address.
type Frame struct {
	Command uint8
	Address uint8
}

// FrameFromRaw splits a 12-bit value, command in the low bits.
func FrameFromRaw(v uint16) Frame {
	return Frame{
		Command: uint8(v & CommandMask),
		Address: uint8(v >> CommandBits & AddressMask),
	}
}

// Raw packs the frame into 12 bits. Out-of-range fields are truncated.
func (f Frame) Raw() uint16 {
	return uint16(f.Command)&CommandMask | (uint16(f.Address)&AddressMask)<<CommandBits
}

func (f Frame) String() string {
	return fmt.Sprintf("cmd=%d addr=%d", f.Command&uint8(CommandMask), f.Address&uint8(AddressMask))
}

// MarshalFrame implements FrameMarshaller with SIRC timing.
func (f Frame) MarshalFrame() []TimePair {
	return SIRC.Marshal(f)
}

// Marshal encodes the header and the 12 data bits of f.
func (t Timing) Marshal(f Frame) []TimePair {
	pairs := make([]TimePair, 0, FrameBits+1)
	pairs = append(pairs, TimePair{t.Header, t.HeaderGap})
	raw := f.Raw()
	for i := uint(0); i < FrameBits; i++ {
		if raw>>i&1 != 0 {
			pairs = append(pairs, TimePair{t.One, t.Gap})
		} else {
			pairs = append(pairs, TimePair{t.Zero, t.Gap})
		}
	}
	return pairs
}
