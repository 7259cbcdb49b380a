// Package calibration holds the timing constants measured on the robot
// and persisted in external memory.
package calibration

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Layout of the record in external memory.
const (
	NumFields = 7
	// Size is the record length in bytes, two per field.
	Size = NumFields * 2
	// BaseAddr is where the record starts in external memory.
	BaseAddr uint16 = 0
)

// Field indexes a calibration value. Field i lives at byte offset 2*i.
type Field int

// Fields in storage order.
const (
	Rotate90CW Field = iota
	Rotate90CCW
	RotateSlightCW
	RotateSlightCCW
	Section1StartOffset
	SensorToCenterOffset
	BetweenPointsDuration
)

var fieldNames = [NumFields]string{
	"rotate-90-cw",
	"rotate-90-ccw",
	"rotate-slight-cw",
	"rotate-slight-ccw",
	"section1-start-offset",
	"sensor-to-center-offset",
	"between-points-duration",
}

// Offset returns the byte offset of the field inside the record.
func (f Field) Offset() int {
	return int(f) * 2
}

func (f Field) String() string {
	if f < 0 || int(f) >= NumFields {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField looks a field up by name.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown calibration field %q", name)
}

// ErrShortRecord indicates fewer than Size bytes were supplied.
var ErrShortRecord = errors.New("short calibration record")

// Record is the set of measured durations, in milliseconds.
// The stored byte order is little-endian, as written by the firmware's
// native 16-bit stores.
type Record [NumFields]uint16

// Default returns plausible values for an uncalibrated robot.
func Default() Record {
	return Record{
		Rotate90CW:            850,
		Rotate90CCW:           850,
		RotateSlightCW:        150,
		RotateSlightCCW:       150,
		Section1StartOffset:   1600,
		SensorToCenterOffset:  700,
		BetweenPointsDuration: 600,
	}
}

// Duration returns field f as a time.Duration.
func (r Record) Duration(f Field) time.Duration {
	return time.Duration(r[f]) * time.Millisecond
}

// Set stores d into field f, truncated to whole milliseconds.
func (r *Record) Set(f Field, d time.Duration) {
	ms := d / time.Millisecond
	if ms > 0xffff {
		ms = 0xffff
	}
	r[f] = uint16(ms)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, Size)
	for i, v := range r {
		binary.LittleEndian.PutUint16(b[Field(i).Offset():], v)
	}
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) < Size {
		return ErrShortRecord
	}
	for i := range r {
		r[i] = binary.LittleEndian.Uint16(b[Field(i).Offset():])
	}
	return nil
}

// Erased reports whether the record looks like blank memory.
func (r Record) Erased() bool {
	for _, v := range r {
		if v != 0xffff {
			return false
		}
	}
	return true
}
