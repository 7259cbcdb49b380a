package hal

import (
	"fmt"
	"strings"
	"time"
)

// NumLineSensors is the number of reflectance sensors in the array.
const NumLineSensors = 5

// MaxDuty is the largest duty-cycle magnitude accepted by the motors.
const MaxDuty = 255

// SensorFrame is one thresholded sample of the line sensor array.
// Sensor 0 is the leftmost and maps to the most significant bit (bit 4),
// sensor 4 is the rightmost and maps to bit 0.
type SensorFrame uint8

// Well known sensor masks.
const (
	FrameNone      SensorFrame = 0b00000
	FrameAll       SensorFrame = 0b11111
	FrameLeftEdge  SensorFrame = 0b10000
	FrameRightEdge SensorFrame = 0b00001
	FrameEdges     SensorFrame = 0b10001
	FrameCenter    SensorFrame = 0b00100
	FrameMiddle    SensorFrame = 0b01110
	FrameLeftThree SensorFrame = 0b11100
)

// SensorBit returns the frame bit of sensor i.
func SensorBit(i int) SensorFrame {
	return 1 << uint(NumLineSensors-1-i)
}

// OnLine reports whether sensor i sees the line.
func (f SensorFrame) OnLine(i int) bool {
	if i < 0 || i >= NumLineSensors {
		return false
	}
	return f&SensorBit(i) != 0
}

// AllOn reports whether every sensor in mask sees the line.
func (f SensorFrame) AllOn(mask SensorFrame) bool {
	return f&mask == mask
}

// AnyOn reports whether at least one sensor in mask sees the line.
func (f SensorFrame) AnyOn(mask SensorFrame) bool {
	return f&mask != 0
}

// NoneOn reports whether no sensor in mask sees the line.
func (f SensorFrame) NoneOn(mask SensorFrame) bool {
	return f&mask == 0
}

// Contiguous reports whether the sensors seeing the line form a single
// adjacent run. An empty frame is contiguous.
func (f SensorFrame) Contiguous() bool {
	v := uint8(f & FrameAll)
	if v == 0 {
		return true
	}
	for v&1 == 0 {
		v >>= 1
	}
	return v&(v+1) == 0
}

// String renders the frame leftmost sensor first, e.g. "00100".
func (f SensorFrame) String() string {
	var sb strings.Builder
	for i := 0; i < NumLineSensors; i++ {
		if f.OnLine(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseSensorFrame parses the String form of a frame.
func ParseSensorFrame(s string) (SensorFrame, error) {
	s = strings.TrimPrefix(s, "0b")
	if len(s) != NumLineSensors {
		return 0, fmt.Errorf("invalid sensor frame %q: expect %d digits", s, NumLineSensors)
	}
	var f SensorFrame
	for i, c := range s {
		switch c {
		case '1':
			f |= SensorBit(i)
		case '0':
		default:
			return 0, fmt.Errorf("invalid sensor frame %q: bad digit %q", s, c)
		}
	}
	return f, nil
}

// MotorCommand is a signed duty-cycle pair for the left and right wheels.
// The sign selects the direction.
type MotorCommand struct {
	Left  int16
	Right int16
}

// ClampDuty limits v to [-MaxDuty, MaxDuty].
func ClampDuty(v int) int16 {
	if v > MaxDuty {
		return MaxDuty
	}
	if v < -MaxDuty {
		return -MaxDuty
	}
	return int16(v)
}

// Speeds builds a clamped MotorCommand.
func Speeds(left, right int) MotorCommand {
	return MotorCommand{Left: ClampDuty(left), Right: ClampDuty(right)}
}

// Clamped returns the command limited to the valid duty range.
func (c MotorCommand) Clamped() MotorCommand {
	return Speeds(int(c.Left), int(c.Right))
}

// Negated reverses both wheels.
func (c MotorCommand) Negated() MotorCommand {
	return Speeds(-int(c.Left), -int(c.Right))
}

// IsStopped reports whether both wheels are at zero.
func (c MotorCommand) IsStopped() bool {
	return c.Left == 0 && c.Right == 0
}

func (c MotorCommand) String() string {
	return fmt.Sprintf("(%d, %d)", c.Left, c.Right)
}

// Clock provides busy-wait delays. Implementations spin rather than yield
// when the delay is short enough for timing to matter.
type Clock interface {
	Delay(d time.Duration)
}

// Timer is the one-shot countdown. Start clears the expiry flag and arms
// the countdown; Expired polls the flag.
type Timer interface {
	Start(d time.Duration)
	Expired() bool
}

// LineSensor reads the thresholded reflectance array.
type LineSensor interface {
	ReadLine() SensorFrame
}

// Motors drives the two wheels. Implementations clamp out-of-range values.
type Motors interface {
	SetMotorSpeed(cmd MotorCommand)
}

// InfraredReceiver samples the demodulating photodetector.
type InfraredReceiver interface {
	// CarrierDetected reports whether the 38 kHz carrier is present.
	CarrierDetected() bool
}

// InfraredTransmitter gates the 38 kHz carrier on the emitter.
type InfraredTransmitter interface {
	SetCarrier(on bool)
}

// Button is the on-board push button.
type Button interface {
	Pressed() bool
}

// Interrupt arms and disarms an edge interrupt whose handler sets a Flag.
// Both Enable and Disable clear the flag.
type Interrupt interface {
	Enable()
	Disable()
}
