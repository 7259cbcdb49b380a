// Package drive provides the motor primitives shared by navigation and
// calibration: clamped speed control, force-stop braking, max-power
// pulses and timed rotations.
package drive

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/calibration"
	"github.com/robotalks/linebot/pkg/hal"
)

// Config tunes the primitives.
type Config struct {
	// RotationSpeed is the duty used for calibrated rotations.
	RotationSpeed int `yaml:"rotation-speed"`
	// TimingSpeed is the duty used for calibrated straight runs.
	TimingSpeed int `yaml:"timing-speed"`
	// PulseDuration is how long a max-power kick lasts.
	PulseDuration time.Duration `yaml:"pulse-duration"`
	// ForceStopDuration is the default reverse-braking time.
	ForceStopDuration time.Duration `yaml:"force-stop-duration"`
	// ForceStopAfterRotate90 brakes after a 90 degree rotation.
	ForceStopAfterRotate90 time.Duration `yaml:"force-stop-after-rotate90"`
	// ForceStopAfterRotateSlightly brakes after a slight rotation.
	ForceStopAfterRotateSlightly time.Duration `yaml:"force-stop-after-rotate-slightly"`
	// RightTrim scales the right wheel duty written to hardware as
	// Num/Den, compensating a stronger motor. Den zero disables it.
	RightTrim Ratio `yaml:"right-trim"`
}

// Ratio is a small integer fraction.
type Ratio struct {
	Num int `yaml:"num"`
	Den int `yaml:"den"`
}

// DefaultConfig holds the values tuned on the reference robot.
var DefaultConfig = Config{
	RotationSpeed:                100,
	TimingSpeed:                  120,
	PulseDuration:                60 * time.Millisecond,
	ForceStopDuration:            255 * time.Millisecond,
	ForceStopAfterRotate90:       128 * time.Millisecond,
	ForceStopAfterRotateSlightly: 50 * time.Millisecond,
}

// Drive owns the motor command. It remembers the last logical command so
// callers can read back wheel speeds.
type Drive struct {
	Motors  hal.Motors
	Clock   hal.Clock
	Config  Config
	Timings calibration.Record

	cmd hal.MotorCommand
}

// New creates a Drive with DefaultConfig and default timings.
func New(motors hal.Motors, clock hal.Clock) *Drive {
	return &Drive{
		Motors:  motors,
		Clock:   clock,
		Config:  DefaultConfig,
		Timings: calibration.Default(),
	}
}

// SetSpeed clamps and applies a wheel command.
func (d *Drive) SetSpeed(left, right int) hal.MotorCommand {
	d.cmd = hal.Speeds(left, right)
	out := d.cmd
	if t := d.Config.RightTrim; t.Den != 0 {
		out.Right = hal.ClampDuty(int(out.Right) * t.Num / t.Den)
	}
	d.Motors.SetMotorSpeed(out)
	glog.V(4).Infof("motors %v", d.cmd)
	return d.cmd
}

// Apply is SetSpeed taking a MotorCommand.
func (d *Drive) Apply(cmd hal.MotorCommand) hal.MotorCommand {
	return d.SetSpeed(int(cmd.Left), int(cmd.Right))
}

// Speed returns the last logical command.
func (d *Drive) Speed() hal.MotorCommand {
	return d.cmd
}

// Left returns the left wheel duty.
func (d *Drive) Left() int {
	return int(d.cmd.Left)
}

// Right returns the right wheel duty.
func (d *Drive) Right() int {
	return int(d.cmd.Right)
}

// Stop sets both wheels to zero without braking.
func (d *Drive) Stop() {
	d.SetSpeed(0, 0)
}

// ForceStop brakes by reversing the current command for decel, then holds
// zero for decel again to let the wheels settle.
func (d *Drive) ForceStop(decel time.Duration) {
	rev := d.cmd.Negated()
	d.SetSpeed(int(rev.Left), int(rev.Right))
	d.Clock.Delay(decel)
	d.SetSpeed(0, 0)
	d.Clock.Delay(decel)
}

// Brake is ForceStop with the configured default duration.
func (d *Drive) Brake() {
	d.ForceStop(d.Config.ForceStopDuration)
}

// Direction of a pulse or spin.
type Direction int

// Directions.
const (
	Forward Direction = iota
	Backward
	Clockwise
	Counterclockwise
)

func (dir Direction) signs() (int, int) {
	switch dir {
	case Backward:
		return -1, -1
	case Clockwise:
		return 1, -1
	case Counterclockwise:
		return -1, 1
	}
	return 1, 1
}

// Move sets both wheels to speed in the given direction.
func (d *Drive) Move(dir Direction, speed int) {
	l, r := dir.signs()
	d.SetSpeed(l*speed, r*speed)
}

// Pulse kicks the motors at full power to overcome static friction.
func (d *Drive) Pulse(dir Direction) {
	d.Move(dir, hal.MaxDuty)
	d.Clock.Delay(d.Config.PulseDuration)
}

// GoStraight pulses in the direction of duty and settles on it.
func (d *Drive) GoStraight(duty int) {
	if duty >= 0 {
		d.Pulse(Forward)
	} else {
		d.Pulse(Backward)
	}
	d.SetSpeed(duty, duty)
}

// Spin pulses then rotates in place at the configured rotation speed.
func (d *Drive) Spin(clockwise bool) {
	dir := Counterclockwise
	if clockwise {
		dir = Clockwise
	}
	d.Pulse(dir)
	d.Move(dir, d.Config.RotationSpeed)
}

// Rotate90 turns a quarter turn using the calibrated duration.
func (d *Drive) Rotate90(clockwise bool) {
	field := calibration.Rotate90CCW
	if clockwise {
		field = calibration.Rotate90CW
	}
	d.Spin(clockwise)
	d.Clock.Delay(d.Timings.Duration(field))
	d.ForceStop(d.Config.ForceStopAfterRotate90)
}

// RotateSlightly nudges the heading using the calibrated duration.
func (d *Drive) RotateSlightly(clockwise bool) {
	field := calibration.RotateSlightCCW
	if clockwise {
		field = calibration.RotateSlightCW
	}
	d.Spin(clockwise)
	d.Clock.Delay(d.Timings.Duration(field))
	d.ForceStop(d.Config.ForceStopAfterRotateSlightly)
}
