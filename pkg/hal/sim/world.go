package sim

import (
	"math"
	"time"

	"github.com/robotalks/linebot/pkg/hal"
)

// Body describes the robot chassis.
type Body struct {
	// WheelBase is the distance between the wheels (mm).
	WheelBase float64 `yaml:"wheel-base"`
	// SpeedPerDuty converts one duty unit into wheel speed (mm/s).
	SpeedPerDuty float64 `yaml:"speed-per-duty"`
	// SensorOffset is how far ahead of the axle the sensor array sits (mm).
	SensorOffset float64 `yaml:"sensor-offset"`
	// SensorPitch is the lateral spacing of adjacent sensors (mm).
	SensorPitch float64 `yaml:"sensor-pitch"`
}

// DefaultBody approximates the reference chassis.
var DefaultBody = Body{
	WheelBase:    120,
	SpeedPerDuty: 1.2,
	SensorOffset: 60,
	SensorPitch:  12,
}

// World moves a differential-drive robot over a Track as the clock
// advances. It implements hal.Motors and hal.LineSensor.
type World struct {
	Track Track
	Body  Body
	Pose  Pose2D

	cmd  hal.MotorCommand
	last time.Duration
}

// NewWorld places the robot and starts integrating motion on clock.
func NewWorld(clock *Clock, track Track, body Body, pose Pose2D) *World {
	w := &World{Track: track, Body: body, Pose: pose, last: clock.Now()}
	clock.OnAdvance(w.step)
	return w
}

// SetMotorSpeed implements hal.Motors.
func (w *World) SetMotorSpeed(cmd hal.MotorCommand) {
	w.cmd = cmd.Clamped()
}

// Command returns the motor command currently applied.
func (w *World) Command() hal.MotorCommand {
	return w.cmd
}

// SensorPos returns the floor position of sensor i.
func (w *World) SensorPos(i int) Pos2D {
	lateral := float64(hal.NumLineSensors/2-i) * w.Body.SensorPitch
	ahead := w.Pose.Orientation.Project(w.Body.SensorOffset)
	side := w.Pose.Orientation.AddRadians(math.Pi / 2).Project(lateral)
	return w.Pose.Pos2D.Add(ahead).Add(side)
}

// ReadLine implements hal.LineSensor.
func (w *World) ReadLine() hal.SensorFrame {
	var f hal.SensorFrame
	for i := 0; i < hal.NumLineSensors; i++ {
		if w.Track.OnLine(w.SensorPos(i)) {
			f |= hal.SensorBit(i)
		}
	}
	return f
}

func (w *World) step(now time.Duration) {
	dt := (now - w.last).Seconds()
	w.last = now
	if dt <= 0 || w.cmd.IsStopped() {
		return
	}
	vl := float64(w.cmd.Left) * w.Body.SpeedPerDuty
	vr := float64(w.cmd.Right) * w.Body.SpeedPerDuty
	w.Pose.Pos2D = w.Pose.Pos2D.Add(w.Pose.Orientation.Project((vl + vr) / 2 * dt))
	w.Pose.Orientation = w.Pose.Orientation.AddRadians((vr - vl) / w.Body.WheelBase * dt)
}
