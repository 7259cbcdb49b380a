package nav

import (
	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/calibration"
	"github.com/robotalks/linebot/pkg/hal"
)

// CenterSensor is the index of the middle sensor.
const CenterSensor = hal.NumLineSensors / 2

// FollowCorner turns onto the next segment at a corner. It advances so
// the rotation axis sits over the corner, spins, waits until the old
// segment has left the array, then spins on until the center sensor
// lands on the new segment.
func (e *Engine) FollowCorner(clockwise bool) {
	d := e.Drive
	d.GoStraight(d.Config.TimingSpeed)
	e.Clock.Delay(d.Timings.Duration(calibration.SensorToCenterOffset) / 2)
	d.Brake()

	d.Spin(clockwise)
	e.Timer.Start(CornerClearDelay)
	for e.Line.ReadLine() != hal.FrameNone || !e.Timer.Expired() {
		e.Clock.Delay(e.PollInterval)
	}
	e.waitSensor(CenterSensor, true)
	d.Brake()
	glog.V(1).Infof("corner done clockwise=%v", clockwise)
}

// WaitUntilSensorDetectsLine polls until sensor idx sees the line.
//
// With exact set it waits for idx to be the only sensor on the line, but
// gives up as soon as idx has seen the line and lost it again, so a
// rotation does not overshoot when the exact frame is skipped.
func (e *Engine) WaitUntilSensorDetectsLine(idx int, exact bool) error {
	if idx < 0 || idx >= hal.NumLineSensors {
		return ErrInvalidSensor
	}
	e.waitSensor(idx, exact)
	return nil
}

// waitSensor is WaitUntilSensorDetectsLine for a valid idx.
func (e *Engine) waitSensor(idx int, exact bool) {
	frame := e.Line.ReadLine()
	if !exact {
		for !frame.OnLine(idx) {
			e.Clock.Delay(e.PollInterval)
			frame = e.Line.ReadLine()
		}
		return
	}
	want := hal.SensorBit(idx)
	seen := false
	for frame != want {
		on := frame.OnLine(idx)
		if !seen {
			seen = on
		} else if !on {
			break
		}
		e.Clock.Delay(e.PollInterval)
		frame = e.Line.ReadLine()
	}
}
