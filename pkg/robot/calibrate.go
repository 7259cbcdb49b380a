package robot

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/calibration"
	"github.com/robotalks/linebot/pkg/hal"
)

// Measurement increments.
const (
	RotationStep = 50 * time.Millisecond
	MeasureStep  = 30 * time.Millisecond
)

// Calibrate measures every calibration field and saves the record.
//
// Before each measurement place is called so the operator (or a
// simulator) can position the robot, then the procedure waits for a
// button press. A measurement runs the motors and counts, in fixed
// increments, until the sensors see the expected pattern.
func (r *Robot) Calibrate(place func(calibration.Field)) (calibration.Record, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	var rec calibration.Record
	switch {
	case r.Memory == nil:
		return rec, ErrNoMemory
	case r.Presses == nil:
		return rec, ErrNoButton
	case r.Board.Line == nil:
		return rec, ErrNoLineSensor
	}
	for f := calibration.Rotate90CW; f < calibration.NumFields; f++ {
		if place != nil {
			place(f)
		}
		glog.Infof("calibrating %v, waiting for button", f)
		r.Presses.WaitForPress()
		d := r.measure(f)
		rec.Set(f, d)
		glog.Infof("calibrated %v: %v", f, d)
	}
	if err := r.saveCalibration(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func (r *Robot) measure(f calibration.Field) time.Duration {
	d, line := r.Drive, r.Board.Line
	cfg := d.Config
	switch f {
	case calibration.Rotate90CW, calibration.RotateSlightCW:
		d.Spin(true)
	case calibration.Rotate90CCW, calibration.RotateSlightCCW:
		d.Spin(false)
	default:
		d.GoStraight(cfg.TimingSpeed)
	}

	var elapsed time.Duration
	wait := func(step time.Duration) {
		r.Board.Clock.Delay(step)
		elapsed += step
	}
	switch f {
	case calibration.Rotate90CW, calibration.Rotate90CCW:
		// leave the starting line completely, then come back to center
		left := false
		for frame := line.ReadLine(); !frame.OnLine(2) || !left; frame = line.ReadLine() {
			if frame == hal.FrameNone {
				left = true
			}
			wait(RotationStep)
		}
		d.ForceStop(cfg.ForceStopAfterRotate90)
	case calibration.RotateSlightCW, calibration.RotateSlightCCW:
		edge := hal.FrameRightEdge
		if f == calibration.RotateSlightCW {
			edge = hal.FrameLeftEdge
		}
		for !line.ReadLine().AnyOn(edge) {
			wait(MeasureStep)
		}
		d.ForceStop(cfg.ForceStopAfterRotateSlightly)
	case calibration.Section1StartOffset, calibration.SensorToCenterOffset:
		mask := hal.FrameMiddle
		if f == calibration.SensorToCenterOffset {
			mask = hal.FrameCenter
		}
		for !line.ReadLine().AllOn(mask) {
			wait(MeasureStep)
		}
		d.Brake()
	case calibration.BetweenPointsDuration:
		// cross the first mark, leave the line between marks, stop on the next
		crossed, between := false, false
		for frame := line.ReadLine(); !frame.AllOn(hal.FrameMiddle) || !between; frame = line.ReadLine() {
			if frame.AllOn(hal.FrameMiddle) {
				crossed = true
			} else if crossed && frame.NoneOn(hal.FrameEdges) {
				between = true
			}
			wait(MeasureStep)
		}
		d.Brake()
	}
	return elapsed
}
