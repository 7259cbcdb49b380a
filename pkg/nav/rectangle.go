package nav

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/hal"
)

// RectangleParams are the tuned values for crossing an enclosed
// rectangle.
var RectangleParams = Params{
	Speed:                 120,
	InitialTurnDifference: 20,
	MaxTurnDifference:     80,
	TickDelay:             20 * time.Millisecond,
}

// FollowRectangle drives inside a rectangle bounded by line, steering
// away from whichever edge sensor touches the border, and returns once
// both edge sensors are on the line at the same time.
func (e *Engine) FollowRectangle(p Params) time.Duration {
	d := e.Drive
	r := &run{e: e, state: Inside}
	t := turn{initial: p.InitialTurnDifference, max: p.MaxTurnDifference}
	d.SetSpeed(p.Speed, p.Speed)
	for {
		frame := e.Line.ReadLine()
		if frame.AllOn(hal.FrameEdges) {
			glog.V(1).Infof("rectangle crossed after %d ticks", r.ticks)
			return r.elapsed
		}
		switch r.state {
		case Inside:
			if frame.OnLine(0) {
				r.transition(CorrectingRight, frame)
			} else if frame.OnLine(hal.NumLineSensors - 1) {
				r.transition(CorrectingLeft, frame)
			}
		case CorrectingLeft, CorrectingRight:
			if frame.NoneOn(hal.FrameEdges) {
				t.reset()
				d.SetSpeed(p.Speed, p.Speed)
				r.transition(Inside, frame)
			} else if r.state == CorrectingLeft {
				d.SetSpeed(d.Right()-t.next(), p.Speed)
			} else {
				d.SetSpeed(p.Speed, d.Left()-t.next())
			}
		}
		r.finish(frame, p.TickDelay)
	}
}
