package nav

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/drive"
	"github.com/robotalks/linebot/pkg/hal"
)

// Params tunes one FollowLine run.
type Params struct {
	// Speed is the nominal duty of both wheels.
	Speed int `yaml:"speed"`
	// InitialTurnDifference is the duty removed from the inner wheel on
	// the first correcting tick.
	InitialTurnDifference int `yaml:"initial-turn-difference"`
	// MaxTurnDifference caps the removed duty.
	MaxTurnDifference int `yaml:"max-turn-difference"`
	// TickDelay is the pause closing every tick.
	TickDelay time.Duration `yaml:"tick-delay"`
	// UseEdgeSensors enables the abrupt states on edge-only frames.
	UseEdgeSensors bool `yaml:"use-edge-sensors"`
	// OnlyTurnRight never enters CorrectingLeft from OnLine.
	OnlyTurnRight bool `yaml:"only-turn-right"`
}

// DefaultParams is a moderate speed run without edge sensors.
var DefaultParams = Params{
	Speed:                 120,
	InitialTurnDifference: 20,
	MaxTurnDifference:     80,
	TickDelay:             20 * time.Millisecond,
}

// Tick is what one loop iteration saw and did.
type Tick struct {
	N       int
	Frame   hal.SensorFrame
	State   State
	Command hal.MotorCommand
	Elapsed time.Duration
}

// Observer is notified after every non-final tick.
type Observer interface {
	ObserveTick(Tick)
}

// ObserverFunc adapts a func to Observer.
type ObserverFunc func(Tick)

// ObserveTick implements Observer.
func (f ObserverFunc) ObserveTick(t Tick) {
	f(t)
}

// DefaultPollInterval separates sensor reads in wait loops.
const DefaultPollInterval = time.Millisecond

// CornerClearDelay is the minimum rotation time before FollowCorner
// accepts an empty frame as having left the previous segment.
const CornerClearDelay = 500 * time.Millisecond

// Engine runs tracking procedures over a sensor array and a drive.
type Engine struct {
	Line  hal.LineSensor
	Drive *drive.Drive
	Clock hal.Clock
	Timer hal.Timer
	// PollInterval is the pause between reads in wait loops.
	PollInterval time.Duration
	Observer     Observer
}

// NewEngine creates an Engine sharing the drive's clock.
func NewEngine(line hal.LineSensor, d *drive.Drive, timer hal.Timer) *Engine {
	return &Engine{
		Line:         line,
		Drive:        d,
		Clock:        d.Clock,
		Timer:        timer,
		PollInterval: DefaultPollInterval,
	}
}

// turn ramps the duty removed from the inner wheel while correcting.
type turn struct {
	initial, max, counter int
}

func (t *turn) reset() {
	t.counter = 0
}

func (t *turn) next() int {
	if t.counter+t.initial < t.max {
		t.counter++
	}
	return t.counter + t.initial
}

// run tracks per-run bookkeeping shared by the procedures.
type run struct {
	e       *Engine
	state   State
	ticks   int
	elapsed time.Duration
}

func (r *run) transition(s State, frame hal.SensorFrame) {
	if s != r.state {
		glog.V(2).Infof("track %d: %v -> %v on %v", r.ticks, r.state, s, frame)
		r.state = s
	}
}

func (r *run) finish(frame hal.SensorFrame, delay time.Duration) {
	if o := r.e.Observer; o != nil {
		o.ObserveTick(Tick{
			N:       r.ticks,
			Frame:   frame,
			State:   r.state,
			Command: r.e.Drive.Speed(),
			Elapsed: r.elapsed,
		})
	}
	r.e.Clock.Delay(delay)
	r.elapsed += delay
	r.ticks++
}

// FollowLine keeps the robot over the line until stop fires and returns
// the time spent, counted as elapsed tick delays. The motors keep their
// last command on return.
func (e *Engine) FollowLine(p Params, stop StopCondition) time.Duration {
	d := e.Drive
	r := &run{e: e, state: OnLine}
	t := turn{initial: p.InitialTurnDifference, max: p.MaxTurnDifference}
	lastSeenRight := true
	d.SetSpeed(p.Speed, p.Speed)
	for {
		frame := e.Line.ReadLine()
		if stop.ShouldStop(frame) {
			glog.V(1).Infof("track stopped after %d ticks in %v", r.ticks, r.state)
			return r.elapsed
		}

		if frame.OnLine(hal.NumLineSensors - 1) {
			lastSeenRight = true
		} else if frame.OnLine(0) {
			lastSeenRight = false
		}

		switch {
		case frame == hal.FrameNone || !frame.Contiguous():
			r.transition(Searching, frame)
		case p.UseEdgeSensors && frame == hal.FrameLeftEdge:
			r.transition(AbruptLeft, frame)
		case p.UseEdgeSensors && frame == hal.FrameRightEdge:
			r.transition(AbruptRight, frame)
		}

		center := frame.OnLine(2)
		switch r.state {
		case OnLine:
			if !center {
				if frame.OnLine(1) && !frame.OnLine(3) && !p.OnlyTurnRight {
					r.transition(CorrectingLeft, frame)
				} else if frame.OnLine(3) && !frame.OnLine(1) {
					r.transition(CorrectingRight, frame)
				}
			}
		case CorrectingLeft, CorrectingRight:
			if center {
				t.reset()
				d.SetSpeed(p.Speed, p.Speed)
				r.transition(OnLine, frame)
			} else if r.state == CorrectingLeft {
				d.SetSpeed(d.Right()-t.next(), p.Speed)
			} else {
				d.SetSpeed(p.Speed, d.Left()-t.next())
			}
		case AbruptLeft, AbruptRight:
			if center {
				d.Brake()
				d.SetSpeed(p.Speed, p.Speed)
				t.reset()
				r.transition(OnLine, frame)
			} else if r.state == AbruptLeft {
				d.SetSpeed(0, p.Speed)
			} else {
				d.SetSpeed(p.Speed, 0)
			}
		case Searching:
			if center {
				d.SetSpeed(p.Speed, p.Speed)
				t.reset()
				r.transition(OnLine, frame)
			} else if lastSeenRight {
				d.SetSpeed(p.Speed, -p.Speed)
			} else {
				d.SetSpeed(-p.Speed, p.Speed)
			}
		}
		r.finish(frame, p.TickDelay)
	}
}
