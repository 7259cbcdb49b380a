// Package robot assembles the line-following robot from a board and a
// configuration, and reports what it does over telemetry.
package robot

import (
	"errors"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/button"
	"github.com/robotalks/linebot/pkg/calibration"
	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/drive"
	"github.com/robotalks/linebot/pkg/eeprom"
	"github.com/robotalks/linebot/pkg/hal"
	"github.com/robotalks/linebot/pkg/infrared"
	"github.com/robotalks/linebot/pkg/nav"
	"github.com/robotalks/linebot/pkg/telemetry"
)

// Errors for components missing on the board.
var (
	ErrNoMemory      = errors.New("no external memory")
	ErrNoReceiver    = errors.New("no infrared receiver")
	ErrNoTransmitter = errors.New("no infrared transmitter")
	ErrNoButton      = errors.New("no button")
	ErrNoLineSensor  = errors.New("no line sensor")
	ErrNoClock       = errors.New("no clock")
	ErrNoTimer       = errors.New("no timer")
	ErrNoMotors      = errors.New("no motors")
)

// Robot owns the board. Operations are serialized.
type Robot struct {
	ID        string
	Board     *hal.Board
	Config    *config.Config
	Telemetry telemetry.Publisher

	Drive       *drive.Drive
	Engine      *nav.Engine
	Memory      *eeprom.Driver
	Receiver    *infrared.Receiver
	Transmitter *infrared.Transmitter
	Presses     *button.Counter

	lock      sync.Mutex
	defaulted bool
}

// New wires components for whatever the board provides. Clock, Timer and
// Motors are required.
func New(board *hal.Board, conf *config.Config, pub telemetry.Publisher) (*Robot, error) {
	switch {
	case board.Clock == nil:
		return nil, ErrNoClock
	case board.Timer == nil:
		return nil, ErrNoTimer
	case board.Motors == nil:
		return nil, ErrNoMotors
	}
	if pub == nil {
		pub = telemetry.Nop
	}
	r := &Robot{
		ID:        telemetry.RobotID(conf.Telemetry.RobotID),
		Board:     board,
		Config:    conf,
		Telemetry: pub,
		Drive:     drive.New(board.Motors, board.Clock),
	}
	r.Drive.Config = conf.Drive
	r.Engine = nav.NewEngine(board.Line, r.Drive, board.Timer)
	r.Engine.PollInterval = conf.Tracking.PollInterval
	if board.Bus != nil {
		mem, err := conf.NewDriver(board.Bus)
		if err != nil {
			return nil, err
		}
		r.Memory = mem
	}
	if board.Button != nil {
		r.Presses = button.NewCounter(board.Button, board.Clock, board.Timer)
	}
	if board.InfraredRx != nil {
		r.Receiver = conf.NewReceiver(board.InfraredRx, board.Clock)
		if r.Presses != nil && board.ButtonPressed != nil {
			r.Receiver.WithButton(board.ButtonPressed, board.ButtonInterrupt, r.Presses)
		}
	}
	if board.InfraredTx != nil {
		r.Transmitter = conf.NewTransmitter(board.InfraredTx, board.Clock)
	}
	return r, nil
}

func (r *Robot) publish(msg telemetry.Message) {
	if err := r.Telemetry.Publish(msg); err != nil {
		glog.Warningf("publish %s: %v", msg.Topic(), err)
	}
}

// Boot loads calibration into the drive, falling back to defaults when
// the memory is missing, unreadable or erased, and reports the record in
// use.
func (r *Robot) Boot() calibration.Record {
	r.lock.Lock()
	defer r.lock.Unlock()
	rec, defaulted := r.loadCalibration()
	r.Drive.Timings, r.defaulted = rec, defaulted
	glog.Infof("robot %s booted, calibration %v (defaulted=%v)", r.ID, rec, defaulted)
	r.publishCalibration()
	return rec
}

func (r *Robot) loadCalibration() (calibration.Record, bool) {
	if r.Memory == nil {
		return calibration.Default(), true
	}
	rec, err := calibration.Load(r.Memory)
	if err != nil {
		glog.Warningf("calibration unreadable, using defaults: %v", err)
		return calibration.Default(), true
	}
	if rec.Erased() {
		glog.Warning("calibration memory erased, using defaults")
		return calibration.Default(), true
	}
	return rec, false
}

func (r *Robot) publishCalibration() {
	rec := r.Drive.Timings
	values := make([]uint32, len(rec))
	for i, v := range rec {
		values[i] = uint32(v)
	}
	r.publish(&telemetry.CalibrationSnapshot{Robot: r.ID, Values: values, Defaulted: r.defaulted})
}

// Calibration returns the record in use.
func (r *Robot) Calibration() calibration.Record {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Drive.Timings
}

// CalibrationDefaulted tells whether the built-in record is in use.
func (r *Robot) CalibrationDefaulted() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.defaulted
}

// ReadMemory reads n bytes of external memory from addr.
func (r *Robot) ReadMemory(addr uint16, n int) ([]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Memory == nil {
		return nil, ErrNoMemory
	}
	out := make([]byte, n)
	if err := r.Memory.ReadBlock(addr, out); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteMemory writes data to external memory at addr.
func (r *Robot) WriteMemory(addr uint16, data []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Memory == nil {
		return ErrNoMemory
	}
	return r.Memory.WriteBlock(addr, data)
}

// SaveCalibration persists rec and puts it in use.
func (r *Robot) SaveCalibration(rec calibration.Record) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.saveCalibration(rec)
}

func (r *Robot) saveCalibration(rec calibration.Record) error {
	if r.Memory == nil {
		return ErrNoMemory
	}
	if err := calibration.Save(r.Memory, rec); err != nil {
		return err
	}
	r.Drive.Timings, r.defaulted = rec, false
	r.publishCalibration()
	return nil
}

// Receive blocks for an infrared command or the button fallback.
func (r *Robot) Receive() (infrared.Reception, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Receiver == nil {
		return infrared.Reception{}, ErrNoReceiver
	}
	rec := r.Receiver.Receive()
	r.publish(&telemetry.InfraredReception{
		Robot:   r.ID,
		Raw:     uint32(rec.Raw),
		Command: uint32(rec.Command()),
		Address: uint32(rec.Address()),
		Source:  rec.Source.String(),
	})
	return rec, nil
}

// ReceiveDigit is Receive keeping the command bits.
func (r *Robot) ReceiveDigit() (uint8, error) {
	rec, err := r.Receive()
	return rec.Command(), err
}

// Send transmits a frame.
func (r *Robot) Send(f infrared.Frame) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Transmitter == nil {
		return ErrNoTransmitter
	}
	r.Transmitter.Send(f)
	return nil
}

// PressCount counts operator button presses.
func (r *Robot) PressCount() (uint8, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Presses == nil {
		return 0, ErrNoButton
	}
	return r.Presses.PressCount(), nil
}

// tracker summarizes ticks for the report, passing them on to the
// engine's own observer.
type tracker struct {
	next        nav.Observer
	ticks       int
	transitions int
	last        nav.Tick
}

func (t *tracker) ObserveTick(tick nav.Tick) {
	if t.ticks > 0 && tick.State != t.last.State {
		t.transitions++
	}
	t.ticks++
	t.last = tick
	if t.next != nil {
		t.next.ObserveTick(tick)
	}
}

func (r *Robot) track(procedure string, fn func() time.Duration) time.Duration {
	t := &tracker{next: r.Engine.Observer}
	r.Engine.Observer = t
	elapsed := fn()
	r.Engine.Observer = t.next
	r.publish(&telemetry.TrackingReport{
		Robot:       r.ID,
		Procedure:   procedure,
		Ticks:       uint32(t.ticks),
		ElapsedMs:   uint32(elapsed / time.Millisecond),
		FinalState:  t.last.State.String(),
		LastFrame:   uint32(t.last.Frame),
		Transitions: uint32(t.transitions),
	})
	return elapsed
}

// Follow runs the line follower until stop fires.
func (r *Robot) Follow(p nav.Params, stop nav.StopCondition) (time.Duration, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Board.Line == nil {
		return 0, ErrNoLineSensor
	}
	return r.track("follow-line", func() time.Duration {
		return r.Engine.FollowLine(p, stop)
	}), nil
}

// FollowFor follows the line for d, or until the button is pressed when
// the board has a button interrupt, then brakes.
func (r *Robot) FollowFor(p nav.Params, d time.Duration) (time.Duration, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Board.Line == nil {
		return 0, ErrNoLineSensor
	}
	stop := nav.TimerExpired(r.Board.Timer)
	if irq, flag := r.Board.ButtonInterrupt, r.Board.ButtonPressed; irq != nil && flag != nil {
		irq.Enable()
		defer irq.Disable()
		stop = nav.AnyOf(stop, nav.FlagSet(flag))
	}
	r.Board.Timer.Start(d)
	elapsed := r.track("follow-line", func() time.Duration {
		return r.Engine.FollowLine(p, stop)
	})
	r.Drive.Brake()
	return elapsed, nil
}

// FollowRectangle crosses an enclosed rectangle.
func (r *Robot) FollowRectangle() (time.Duration, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Board.Line == nil {
		return 0, ErrNoLineSensor
	}
	return r.track("follow-rectangle", func() time.Duration {
		return r.Engine.FollowRectangle(nav.RectangleParams)
	}), nil
}

// FollowCorner turns onto the next segment.
func (r *Robot) FollowCorner(clockwise bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Board.Line == nil {
		return ErrNoLineSensor
	}
	r.Engine.FollowCorner(clockwise)
	return nil
}

// Frame samples the line sensor once.
func (r *Robot) Frame() (hal.SensorFrame, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Board.Line == nil {
		return 0, ErrNoLineSensor
	}
	return r.Board.Line.ReadLine(), nil
}

// Move runs the motors at left and right for d, then brakes.
func (r *Robot) Move(left, right int, d time.Duration) hal.MotorCommand {
	r.lock.Lock()
	defer r.lock.Unlock()
	cmd := r.Drive.SetSpeed(left, right)
	r.Board.Clock.Delay(d)
	r.Drive.Brake()
	return cmd
}

// Rotate turns in place by a right angle, or by the slight calibrated
// step.
func (r *Robot) Rotate(clockwise, slight bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if slight {
		r.Drive.RotateSlightly(clockwise)
		return
	}
	r.Drive.Rotate90(clockwise)
}
