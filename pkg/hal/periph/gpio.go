package periph

import (
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/robotalks/linebot/pkg/hal"
)

// CarrierFrequency is the infrared modulation frequency.
const CarrierFrequency = 38 * physic.KiloHertz

// levelReader is the part of gpio.PinIn used for polling.
type levelReader interface {
	Read() gpio.Level
}

// InfraredReceiver reads an active-low demodulating photodetector.
type InfraredReceiver struct {
	Pin levelReader
}

// CarrierDetected implements hal.InfraredReceiver.
func (r *InfraredReceiver) CarrierDetected() bool {
	return r.Pin.Read() == gpio.Low
}

// InfraredTransmitter gates a 50% duty carrier on the emitter pin.
type InfraredTransmitter struct {
	Pin gpio.PinOut
}

// SetCarrier implements hal.InfraredTransmitter.
func (t *InfraredTransmitter) SetCarrier(on bool) {
	var err error
	if on {
		err = t.Pin.PWM(gpio.DutyHalf, CarrierFrequency)
	} else {
		err = t.Pin.Out(gpio.Low)
	}
	if err != nil {
		glog.Warningf("ir carrier %v: %v", on, err)
	}
}

// Button is an active-high push button with a rising-edge interrupt.
type Button struct {
	Pin  gpio.PinIn
	Flag *hal.Flag

	lock sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewButton creates a Button raising pressed.
func NewButton(pin gpio.PinIn, pressed *hal.Flag) *Button {
	if pressed == nil {
		pressed = &hal.Flag{}
	}
	return &Button{Pin: pin, Flag: pressed}
}

// Pressed implements hal.Button.
func (b *Button) Pressed() bool {
	return b.Pin.Read() == gpio.High
}

// Enable implements hal.Interrupt.
func (b *Button) Enable() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.Flag.Clear()
	if b.stop != nil {
		return
	}
	if err := b.Pin.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		glog.Errorf("button edge detection: %v", err)
		return
	}
	b.stop, b.done = make(chan struct{}), make(chan struct{})
	go b.watch(b.stop, b.done)
}

// Disable implements hal.Interrupt.
func (b *Button) Disable() {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.stop != nil {
		close(b.stop)
		<-b.done
		b.stop, b.done = nil, nil
		if err := b.Pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
			glog.Warningf("button edge detection off: %v", err)
		}
	}
	b.Flag.Clear()
}

func (b *Button) watch(stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}
		if b.Pin.WaitForEdge(50 * time.Millisecond) {
			b.Flag.Set()
		}
	}
}

// Motors drives an H-bridge with one PWM and one direction pin per wheel.
type Motors struct {
	LeftPWM, RightPWM gpio.PinOut
	LeftDir, RightDir gpio.PinOut
	Frequency         physic.Frequency
}

// SetMotorSpeed implements hal.Motors.
func (m *Motors) SetMotorSpeed(cmd hal.MotorCommand) {
	cmd = cmd.Clamped()
	m.drive("left", m.LeftPWM, m.LeftDir, cmd.Left)
	m.drive("right", m.RightPWM, m.RightDir, cmd.Right)
}

func (m *Motors) drive(name string, pwm, dir gpio.PinOut, v int16) {
	reverse := v < 0
	if reverse {
		v = -v
	}
	if err := dir.Out(gpio.Level(reverse)); err != nil {
		glog.Warningf("%s motor direction: %v", name, err)
	}
	duty := gpio.Duty(int64(gpio.DutyMax) * int64(v) / hal.MaxDuty)
	if err := pwm.PWM(duty, m.Frequency); err != nil {
		glog.Warningf("%s motor duty %d: %v", name, v, err)
	}
}
