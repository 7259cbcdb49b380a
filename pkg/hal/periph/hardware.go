package periph

import (
	"fmt"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/robotalks/linebot/pkg/hal"
)

// Pins names the host pins wired to the robot, as known to gpioreg.
type Pins struct {
	InfraredRx string `yaml:"ir-rx"`
	InfraredTx string `yaml:"ir-tx"`
	Button     string `yaml:"button"`
	LeftPWM    string `yaml:"left-pwm"`
	LeftDir    string `yaml:"left-dir"`
	RightPWM   string `yaml:"right-pwm"`
	RightDir   string `yaml:"right-dir"`
	I2CBus     string `yaml:"i2c-bus"`
	// LineADC names the line sensor ADC channels, leftmost first.
	LineADC []string `yaml:"line-adc,flow"`
	// MotorPWMHz is the H-bridge PWM frequency.
	MotorPWMHz int `yaml:"motor-pwm-hz"`
}

// DefaultPins is the wiring on a Raspberry Pi header.
var DefaultPins = Pins{
	InfraredRx: "GPIO17",
	InfraredTx: "GPIO18",
	Button:     "GPIO27",
	LeftPWM:    "GPIO12",
	LeftDir:    "GPIO5",
	RightPWM:   "GPIO13",
	RightDir:   "GPIO6",
	MotorPWMHz: 500,
}

func pinByName(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("unknown pin %q", name)
	}
	return pin, nil
}

// Open initializes periph and builds a Board from the named pins.
// Board.Line is set only when the ADC channels are named; the ADC driver
// must have registered them by then.
func Open(pins Pins) (*hal.Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %v", err)
	}
	board := &hal.Board{
		Clock:         Clock{},
		TimerExpired:  &hal.Flag{},
		ButtonPressed: &hal.Flag{},
	}
	board.Timer = NewTimer(board.TimerExpired)

	irRx, err := pinByName(pins.InfraredRx)
	if err != nil {
		return nil, err
	}
	if irRx != nil {
		if err := irRx.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("ir receiver pin: %v", err)
		}
		board.InfraredRx = &InfraredReceiver{Pin: irRx}
	}
	irTx, err := pinByName(pins.InfraredTx)
	if err != nil {
		return nil, err
	}
	if irTx != nil {
		board.InfraredTx = &InfraredTransmitter{Pin: irTx}
	}
	btn, err := pinByName(pins.Button)
	if err != nil {
		return nil, err
	}
	if btn != nil {
		if err := btn.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("button pin: %v", err)
		}
		b := NewButton(btn, board.ButtonPressed)
		board.Button, board.ButtonInterrupt = b, b
	}

	var motorPins [4]gpio.PinIO
	for i, name := range []string{pins.LeftPWM, pins.LeftDir, pins.RightPWM, pins.RightDir} {
		if motorPins[i], err = pinByName(name); err != nil {
			return nil, err
		}
	}
	if motorPins[0] != nil && motorPins[1] != nil && motorPins[2] != nil && motorPins[3] != nil {
		board.Motors = &Motors{
			LeftPWM:   motorPins[0],
			LeftDir:   motorPins[1],
			RightPWM:  motorPins[2],
			RightDir:  motorPins[3],
			Frequency: physic.Frequency(pins.MotorPWMHz) * physic.Hertz,
		}
	}

	line, err := openLine(pins.LineADC, adcByName)
	if err != nil {
		return nil, err
	}
	if line != nil {
		board.Line = line
	}

	bus, err := i2creg.Open(pins.I2CBus)
	if err != nil {
		glog.Warningf("i2c bus %q unavailable: %v", pins.I2CBus, err)
	} else {
		board.Bus = NewTWI(bus)
	}
	return board, nil
}
