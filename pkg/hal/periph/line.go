package periph

import (
	"fmt"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/pin/pinreg"

	"github.com/robotalks/linebot/pkg/hal"
)

// sampler is the part of analog.PinADC used by AnalogLine.
type sampler interface {
	Read() (analog.Sample, error)
}

// DefaultBlackThresholds are the raw readings at or below which each
// sensor, leftmost first, is considered over the line.
var DefaultBlackThresholds = [hal.NumLineSensors]int32{150, 180, 150, 150, 150}

// AnalogLine thresholds five ADC channels into a SensorFrame.
type AnalogLine struct {
	Pins       [hal.NumLineSensors]sampler
	Thresholds [hal.NumLineSensors]int32
}

// ReadLine implements hal.LineSensor. A channel failing to convert reads
// as off the line.
func (l *AnalogLine) ReadLine() hal.SensorFrame {
	var f hal.SensorFrame
	for i, pin := range l.Pins {
		if pin == nil {
			continue
		}
		s, err := pin.Read()
		if err != nil {
			glog.V(4).Infof("line sensor %d: %v", i, err)
			continue
		}
		if s.Raw <= l.Thresholds[i] {
			f |= hal.SensorBit(i)
		}
	}
	return f
}

// adcByName finds an ADC input among the registered pins and header pins.
func adcByName(name string) (sampler, error) {
	if p, ok := gpioreg.ByName(name).(analog.PinADC); ok {
		return p, nil
	}
	for _, header := range pinreg.All() {
		for _, row := range header {
			for _, p := range row {
				if adc, ok := p.(analog.PinADC); ok && p.Name() == name {
					return adc, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("pin %q is not an ADC input", name)
}

// openLine builds an AnalogLine from channel names, leftmost first. No
// names means no line sensor.
func openLine(names []string, lookup func(string) (sampler, error)) (*AnalogLine, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if len(names) != hal.NumLineSensors {
		return nil, fmt.Errorf("line sensor needs %d ADC channels, %d named", hal.NumLineSensors, len(names))
	}
	l := &AnalogLine{Thresholds: DefaultBlackThresholds}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("line sensor %d: no ADC channel", i)
		}
		pin, err := lookup(name)
		if err != nil {
			return nil, fmt.Errorf("line sensor %d: %v", i, err)
		}
		l.Pins[i] = pin
	}
	return l, nil
}
