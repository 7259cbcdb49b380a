package env

import (
	"time"

	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/hal"
	"github.com/robotalks/linebot/pkg/hal/sim"
	"github.com/robotalks/linebot/pkg/infrared"
)

// Sim is a simulated robot in its world, with a remote control aimed at
// it.
type Sim struct {
	Clock  *sim.Clock
	World  *sim.World
	EEPROM *sim.EEPROM
	Link   *sim.InfraredLink
	Button *sim.Button
	Timer  *sim.Timer

	TimerExpired  hal.Flag
	ButtonPressed hal.Flag

	remoteEnd time.Duration
}

// NewSim builds the simulated world from the sim section.
func NewSim(conf config.Sim) *Sim {
	s := &Sim{Clock: sim.NewClock()}
	s.World = sim.NewWorld(s.Clock, conf.NewTrack(), conf.Body, conf.StartPose())
	s.EEPROM = sim.NewEEPROM(s.Clock)
	s.Link = sim.NewInfraredLink(s.Clock, s.Clock)
	s.Button = sim.NewButton(s.Clock, &s.ButtonPressed)
	s.Timer = sim.NewTimer(s.Clock, &s.TimerExpired)
	return s
}

// Board exposes the simulated providers.
func (s *Sim) Board() *hal.Board {
	return &hal.Board{
		Clock:           s.Clock,
		Timer:           s.Timer,
		TimerExpired:    &s.TimerExpired,
		Line:            s.World,
		Motors:          s.World,
		InfraredRx:      s.Link,
		InfraredTx:      s.Link,
		Button:          s.Button,
		ButtonInterrupt: s.Button,
		ButtonPressed:   &s.ButtonPressed,
		Bus:             s.EEPROM,
	}
}

// Remote schedules the remote control to transmit f at virtual time at
// and returns when the transmission ends.
func (s *Sim) Remote(f infrared.Frame, timing infrared.Timing, at time.Duration) time.Duration {
	pairs := timing.Marshal(f)
	for i := 0; i < timing.Repeats; i++ {
		for _, p := range pairs {
			s.Link.Pulse(at, p.On())
			at += p.On() + p.Off()
		}
		at += timing.FrameGap
	}
	if at > s.remoteEnd {
		s.remoteEnd = at
	}
	return at
}

// RemotePending tells whether a scheduled transmission has not finished.
func (s *Sim) RemotePending() bool {
	return s.Clock.Now() < s.remoteEnd
}

// Section scheduling margins.
const (
	SectionLead   = 10 * time.Millisecond
	SectionMargin = time.Second
)

// RemoteSections schedules one remote frame per section number, each
// after the robot has had time to follow the previous section for
// number*unit. It returns the start of every transmission.
func (s *Sim) RemoteSections(timing infrared.Timing, unit time.Duration, sections ...uint8) []time.Duration {
	starts := make([]time.Duration, 0, len(sections))
	at := s.Clock.Now() + SectionLead
	for _, n := range sections {
		starts = append(starts, at)
		end := s.Remote(infrared.Frame{Command: n}, timing, at)
		at = end + time.Duration(n)*unit + SectionMargin
	}
	return starts
}
