package robot

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/infrared"
)

// DefaultSectionTime is how long one unit of a received section number is
// followed.
const DefaultSectionTime = time.Second

// Mission is the robot program: boot, then repeatedly take a section
// number over infrared (or from the button) and follow the line for that
// many section times.
type Mission struct {
	Robot       *Robot
	SectionTime time.Duration
	// Rounds limits how many sections are run. Zero runs until canceled.
	Rounds int
}

// Name implements framework.Named.
func (m *Mission) Name() string {
	return "mission"
}

// Run implements framework.Runnable. Cancellation is honored between
// sections.
func (m *Mission) Run(ctx context.Context) error {
	r := m.Robot
	r.Boot()
	unit := m.SectionTime
	if unit <= 0 {
		unit = DefaultSectionTime
	}
	for round := 0; m.Rounds == 0 || round < m.Rounds; {
		if err := ctx.Err(); err != nil {
			return err
		}
		digit, err := r.ReceiveDigit()
		if err != nil {
			return err
		}
		if digit == 0 {
			glog.Warning("section 0 ignored")
			continue
		}
		glog.Infof("section %d selected", digit)
		elapsed, err := r.FollowFor(r.Config.Tracking.Params, time.Duration(digit)*unit)
		if err != nil {
			return err
		}
		glog.Infof("section %d done in %v", digit, elapsed)
		round++
	}
	return nil
}

// RemoteAddress is the device address the remote control sends to.
const RemoteAddress = 1

// Remote is the remote control program: count operator button presses
// and send the count as an infrared command.
type Remote struct {
	Robot   *Robot
	Address uint8
	// Rounds limits how many commands are sent. Zero runs until canceled.
	Rounds int
}

// Name implements framework.Named.
func (m *Remote) Name() string {
	return "remote"
}

// Run implements framework.Runnable.
func (m *Remote) Run(ctx context.Context) error {
	r := m.Robot
	for round := 0; m.Rounds == 0 || round < m.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		glog.Info("waiting for button presses")
		count, err := r.PressCount()
		if err != nil {
			return err
		}
		f := infrared.Frame{Command: count, Address: m.Address}
		if err := r.Send(f); err != nil {
			return err
		}
		glog.Infof("sent %v", f)
	}
	return nil
}
