package ir

import (
	"errors"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/linebot/pkg/cli/sh"
	"github.com/robotalks/linebot/pkg/infrared"
)

// ErrNothingScheduled is returned by ir.recv in the simulator when no
// remote transmission is on its way.
var ErrNothingScheduled = errors.New("no remote frame scheduled, use sim.remote first")

// Scheduled tells when a simulated transmission ends.
type Scheduled struct {
	Frame string        `json:"frame"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

func argFrame(args []string) (infrared.Frame, error) {
	var f infrared.Frame
	cmd, err := sh.ArgUint(args, 0, "CMD", infrared.CommandBits)
	if err != nil {
		return f, err
	}
	f.Command = uint8(cmd)
	if len(args) > 1 {
		addr, err := sh.ArgUint(args, 1, "ADDR", infrared.AddressBits)
		if err != nil {
			return f, err
		}
		f.Address = uint8(addr)
	}
	return f, nil
}

// Recv waits for one command.
func Recv(s *sh.Shell, _ []string) (interface{}, error) {
	if s.Env.Sim != nil && !s.Env.Sim.RemotePending() {
		return nil, ErrNothingScheduled
	}
	rec, err := s.Robot.Receive()
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Send transmits a frame: CMD [ADDR].
func Send(s *sh.Shell, args []string) (interface{}, error) {
	f, err := argFrame(args)
	if err != nil {
		return nil, err
	}
	return nil, s.Robot.Send(f)
}

// Remote schedules the simulated remote control: CMD [ADDR] [DELAY].
func Remote(s *sh.Shell, args []string) (interface{}, error) {
	if s.Env.Sim == nil {
		return nil, errors.New("sim.remote needs the simulator")
	}
	f, err := argFrame(args)
	if err != nil {
		return nil, err
	}
	delay, err := sh.ArgDuration(args, 2, "DELAY", 0)
	if err != nil {
		return nil, err
	}
	start := s.Env.Sim.Clock.Now() + delay
	end := s.Env.Sim.Remote(f, s.Env.Config.Infrared.Timing, start)
	return Scheduled{Frame: f.String(), Start: start, End: end}, nil
}

var (
	// RecvCmd exposes Recv.
	RecvCmd = ishell.Cmd{
		Name:    "ir.recv",
		Aliases: []string{"rx"},
		Help:    "",
		Func:    sh.Command(Recv),
	}

	// SendCmd exposes Send.
	SendCmd = ishell.Cmd{
		Name:    "ir.send",
		Aliases: []string{"tx"},
		Help:    "CMD [ADDR]",
		Func:    sh.Command(Send),
	}

	// RemoteCmd exposes Remote.
	RemoteCmd = ishell.Cmd{
		Name: "sim.remote",
		Help: "CMD [ADDR] [DELAY]",
		Func: sh.Command(Remote),
	}
)

func init() {
	sh.AddCmds(
		&RecvCmd,
		&SendCmd,
		&RemoteCmd,
	)
}
