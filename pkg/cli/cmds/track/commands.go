package track

import (
	"fmt"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/linebot/pkg/cli/sh"
)

// DefaultFollowTime is how long follow runs without TIME.
const DefaultFollowTime = time.Second

// Pose is the simulated robot placement.
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// Motion summarizes a movement command.
type Motion struct {
	Elapsed time.Duration `json:"elapsed"`
	Frame   string        `json:"frame"`
	Pose    *Pose         `json:"pose,omitempty"`
}

func (m Motion) String() string {
	str := fmt.Sprintf("elapsed=%v frame=%s", m.Elapsed, m.Frame)
	if m.Pose != nil {
		str += fmt.Sprintf(" pose=(%.1f,%.1f) heading=%.1f", m.Pose.X, m.Pose.Y, m.Pose.Heading)
	}
	return str
}

func motion(s *sh.Shell, elapsed time.Duration) (interface{}, error) {
	frame, err := s.Robot.Frame()
	if err != nil {
		return nil, err
	}
	m := Motion{Elapsed: elapsed, Frame: frame.String()}
	if s.Env.Sim != nil {
		p := s.Env.Sim.World.Pose
		m.Pose = &Pose{X: p.X, Y: p.Y, Heading: p.Orientation.Degrees()}
	}
	return m, nil
}

// Follow tracks the line for TIME, or until the button is pressed.
func Follow(s *sh.Shell, args []string) (interface{}, error) {
	d, err := sh.ArgDuration(args, 0, "TIME", DefaultFollowTime)
	if err != nil {
		return nil, err
	}
	elapsed, err := s.Robot.FollowFor(s.Env.Config.Tracking.Params, d)
	if err != nil {
		return nil, err
	}
	return motion(s, elapsed)
}

// Rectangle crosses an enclosed rectangle.
func Rectangle(s *sh.Shell, _ []string) (interface{}, error) {
	elapsed, err := s.Robot.FollowRectangle()
	if err != nil {
		return nil, err
	}
	return motion(s, elapsed)
}

// Corner turns onto the next segment: [cw|ccw].
func Corner(s *sh.Shell, args []string) (interface{}, error) {
	cw, err := sh.ArgClockwise(args, 0)
	if err != nil {
		return nil, err
	}
	if err := s.Robot.FollowCorner(cw); err != nil {
		return nil, err
	}
	return motion(s, 0)
}

// Frame samples the sensors.
func Frame(s *sh.Shell, _ []string) (interface{}, error) {
	return motion(s, 0)
}

// Drive runs the wheels: LEFT RIGHT [TIME].
func Drive(s *sh.Shell, args []string) (interface{}, error) {
	left, err := sh.ArgInt(args, 0, "LEFT")
	if err != nil {
		return nil, err
	}
	right, err := sh.ArgInt(args, 1, "RIGHT")
	if err != nil {
		return nil, err
	}
	d, err := sh.ArgDuration(args, 2, "TIME", DefaultFollowTime)
	if err != nil {
		return nil, err
	}
	s.Robot.Move(left, right, d)
	return motion(s, d)
}

// Rotate turns in place: [cw|ccw] [slight].
func Rotate(s *sh.Shell, args []string) (interface{}, error) {
	cw, err := sh.ArgClockwise(args, 0)
	if err != nil {
		return nil, err
	}
	slight := len(args) > 1 && args[1] == "slight"
	s.Robot.Rotate(cw, slight)
	return motion(s, 0)
}

var (
	// FollowCmd exposes Follow.
	FollowCmd = ishell.Cmd{
		Name:    "follow",
		Aliases: []string{"f"},
		Help:    "[TIME]",
		Func:    sh.Command(Follow),
	}

	// RectangleCmd exposes Rectangle.
	RectangleCmd = ishell.Cmd{
		Name: "rectangle",
		Help: "",
		Func: sh.Command(Rectangle),
	}

	// CornerCmd exposes Corner.
	CornerCmd = ishell.Cmd{
		Name: "corner",
		Help: "[cw|ccw]",
		Func: sh.Command(Corner),
	}

	// FrameCmd exposes Frame.
	FrameCmd = ishell.Cmd{
		Name:    "frame",
		Aliases: []string{"fr"},
		Help:    "",
		Func:    sh.Command(Frame),
	}

	// DriveCmd exposes Drive.
	DriveCmd = ishell.Cmd{
		Name:    "drive",
		Aliases: []string{"d"},
		Help:    "LEFT RIGHT [TIME]",
		Func:    sh.Command(Drive),
	}

	// RotateCmd exposes Rotate.
	RotateCmd = ishell.Cmd{
		Name:    "rotate",
		Aliases: []string{"r"},
		Help:    "[cw|ccw] [slight]",
		Func:    sh.Command(Rotate),
	}
)

func init() {
	sh.AddCmds(
		&FollowCmd,
		&RectangleCmd,
		&CornerCmd,
		&FrameCmd,
		&DriveCmd,
		&RotateCmd,
	)
}
