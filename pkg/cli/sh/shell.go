package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/env"
	fx "github.com/robotalks/linebot/pkg/framework"
	"github.com/robotalks/linebot/pkg/robot"
	"github.com/robotalks/linebot/pkg/telemetry"
)

// Shell provides ishell backed interactive shell over one robot.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell *ishell.Shell
	Env   *env.Env
	Robot *robot.Robot
}

// CommandFunc runs a command and returns what should be printed.
type CommandFunc func(s *Shell, args []string) (interface{}, error)

const shellKey = "$shell"

var (
	// flags

	evalOnly   bool
	outputJSON bool
	hardware   bool

	// commands
	commands = []*ishell.Cmd{
		&InfoCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.BoolVar(&hardware, "hw", hardware, "Run on host pins instead of the simulator.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// NewEnv creates the environment selected by flags.
func NewEnv(conf *config.Config) (*env.Env, error) {
	if hardware {
		return env.NewHardwareEnv(conf)
	}
	return env.NewSimEnv(conf), nil
}

// Attach builds and boots the robot of e without an interactive shell.
func Attach(e *env.Env) (*Shell, error) {
	r, err := robot.New(e.Board, e.Config, e.Publisher)
	if err != nil {
		return nil, err
	}
	r.Boot()
	return &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Env:         e,
		Robot:       r,
	}, nil
}

// New creates a new shell.
func New(e *env.Env) (*Shell, error) {
	s, err := Attach(e)
	if err != nil {
		return nil, err
	}
	s.Shell = ishell.New()
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Robot.ID))
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s, nil
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// RobotFrom gets the robot from ishell context.
func RobotFrom(c *ishell.Context) *robot.Robot {
	return ShellFrom(c).Robot
}

// Command adapts fn into an ishell func which prints the result.
func Command(fn CommandFunc) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		res, err := fn(s, c.Args)
		if err != nil {
			c.Err(err)
			return
		}
		if res == nil {
			c.Println("OK")
			return
		}
		out, err := s.Format(res)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(out)
	}
}

// Format renders a command result as JSON or text.
func (s *Shell) Format(v interface{}) (string, error) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	if str, ok := v.(fmt.Stringer); ok {
		return str.String(), nil
	}
	return fmt.Sprintf("%+v", v), nil
}

// Run runs the shell, evaluating args when given.
func (s *Shell) Run(args ...string) error {
	if len(s.Env.Runners) > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		runner := fx.NewRunnerWith(ctx).Go(s.Env.Runners...)
		defer func() {
			cancel()
			runner.Wait()
		}()
	}
	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return fmt.Errorf("command expected")
}

// Info summarizes the robot.
type Info struct {
	Robot      string `json:"robot"`
	Simulated  bool   `json:"simulated"`
	Frame      string `json:"frame,omitempty"`
	Defaulted  bool   `json:"calibration-defaulted"`
	Telemetry  bool   `json:"telemetry"`
	HasMemory  bool   `json:"memory"`
	HasButton  bool   `json:"button"`
	HasIRRecv  bool   `json:"ir-receiver"`
	HasIRXmit  bool   `json:"ir-transmitter"`
	HasSensors bool   `json:"line-sensor"`
}

func (i Info) String() string {
	return fmt.Sprintf("%s sim=%v frame=%s defaulted=%v memory=%v button=%v ir=%v/%v",
		i.Robot, i.Simulated, i.Frame, i.Defaulted, i.HasMemory, i.HasButton, i.HasIRRecv, i.HasIRXmit)
}

// RobotInfo collects Info.
func RobotInfo(s *Shell, _ []string) (interface{}, error) {
	r := s.Robot
	info := Info{
		Robot:      r.ID,
		Simulated:  s.Env.Sim != nil,
		Defaulted:  r.CalibrationDefaulted(),
		HasMemory:  r.Memory != nil,
		HasButton:  r.Presses != nil,
		HasIRRecv:  r.Receiver != nil,
		HasIRXmit:  r.Transmitter != nil,
		HasSensors: r.Board.Line != nil,
	}
	if frame, err := r.Frame(); err == nil {
		info.Frame = frame.String()
	}
	_, info.Telemetry = s.Env.Publisher.(telemetry.Multi)
	return info, nil
}

// InfoCmd prints the robot summary.
var InfoCmd = ishell.Cmd{
	Name:    "info",
	Aliases: []string{"i"},
	Help:    "",
	Func:    Command(RobotInfo),
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf, err := config.Load(config.File())
	if err != nil {
		glog.Exitf("config: %v", err)
	}
	e, err := NewEnv(conf)
	if err != nil {
		glog.Exitf("env: %v", err)
	}
	defer e.Close()
	if err := e.ConnectTelemetry(); err != nil {
		glog.Exitf("telemetry: %v", err)
	}
	s, err := New(e)
	if err != nil {
		glog.Exitf("robot: %v", err)
	}
	if err := s.Run(flag.Args()...); err != nil {
		glog.Exit(err)
	}
}
