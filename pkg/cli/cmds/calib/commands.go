package calib

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/linebot/pkg/calibration"
	"github.com/robotalks/linebot/pkg/cli/sh"
)

// ErrSimulated is returned by calib.run in the simulator, which has no
// calibration marks.
var ErrSimulated = errors.New("calibration runs on the physical track only")

// Values is a calibration record keyed by field name, in milliseconds.
type Values struct {
	Values    map[string]uint16 `json:"values"`
	Defaulted bool              `json:"defaulted"`
}

// NewValues converts a record.
func NewValues(rec calibration.Record, defaulted bool) Values {
	v := Values{Values: make(map[string]uint16), Defaulted: defaulted}
	for f := calibration.Field(0); f < calibration.NumFields; f++ {
		v.Values[f.String()] = rec[f]
	}
	return v
}

func (v Values) String() string {
	var w bytes.Buffer
	for f := calibration.Field(0); f < calibration.NumFields; f++ {
		fmt.Fprintf(&w, "%-24s %5dms\n", f.String(), v.Values[f.String()])
	}
	if v.Defaulted {
		w.WriteString("(defaults)")
	} else {
		w.WriteString("(stored)")
	}
	return w.String()
}

// Show prints the record in use.
func Show(s *sh.Shell, _ []string) (interface{}, error) {
	return NewValues(s.Robot.Calibration(), s.Robot.CalibrationDefaulted()), nil
}

// Set changes one field and saves the record: FIELD MS.
func Set(s *sh.Shell, args []string) (interface{}, error) {
	name, err := sh.Arg(args, 0, "FIELD")
	if err != nil {
		return nil, err
	}
	f, err := calibration.ParseField(name)
	if err != nil {
		return nil, err
	}
	ms, err := sh.ArgUint(args, 1, "MS", 16)
	if err != nil {
		return nil, err
	}
	rec := s.Robot.Calibration()
	rec[f] = uint16(ms)
	if err := s.Robot.SaveCalibration(rec); err != nil {
		return nil, err
	}
	return NewValues(rec, false), nil
}

// RunCmd walks the operator through a full calibration.
var RunCmd = ishell.Cmd{
	Name: "calib.run",
	Help: "",
	Func: func(c *ishell.Context) {
		s := sh.ShellFrom(c)
		if s.Env.Sim != nil {
			c.Err(ErrSimulated)
			return
		}
		rec, err := s.Robot.Calibrate(func(f calibration.Field) {
			c.Printf("Place the robot for %s, then press the button\n", f)
		})
		if err != nil {
			c.Err(err)
			return
		}
		out, err := s.Format(NewValues(rec, false))
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(out)
	},
}

var (
	// ShowCmd exposes Show.
	ShowCmd = ishell.Cmd{
		Name:    "calib.show",
		Aliases: []string{"cal"},
		Help:    "",
		Func:    sh.Command(Show),
	}

	// SetCmd exposes Set.
	SetCmd = ishell.Cmd{
		Name: "calib.set",
		Help: "FIELD MS",
		Func: sh.Command(Set),
	}
)

func init() {
	sh.AddCmds(
		&ShowCmd,
		&SetCmd,
		&RunCmd,
	)
}
