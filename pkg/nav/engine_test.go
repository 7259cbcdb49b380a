package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/drive"
	"github.com/robotalks/linebot/pkg/hal"
	"github.com/robotalks/linebot/pkg/hal/sim"
)

type fixture struct {
	clock  *sim.Clock
	line   *sim.ScriptedLine
	motors *sim.MotorRecorder
	engine *Engine
	states []State
}

func newFixture(frames ...hal.SensorFrame) *fixture {
	f := &fixture{
		clock:  sim.NewClock(),
		line:   sim.NewScriptedLine(frames...),
		motors: &sim.MotorRecorder{},
	}
	d := drive.New(f.motors, f.clock)
	f.engine = NewEngine(f.line, d, sim.NewTimer(f.clock, nil))
	f.engine.Observer = ObserverFunc(func(t Tick) {
		f.states = append(f.states, t.State)
	})
	return f
}

func frames(s ...string) []hal.SensorFrame {
	out := make([]hal.SensorFrame, len(s))
	for i, str := range s {
		f, err := hal.ParseSensorFrame(str)
		if err != nil {
			panic(err)
		}
		out[i] = f
	}
	return out
}

func cmds(pairs ...int) []hal.MotorCommand {
	var out []hal.MotorCommand
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, hal.Speeds(pairs[i], pairs[i+1]))
	}
	return out
}

func distinct(states []State) []State {
	var out []State
	for _, s := range states {
		if len(out) == 0 || out[len(out)-1] != s {
			out = append(out, s)
		}
	}
	return out
}

func TestFollowLineStopsBeforeFirstTick(t *testing.T) {
	f := newFixture(hal.FrameCenter)
	elapsed := f.engine.FollowLine(DefaultParams, CenterOn)
	require.Equal(t, time.Duration(0), elapsed)
	require.Equal(t, cmds(120, 120), f.motors.Commands)
	require.Equal(t, time.Duration(0), f.clock.Now())
	require.Equal(t, 1, f.line.Reads)
	require.Empty(t, f.states)
}

func TestFollowLineCorrectsDriftRight(t *testing.T) {
	f := newFixture(frames("00100", "00010", "00010", "00010", "00100", "00100")...)
	elapsed := f.engine.FollowLine(DefaultParams, AfterTicks(6))
	require.Equal(t, 6*DefaultParams.TickDelay, elapsed)
	require.Equal(t, []State{
		OnLine, CorrectingRight, CorrectingRight, CorrectingRight, OnLine, OnLine,
	}, f.states)
	require.Equal(t, cmds(120, 120, 120, 99, 120, 98, 120, 120), f.motors.Commands)
}

func TestFollowLineCorrectsDriftLeft(t *testing.T) {
	f := newFixture(frames("00100", "01000", "01000", "00100")...)
	f.engine.FollowLine(DefaultParams, AfterTicks(4))
	require.Equal(t, []State{OnLine, CorrectingLeft, OnLine}, distinct(f.states))
	require.Equal(t, cmds(120, 120, 99, 120, 120, 120), f.motors.Commands)
}

func TestFollowLineOnlyTurnRight(t *testing.T) {
	p := DefaultParams
	p.OnlyTurnRight = true
	f := newFixture(frames("00100", "01000", "01000", "00100")...)
	f.engine.FollowLine(p, AfterTicks(4))
	require.Equal(t, []State{OnLine}, distinct(f.states))
	require.Equal(t, cmds(120, 120), f.motors.Commands)
}

func TestFollowLineEdgeFrames(t *testing.T) {
	script := frames("00100", "00010", "00001", "00010", "00100")
	t.Run("ignored without edge sensors", func(t *testing.T) {
		f := newFixture(script...)
		f.engine.FollowLine(DefaultParams, AfterTicks(5))
		require.Equal(t, []State{OnLine, CorrectingRight, OnLine}, distinct(f.states))
		require.NotContains(t, f.states, AbruptRight)
	})
	t.Run("abrupt with edge sensors", func(t *testing.T) {
		p := DefaultParams
		p.UseEdgeSensors = true
		f := newFixture(script...)
		f.engine.FollowLine(p, AfterTicks(5))
		require.Contains(t, f.states, AbruptRight)
	})
}

func TestFollowLineAbruptLeftBrakesOnReacquire(t *testing.T) {
	p := DefaultParams
	p.UseEdgeSensors = true
	f := newFixture(frames("00100", "10000", "10000", "00100")...)
	elapsed := f.engine.FollowLine(p, AfterTicks(4))
	require.Equal(t, []State{OnLine, AbruptLeft, AbruptLeft, OnLine}, f.states)
	require.Equal(t, cmds(120, 120, 0, 120, 0, 120, 0, -120, 0, 0, 120, 120), f.motors.Commands)
	require.Equal(t, 4*p.TickDelay, elapsed)
	require.Equal(t, elapsed+2*drive.DefaultConfig.ForceStopDuration, f.clock.Now())
}

func TestFollowLineSearching(t *testing.T) {
	cases := []struct {
		name   string
		script []hal.SensorFrame
		spin   []hal.MotorCommand
	}{
		{"last seen right", frames("00100", "00001", "00000", "00000", "00100"), cmds(120, -120)},
		{"last seen left", frames("00100", "10000", "00000", "00000", "00100"), cmds(-120, 120)},
		{"never seen defaults right", frames("00000", "00000", "00100"), cmds(120, -120)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(c.script...)
			f.engine.FollowLine(DefaultParams, AfterTicks(len(c.script)))
			require.Contains(t, f.states, Searching)
			require.Contains(t, f.motors.Commands, c.spin[0])
			require.Equal(t, OnLine, f.states[len(f.states)-1])
			require.Equal(t, hal.Speeds(120, 120), f.motors.Last())
		})
	}
}

func TestFollowLineNonContiguousFrameSearches(t *testing.T) {
	f := newFixture(frames("00100", "01010", "00100")...)
	f.engine.FollowLine(DefaultParams, AfterTicks(3))
	require.Equal(t, []State{OnLine, Searching, OnLine}, f.states)
	require.Equal(t, cmds(120, 120, 120, -120, 120, 120), f.motors.Commands)
}

func TestFollowLineTurnSaturates(t *testing.T) {
	p := DefaultParams
	p.MaxTurnDifference = 30
	f := newFixture(hal.FrameCenter)
	f.line.Repeat(hal.SensorBit(3), 20)
	f.engine.FollowLine(p, AfterTicks(21))
	require.Equal(t, hal.Speeds(120, 90), f.motors.Last())
	require.Equal(t, hal.Speeds(120, 99), f.motors.Commands[1])
}

func TestFollowLineOnWorld(t *testing.T) {
	clock := sim.NewClock()
	world := sim.NewWorld(clock, sim.StraightTrack{Width: 15}, sim.DefaultBody, sim.Pose2D{})
	d := drive.New(world, clock)
	timer := sim.NewTimer(clock, nil)
	e := NewEngine(world, d, timer)
	timer.Start(time.Second)
	elapsed := e.FollowLine(DefaultParams, TimerExpired(timer))
	require.Equal(t, time.Second, elapsed)
	require.InDelta(t, 144.0, world.Pose.X, 1e-6)
	require.InDelta(t, 0.0, world.Pose.Y, 1e-9)
}
