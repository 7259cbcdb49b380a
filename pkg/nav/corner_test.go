package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/calibration"
	"github.com/robotalks/linebot/pkg/drive"
	"github.com/robotalks/linebot/pkg/hal"
)

func TestFollowRectangle(t *testing.T) {
	f := newFixture(frames("00000", "10000", "10000", "00000", "00001", "10001")...)
	elapsed := f.engine.FollowRectangle(RectangleParams)
	require.Equal(t, 5*RectangleParams.TickDelay, elapsed)
	require.Equal(t, []State{Inside, CorrectingRight, CorrectingRight, Inside, CorrectingLeft}, f.states)
	require.Equal(t, cmds(120, 120, 120, 99, 120, 120), f.motors.Commands)
}

func TestWaitUntilSensorDetectsLine(t *testing.T) {
	cases := []struct {
		name   string
		idx    int
		exact  bool
		frames []hal.SensorFrame
		reads  int
	}{
		{"exact", 2, true, frames("00000", "01000", "01100", "00100", "00000"), 4},
		{"exact overshoot", 2, true, frames("00000", "01100", "01000", "00000"), 3},
		{"exact immediately", 0, true, frames("10000"), 1},
		{"inexact", 2, false, frames("00000", "00000", "01100", "00100"), 3},
		{"edge", 4, false, frames("00000", "00011"), 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(c.frames...)
			require.NoError(t, f.engine.WaitUntilSensorDetectsLine(c.idx, c.exact))
			require.Equal(t, c.reads, f.line.Reads)
			require.Equal(t, DefaultPollInterval*time.Duration(c.reads-1), f.clock.Now())
		})
	}
}

func TestWaitUntilSensorDetectsLineInvalid(t *testing.T) {
	for _, idx := range []int{-1, hal.NumLineSensors} {
		f := newFixture(hal.FrameAll)
		require.Equal(t, ErrInvalidSensor, f.engine.WaitUntilSensorDetectsLine(idx, false))
		require.Zero(t, f.line.Reads)
	}
}

func TestWaitSensor(t *testing.T) {
	f := newFixture(frames("00000", "01000", "01100", "00100", "11111")...)
	f.engine.waitSensor(CenterSensor, true)
	require.Equal(t, 4, f.line.Reads)

	f = newFixture(frames("00000", "00001")...)
	f.engine.waitSensor(hal.NumLineSensors-1, false)
	require.Equal(t, 2, f.line.Reads)
}

func TestFollowCorner(t *testing.T) {
	f := newFixture()
	f.line.Repeat(hal.FrameCenter, 10).Repeat(hal.FrameNone, 600)
	f.line.Frames = append(f.line.Frames, frames("01000", "00100", "00010")...)
	f.engine.FollowCorner(true)

	require.Equal(t, len(f.line.Frames)-1, f.line.Reads)
	require.Equal(t, cmds(
		255, 255, 120, 120, // straight
		-120, -120, 0, 0, // brake
		255, -255, 100, -100, // spin clockwise
		-100, 100, 0, 0, // brake
	), f.motors.Commands)

	cfg := drive.DefaultConfig
	spinStart := cfg.PulseDuration + calibration.Default().Duration(calibration.SensorToCenterOffset)/2 +
		2*cfg.ForceStopDuration + cfg.PulseDuration
	require.True(t, f.clock.Now() >= spinStart+CornerClearDelay+2*cfg.ForceStopDuration)
}

func TestFollowCornerCounterclockwise(t *testing.T) {
	f := newFixture(hal.FrameNone)
	f.line.Repeat(hal.FrameNone, 600).Repeat(hal.FrameCenter, 1)
	f.engine.FollowCorner(false)
	require.Contains(t, f.motors.Commands, hal.Speeds(-100, 100))
	require.Equal(t, hal.MotorCommand{}, f.motors.Last())
}
