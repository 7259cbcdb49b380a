package drive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/calibration"
	"github.com/robotalks/linebot/pkg/hal"
	"github.com/robotalks/linebot/pkg/hal/sim"
)

func newTestDrive() (*Drive, *sim.MotorRecorder, *sim.Clock) {
	clock := sim.NewClock()
	motors := &sim.MotorRecorder{}
	return New(motors, clock), motors, clock
}

func TestSetSpeedClamps(t *testing.T) {
	d, motors, _ := newTestDrive()
	testCases := []struct {
		name        string
		left, right int
		expect      hal.MotorCommand
	}{
		{name: "in range", left: 120, right: -80, expect: hal.MotorCommand{Left: 120, Right: -80}},
		{name: "over", left: 300, right: 256, expect: hal.MotorCommand{Left: 255, Right: 255}},
		{name: "under", left: -1000, right: -256, expect: hal.MotorCommand{Left: -255, Right: -255}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, d.SetSpeed(tc.left, tc.right))
			require.Equal(t, tc.expect, d.Speed())
			require.Equal(t, tc.expect, motors.Last())
		})
	}
}

func TestRightTrimOnlyAffectsHardware(t *testing.T) {
	d, motors, _ := newTestDrive()
	d.Config.RightTrim = Ratio{Num: 24, Den: 25}
	d.SetSpeed(200, -250)
	require.Equal(t, hal.MotorCommand{Left: 200, Right: -250}, d.Speed())
	require.Equal(t, hal.MotorCommand{Left: 200, Right: -240}, motors.Last())
}

func TestForceStop(t *testing.T) {
	d, motors, clock := newTestDrive()
	d.SetSpeed(120, -60)
	motors.Reset()
	d.ForceStop(10 * time.Millisecond)
	require.Equal(t, []hal.MotorCommand{{Left: -120, Right: 60}, {}}, motors.Commands)
	require.Equal(t, 20*time.Millisecond, clock.Now())
	require.True(t, d.Speed().IsStopped())
}

func TestGoStraightPulsesFirst(t *testing.T) {
	d, motors, clock := newTestDrive()
	d.GoStraight(-120)
	require.Equal(t, []hal.MotorCommand{{Left: -255, Right: -255}, {Left: -120, Right: -120}}, motors.Commands)
	require.Equal(t, DefaultConfig.PulseDuration, clock.Now())
}

func TestRotations(t *testing.T) {
	testCases := []struct {
		name      string
		rotate    func(d *Drive)
		spin      hal.MotorCommand
		duration  time.Duration
		forceStop time.Duration
	}{
		{
			name:      "90 clockwise",
			rotate:    func(d *Drive) { d.Rotate90(true) },
			spin:      hal.MotorCommand{Left: 100, Right: -100},
			duration:  900 * time.Millisecond,
			forceStop: DefaultConfig.ForceStopAfterRotate90,
		},
		{
			name:      "90 counterclockwise",
			rotate:    func(d *Drive) { d.Rotate90(false) },
			spin:      hal.MotorCommand{Left: -100, Right: 100},
			duration:  800 * time.Millisecond,
			forceStop: DefaultConfig.ForceStopAfterRotate90,
		},
		{
			name:      "slightly counterclockwise",
			rotate:    func(d *Drive) { d.RotateSlightly(false) },
			spin:      hal.MotorCommand{Left: -100, Right: 100},
			duration:  170 * time.Millisecond,
			forceStop: DefaultConfig.ForceStopAfterRotateSlightly,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, motors, clock := newTestDrive()
			d.Timings = calibration.Record{900, 800, 130, 170, 0, 0, 0}
			tc.rotate(d)
			require.Len(t, motors.Commands, 4)
			require.Equal(t, tc.spin, motors.Commands[1])
			require.Equal(t, tc.spin.Negated(), motors.Commands[2])
			require.True(t, motors.Commands[3].IsStopped())
			expect := DefaultConfig.PulseDuration + tc.duration + 2*tc.forceStop
			require.Equal(t, expect, clock.Now())
		})
	}
}
