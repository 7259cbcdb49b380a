package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/hal"
	"github.com/robotalks/linebot/pkg/hal/sim"
)

func TestStopConditions(t *testing.T) {
	cases := []struct {
		name  string
		cond  StopCondition
		stop  []string
		carry []string
	}{
		{"three middle off", ThreeMiddleOff, []string{"00000", "10001"}, []string{"00100", "01000", "11111"}},
		{"three middle on", ThreeMiddleOn, []string{"01110", "11111"}, []string{"01100", "00110"}},
		{"three left on", ThreeLeftOn, []string{"11100", "11110"}, []string{"01110", "11000"}},
		{"all off", AllOff, []string{"00000"}, []string{"00001", "10000"}},
		{"any edge on", AnyEdgeOn, []string{"10000", "00001", "10001"}, []string{"01110"}},
		{"both edges off", BothEdgesOff, []string{"01110", "00000"}, []string{"10000", "00001"}},
		{"both edges on", BothEdgesOn, []string{"10001", "11111"}, []string{"10000", "00011"}},
		{"left edge off", LeftEdgeOff, []string{"01111"}, []string{"10000"}},
		{"right edge off", RightEdgeOff, []string{"11110"}, []string{"00001"}},
		{"any on", AnyOn, []string{"00100", "10000"}, []string{"00000"}},
		{"center on", CenterOn, []string{"00100", "01110"}, []string{"11011"}},
		{"first on", FirstOn, []string{"10000"}, []string{"01111"}},
		{"second on", SecondOn, []string{"01000"}, []string{"10111"}},
		{"never", Never, nil, []string{"00000", "11111"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, s := range c.stop {
				require.True(t, c.cond.ShouldStop(frames(s)[0]), s)
			}
			for _, s := range c.carry {
				require.False(t, c.cond.ShouldStop(frames(s)[0]), s)
			}
		})
	}
}

func TestStopComposition(t *testing.T) {
	either := AnyOf(CenterOn, FirstOn)
	require.True(t, either.ShouldStop(hal.FrameCenter))
	require.True(t, either.ShouldStop(hal.FrameLeftEdge))
	require.False(t, either.ShouldStop(hal.FrameRightEdge))

	both := AllOf(CenterOn, FirstOn)
	require.False(t, both.ShouldStop(hal.FrameCenter))
	require.True(t, both.ShouldStop(hal.FrameCenter|hal.FrameLeftEdge))
}

func TestStopAfterTicks(t *testing.T) {
	cond := AnyOf(AllOff, AfterTicks(2))
	require.False(t, cond.ShouldStop(hal.FrameCenter))
	require.True(t, cond.ShouldStop(hal.FrameNone))
	require.True(t, cond.ShouldStop(hal.FrameCenter))
}

func TestStopOnTimerAndFlag(t *testing.T) {
	clock := sim.NewClock()
	timer := sim.NewTimer(clock, nil)
	timer.Start(10 * time.Millisecond)
	cond := TimerExpired(timer)
	require.False(t, cond.ShouldStop(hal.FrameNone))
	clock.Advance(10 * time.Millisecond)
	require.True(t, cond.ShouldStop(hal.FrameNone))

	var pressed hal.Flag
	cond = FlagSet(&pressed)
	require.False(t, cond.ShouldStop(hal.FrameNone))
	pressed.Set()
	require.True(t, cond.ShouldStop(hal.FrameNone))
	require.True(t, pressed.IsSet())
}
