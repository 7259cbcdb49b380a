package nav

import (
	"github.com/robotalks/linebot/pkg/hal"
)

// StopCondition decides, once per tick, whether a tracking run ends. It
// receives the frame sampled on that tick.
type StopCondition interface {
	ShouldStop(frame hal.SensorFrame) bool
}

// StopFunc adapts a func to StopCondition.
type StopFunc func(frame hal.SensorFrame) bool

// ShouldStop implements StopCondition.
func (f StopFunc) ShouldStop(frame hal.SensorFrame) bool {
	return f(frame)
}

// Never keeps tracking forever.
var Never StopCondition = StopFunc(func(hal.SensorFrame) bool { return false })

// MaskOff stops once no sensor in mask sees the line.
func MaskOff(mask hal.SensorFrame) StopCondition {
	return StopFunc(func(f hal.SensorFrame) bool { return f.NoneOn(mask) })
}

// MaskOn stops once every sensor in mask sees the line.
func MaskOn(mask hal.SensorFrame) StopCondition {
	return StopFunc(func(f hal.SensorFrame) bool { return f.AllOn(mask) })
}

// Stop conditions on sensor patterns.
var (
	ThreeMiddleOff = MaskOff(hal.FrameMiddle)
	ThreeMiddleOn  = MaskOn(hal.FrameMiddle)
	ThreeLeftOn    = MaskOn(hal.FrameLeftThree)
	AllOff         = MaskOff(hal.FrameAll)
	BothEdgesOff   = MaskOff(hal.FrameEdges)
	BothEdgesOn    = MaskOn(hal.FrameEdges)
	LeftEdgeOff    = MaskOff(hal.FrameLeftEdge)
	RightEdgeOff   = MaskOff(hal.FrameRightEdge)
	CenterOn       = MaskOn(hal.FrameCenter)
	FirstOn        = SensorOn(0)
	SecondOn       = SensorOn(1)

	AnyEdgeOn StopCondition = StopFunc(func(f hal.SensorFrame) bool { return f.AnyOn(hal.FrameEdges) })
	AnyOn     StopCondition = StopFunc(func(f hal.SensorFrame) bool { return f.AnyOn(hal.FrameAll) })
)

// SensorOn stops once sensor i sees the line.
func SensorOn(i int) StopCondition {
	return StopFunc(func(f hal.SensorFrame) bool { return f.OnLine(i) })
}

// TimerExpired stops once the countdown expires.
func TimerExpired(t hal.Timer) StopCondition {
	return StopFunc(func(hal.SensorFrame) bool { return t.Expired() })
}

// FlagSet stops once the flag is raised, e.g. by the button interrupt.
// The flag is left for its consumer to clear.
func FlagSet(f *hal.Flag) StopCondition {
	return StopFunc(func(hal.SensorFrame) bool { return f.IsSet() })
}

// AfterTicks stops on the (n+1)th evaluation, i.e. after n full ticks.
func AfterTicks(n int) StopCondition {
	count := 0
	return StopFunc(func(hal.SensorFrame) bool {
		count++
		return count > n
	})
}

// AnyOf stops when any condition does. All conditions are evaluated.
func AnyOf(conds ...StopCondition) StopCondition {
	return StopFunc(func(f hal.SensorFrame) bool {
		stop := false
		for _, c := range conds {
			if c.ShouldStop(f) {
				stop = true
			}
		}
		return stop
	})
}

// AllOf stops when every condition does.
func AllOf(conds ...StopCondition) StopCondition {
	return StopFunc(func(f hal.SensorFrame) bool {
		for _, c := range conds {
			if !c.ShouldStop(f) {
				return false
			}
		}
		return true
	})
}
