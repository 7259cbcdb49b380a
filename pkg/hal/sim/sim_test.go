package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/hal"
)

func TestClockSlicesAndTimer(t *testing.T) {
	clock := NewClock()
	var seen []time.Duration
	clock.OnAdvance(func(now time.Duration) { seen = append(seen, now) })
	clock.Delay(2500 * time.Microsecond)
	require.Equal(t, []time.Duration{
		time.Millisecond, 2 * time.Millisecond, 2500 * time.Microsecond,
	}, seen)

	timer := NewTimer(clock, nil)
	timer.Start(3 * time.Millisecond)
	clock.Advance(2 * time.Millisecond)
	require.False(t, timer.Expired())
	clock.Advance(time.Millisecond)
	require.True(t, timer.Expired())
	require.True(t, timer.Flag().IsSet())

	timer.Start(time.Millisecond)
	require.False(t, timer.Expired())
	timer.Start(0)
	require.True(t, timer.Expired())
}

func TestScriptedLineHoldsLastFrame(t *testing.T) {
	line := NewScriptedLine(hal.FrameCenter).Repeat(hal.FrameNone, 2)
	require.Equal(t, hal.FrameCenter, line.ReadLine())
	require.Equal(t, hal.FrameNone, line.ReadLine())
	require.Equal(t, hal.FrameNone, line.ReadLine())
	require.Equal(t, hal.FrameNone, line.ReadLine())
	require.Equal(t, 4, line.Reads)
	require.Equal(t, hal.FrameNone, (&ScriptedLine{}).ReadLine())
}

func TestEEPROMPageWrap(t *testing.T) {
	clock := NewClock()
	dev := NewEEPROM(clock)
	require.Equal(t, hal.TWIStart, dev.Start())
	require.Equal(t, hal.TWIAddrWriteAck, dev.Write(0xa0))
	require.Equal(t, hal.TWIDataWriteAck, dev.Write(0x00))
	require.Equal(t, hal.TWIDataWriteAck, dev.Write(126))
	for _, b := range []byte{1, 2, 3, 4} {
		require.Equal(t, hal.TWIDataWriteAck, dev.Write(b))
	}
	dev.Stop()
	require.Equal(t, []byte{1, 2}, dev.Mem[126:128])
	require.Equal(t, []byte{3, 4}, dev.Mem[0:2])
	require.Equal(t, byte(0xff), dev.Mem[128])
	require.Equal(t, []PageWrite{{Addr: 126, Len: 4}}, dev.Writes)

	dev.Start()
	require.Equal(t, hal.TWIAddrWriteNack, dev.Write(0xa0))
	dev.Stop()
	require.Equal(t, 1, dev.BusyNacks)

	clock.Advance(DefaultEEPROMWriteCycle)
	dev.Start()
	require.Equal(t, hal.TWIAddrWriteNack, dev.Write(0xa2))
	dev.Stop()
	require.Equal(t, 1, dev.BusyNacks)
}

func TestEEPROMSequentialRead(t *testing.T) {
	dev := NewEEPROM(NewClock())
	dev.Bank = 2
	copy(dev.Mem[0x7ffe:], []byte{7, 8})
	dev.Mem[0] = 9

	dev.Start()
	require.Equal(t, hal.TWIAddrWriteAck, dev.Write(0xa4))
	dev.Write(0x7f)
	dev.Write(0xfe)
	require.Equal(t, hal.TWIRepeatedStart, dev.Start())
	require.Equal(t, hal.TWIAddrReadAck, dev.Write(0xa5))
	var got []byte
	for i := 0; i < 3; i++ {
		b, st := dev.Read(i < 2)
		got = append(got, b)
		if i < 2 {
			require.Equal(t, hal.TWIDataReadAck, st)
		} else {
			require.Equal(t, hal.TWIDataReadNack, st)
		}
	}
	dev.Stop()
	require.Equal(t, []byte{7, 8, 9}, got)
	require.Empty(t, dev.Writes)
}

func TestInfraredLink(t *testing.T) {
	tx, rx := NewClock(), NewClock()
	link := NewInfraredLink(tx, rx)
	link.Pulse(time.Millisecond, 500*time.Microsecond)
	require.False(t, link.CarrierDetected())
	rx.Advance(time.Millisecond)
	require.True(t, link.CarrierDetected())
	rx.Advance(500 * time.Microsecond)
	require.False(t, link.CarrierDetected())

	tx.Advance(2 * time.Millisecond)
	link.SetCarrier(true)
	link.SetCarrier(true)
	tx.Advance(time.Millisecond)
	link.SetCarrier(false)
	require.Equal(t, []time.Duration{500 * time.Microsecond, time.Millisecond}, link.Bursts())
}

func TestButtonInterrupt(t *testing.T) {
	clock := NewClock()
	var flag hal.Flag
	btn := NewButton(clock, &flag).
		PressAt(2*time.Millisecond, 3*time.Millisecond).
		PressAt(10*time.Millisecond, 3*time.Millisecond)

	clock.Advance(4 * time.Millisecond)
	require.True(t, btn.Pressed())
	require.False(t, flag.IsSet())

	btn.Enable()
	clock.Advance(4 * time.Millisecond)
	require.False(t, btn.Pressed())
	require.False(t, flag.IsSet())
	clock.Advance(3 * time.Millisecond)
	require.True(t, flag.IsSet())

	btn.Disable()
	require.False(t, flag.IsSet())
}

func TestWorldSensorsAndMotion(t *testing.T) {
	clock := NewClock()
	w := NewWorld(clock, StraightTrack{Width: 15}, DefaultBody, Pose2D{Pos2D: Pos2D{Y: 12}})
	require.Equal(t, hal.SensorBit(3), w.ReadLine())

	p := w.SensorPos(0)
	require.InDelta(t, 60.0, p.X, 1e-9)
	require.InDelta(t, 36.0, p.Y, 1e-9)

	w.Pose = Pose2D{Orientation: AngleFromDegrees(90)}
	p = w.SensorPos(0)
	require.InDelta(t, -24.0, p.X, 1e-9)
	require.InDelta(t, 60.0, p.Y, 1e-9)

	w.Pose = Pose2D{}
	w.SetMotorSpeed(hal.Speeds(60, -60))
	clock.Advance(time.Second)
	require.InDelta(t, -1.2, float64(w.Pose.Orientation), 1e-9)
	require.InDelta(t, 0.0, w.Pose.Dist(), 1e-9)

	w.SetMotorSpeed(hal.Speeds(100, 100))
	w.Pose = Pose2D{Orientation: Angle(math.Pi / 2)}
	clock.Advance(500 * time.Millisecond)
	require.InDelta(t, 60.0, w.Pose.Y, 1e-6)
	require.InDelta(t, 0.0, w.Pose.X, 1e-6)
	require.Equal(t, hal.Speeds(100, 100), w.Command())
}
