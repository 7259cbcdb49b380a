package hal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSensorFrameBitOrder(t *testing.T) {
	for i := 0; i < NumLineSensors; i++ {
		f := SensorBit(i)
		require.True(t, f.OnLine(i))
		for j := 0; j < NumLineSensors; j++ {
			if j != i {
				require.False(t, f.OnLine(j))
			}
		}
	}
	require.Equal(t, FrameLeftEdge, SensorBit(0))
	require.Equal(t, FrameRightEdge, SensorBit(4))
	require.False(t, FrameAll.OnLine(-1))
	require.False(t, FrameAll.OnLine(5))
}

func TestSensorFrameString(t *testing.T) {
	testCases := []struct {
		name  string
		frame SensorFrame
		str   string
	}{
		{name: "none", frame: FrameNone, str: "00000"},
		{name: "left edge", frame: FrameLeftEdge, str: "10000"},
		{name: "center", frame: FrameCenter, str: "00100"},
		{name: "drift right", frame: 0b00110, str: "00110"},
		{name: "all", frame: FrameAll, str: "11111"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.str, tc.frame.String())
			f, err := ParseSensorFrame(tc.str)
			require.NoError(t, err)
			require.Equal(t, tc.frame, f)
		})
	}
	_, err := ParseSensorFrame("0010")
	require.Error(t, err)
	_, err = ParseSensorFrame("00x00")
	require.Error(t, err)
}

func TestSensorFrameContiguous(t *testing.T) {
	testCases := []struct {
		frame  SensorFrame
		expect bool
	}{
		{FrameNone, true},
		{FrameCenter, true},
		{0b01100, true},
		{FrameAll, true},
		{FrameEdges, false},
		{0b10100, false},
		{0b01010, false},
	}
	for _, tc := range testCases {
		t.Run(tc.frame.String(), func(t *testing.T) {
			require.Equal(t, tc.expect, tc.frame.Contiguous())
		})
	}
}

func TestMotorCommandClamp(t *testing.T) {
	require.Equal(t, MotorCommand{Left: 255, Right: -255}, Speeds(300, -1000))
	require.Equal(t, MotorCommand{Left: -120, Right: 80}, Speeds(-120, 80))
	require.Equal(t, MotorCommand{Left: -255, Right: 255}, MotorCommand{Left: 255, Right: -255}.Negated())
	require.Equal(t, MotorCommand{Left: 255, Right: 0}, MotorCommand{Left: 400, Right: 0}.Clamped())
	require.True(t, MotorCommand{}.IsStopped())
}

func TestFlag(t *testing.T) {
	var f Flag
	require.False(t, f.IsSet())
	require.False(t, f.Consume())
	f.Set()
	require.True(t, f.IsSet())
	require.True(t, f.Consume())
	require.False(t, f.IsSet())
	f.Set()
	f.Clear()
	require.False(t, f.IsSet())
}

func TestTWIStatusString(t *testing.T) {
	require.Equal(t, "addr-w-nack", TWIAddrWriteNack.String())
	require.Equal(t, "status(0xf8)", TWIStatus(0xf8).String())
}
