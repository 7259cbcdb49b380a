package calibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/eeprom"
	"github.com/robotalks/linebot/pkg/hal/sim"
)

func TestFieldOffsets(t *testing.T) {
	expect := map[Field]int{
		Rotate90CW:            0,
		Rotate90CCW:           2,
		RotateSlightCW:        4,
		RotateSlightCCW:       6,
		Section1StartOffset:   8,
		SensorToCenterOffset:  10,
		BetweenPointsDuration: 12,
	}
	for f, off := range expect {
		require.Equal(t, off, f.Offset(), f.String())
		parsed, err := ParseField(f.String())
		require.NoError(t, err)
		require.Equal(t, f, parsed)
	}
	_, err := ParseField("nope")
	require.Error(t, err)
}

func TestRecordLayout(t *testing.T) {
	r := Record{0x0102, 0x0304, 0x0506, 0x0708, 0x090a, 0x0b0c, 0x0d0e}
	b, err := r.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, []byte{2, 1, 4, 3, 6, 5, 8, 7, 0xa, 9, 0xc, 0xb, 0xe, 0xd}, b)

	var back Record
	require.Equal(t, ErrShortRecord, back.UnmarshalBinary(b[:13]))
}

func TestRecordDurations(t *testing.T) {
	var r Record
	r.Set(SensorToCenterOffset, 1234567*time.Microsecond)
	require.Equal(t, uint16(1234), r[SensorToCenterOffset])
	require.Equal(t, 1234*time.Millisecond, r.Duration(SensorToCenterOffset))
	r.Set(Rotate90CW, time.Hour)
	require.Equal(t, uint16(0xffff), r[Rotate90CW])
}

func TestSaveLoadThroughEEPROM(t *testing.T) {
	clock := sim.NewClock()
	dev := sim.NewEEPROM(clock)
	drv := eeprom.New(dev)

	blank, err := Load(drv)
	require.NoError(t, err)
	require.True(t, blank.Erased())

	r := Record{900, 910, 140, 160, 1650, 720, 0xfffe}
	require.NoError(t, Save(drv, r))
	require.Equal(t, []sim.PageWrite{{Addr: 0, Len: Size}}, dev.Writes)

	back, err := Load(drv)
	require.NoError(t, err)
	require.Equal(t, r, back)
	require.False(t, back.Erased())
}
