package infrared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFrameRaw(t *testing.T) {
	f := Frame{Command: 5, Address: 1}
	require.Equal(t, uint16(0x085), f.Raw())
	require.Equal(t, f, FrameFromRaw(f.Raw()))
	require.Equal(t, Frame{Command: 0x7f, Address: 0x1f}, FrameFromRaw(0xfff))
	require.Equal(t, uint16(0x7f), Frame{Command: 0xff}.Raw())
}

func TestMarshalBitOrder(t *testing.T) {
	pairs := Frame{Command: 5, Address: 1}.MarshalFrame()
	require.Len(t, pairs, FrameBits+1)
	require.Equal(t, TimePair{2400 * time.Microsecond, 600 * time.Microsecond}, pairs[0])
	bits := []int{1, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0}
	for i, b := range bits {
		want := SIRC.Zero
		if b == 1 {
			want = SIRC.One
		}
		require.Equal(t, want, pairs[i+1].On(), "bit %d", i)
		require.Equal(t, SIRC.Gap, pairs[i+1].Off(), "bit %d", i)
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	frames := []Frame{
		{Command: 5, Address: 1},
		{},
		{Command: 127, Address: 31},
		{Command: 42, Address: 17},
	}
	for _, f := range frames {
		t.Run(f.String(), func(t *testing.T) {
			d := NewDecoder(DefaultThresholds)
			require.True(t, d.Feed(DefaultSamplePeriod, f.MarshalFrame()...))
			require.True(t, d.HeaderSeen())
			require.Equal(t, FrameBits, d.Bits())
			require.Equal(t, f.Raw(), d.Value())
		})
	}
}

func TestDecoderIgnoresBitsBeforeHeader(t *testing.T) {
	d := NewDecoder(DefaultThresholds)
	noise := []TimePair{{SIRC.One, SIRC.Gap}, {SIRC.Zero, SIRC.Gap}}
	require.False(t, d.Feed(DefaultSamplePeriod, noise...))
	require.False(t, d.HeaderSeen())
	require.Zero(t, d.Bits())

	f := Frame{Command: 9, Address: 2}
	require.True(t, d.Feed(DefaultSamplePeriod, f.MarshalFrame()...))
	require.Equal(t, f.Raw(), d.Value())
	require.Equal(t, 2+FrameBits+1, d.Bursts)
}

func TestDecoderResyncsOnHeader(t *testing.T) {
	d := NewDecoder(DefaultThresholds)
	partial := Frame{Command: 127, Address: 31}.MarshalFrame()[:6]
	require.False(t, d.Feed(DefaultSamplePeriod, partial...))
	require.Equal(t, 5, d.Bits())

	f := Frame{Command: 3, Address: 4}
	require.True(t, d.Feed(DefaultSamplePeriod, f.MarshalFrame()...))
	require.Equal(t, f.Raw(), d.Value())

	d.Reset()
	require.False(t, d.Done())
	require.Zero(t, d.Bursts)
	require.Equal(t, DefaultThresholds, d.Thresholds)
}

func TestThresholdsFor(t *testing.T) {
	require.Equal(t, DefaultThresholds, ThresholdsFor(DefaultSamplePeriod))
	require.Equal(t, Thresholds{HeaderTicks: 400, HighTicks: 225}, ThresholdsFor(4*time.Microsecond))
	require.Equal(t, DefaultThresholds, ThresholdsFor(0))

	d := NewDecoder(ThresholdsFor(10 * time.Microsecond))
	f := Frame{Command: 77, Address: 9}
	require.True(t, d.Feed(10*time.Microsecond, f.MarshalFrame()...))
	require.Equal(t, f.Raw(), d.Value())
}
