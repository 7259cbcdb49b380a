package eeprom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/cli/sh"
	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/env"
)

func newShell(t *testing.T) *sh.Shell {
	s, err := sh.Attach(env.NewSimEnv(config.NewConfig()))
	require.NoError(t, err)
	return s
}

func TestWriteRead(t *testing.T) {
	s := newShell(t)
	res, err := Write(s, []string{"0x3e", "dead", "beef"})
	require.NoError(t, err)
	require.Nil(t, res)

	res, err = Read(s, []string{"0x3e", "4"})
	require.NoError(t, err)
	dump := res.(Dump)
	require.Equal(t, uint16(0x3e), dump.Addr)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, dump.Data)
	require.Equal(t, "003e: de ad be ef", dump.String())

	res, err = Read(s, []string{"0x3e"})
	require.NoError(t, err)
	require.Len(t, res.(Dump).Data, DefaultReadLen)
}

func TestBadArgs(t *testing.T) {
	s := newShell(t)
	cases := [][]string{
		{},
		{"nope"},
		{"0", "0"},
		{"0", "x"},
	}
	for _, args := range cases {
		_, err := Read(s, args)
		require.Error(t, err, "%v", args)
	}
	_, err := Write(s, []string{"0"})
	require.Error(t, err)
	_, err = Write(s, []string{"0", "abc"})
	require.Error(t, err)
}

func TestDumpLines(t *testing.T) {
	d := Dump{Addr: 0x10, Data: make([]byte, 18)}
	require.Equal(t, "0010: 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n0020: 00 00", d.String())
}
