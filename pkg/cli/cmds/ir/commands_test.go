package ir

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/linebot/pkg/cli/sh"
	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/env"
	"github.com/robotalks/linebot/pkg/infrared"
)

func newShell(t *testing.T) *sh.Shell {
	s, err := sh.Attach(env.NewSimEnv(config.NewConfig()))
	require.NoError(t, err)
	return s
}

func TestRemoteThenRecv(t *testing.T) {
	s := newShell(t)
	_, err := Recv(s, nil)
	require.Equal(t, ErrNothingScheduled, err)

	res, err := Remote(s, []string{"5", "1", "10"})
	require.NoError(t, err)
	sched := res.(Scheduled)
	require.Equal(t, 10*time.Millisecond, sched.Start)
	require.True(t, sched.End > sched.Start)

	res, err = Recv(s, nil)
	require.NoError(t, err)
	rec := res.(infrared.Reception)
	require.Equal(t, infrared.SourceInfrared, rec.Source)
	require.Equal(t, uint8(5), rec.Command())
	require.Equal(t, uint8(1), rec.Address())
}

func TestSend(t *testing.T) {
	s := newShell(t)
	res, err := Send(s, []string{"0x7f", "31"})
	require.NoError(t, err)
	require.Nil(t, res)

	for _, args := range [][]string{{}, {"128"}, {"1", "32"}} {
		_, err := Send(s, args)
		require.Error(t, err, "%v", args)
	}
}
