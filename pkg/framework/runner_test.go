package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())

	e1 := errors.New("first")
	require.Equal(t, e1, errs.Add(e1).Aggregate())

	errs.Add(errors.New("second"))
	err := errs.Aggregate()
	require.Equal(t, "Multiple errors:\nfirst\nsecond", err.Error())
}

func TestRunnerCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx)
	r.Go(
		NamedRun("fails", RunnableFunc(func(context.Context) error { return boom })),
		RunnableFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		RunnableFunc(func(context.Context) error { return nil }),
	)
	time.AfterFunc(10*time.Millisecond, cancel)
	require.Equal(t, boom, r.Wait())
}

func TestRunWithContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	canceled := false
	time.AfterFunc(10*time.Millisecond, cancel)
	err := RunWithContextCancel(ctx, func() {
		canceled = true
		close(release)
	}, func() error {
		<-release
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.True(t, canceled)

	require.Equal(t, errors.New("done"), RunWithContextCancel(context.Background(), nil, func() error {
		return errors.New("done")
	}))
}
