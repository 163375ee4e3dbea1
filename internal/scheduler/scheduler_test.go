package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshExternal(context.Context) error {
	r.calls.Add(1)
	return r.err
}

// blockingRefresher holds every refresh until release is closed
type blockingRefresher struct {
	started chan struct{}
	release chan struct{}
	done    atomic.Bool
}

func (r *blockingRefresher) RefreshExternal(context.Context) error {
	close(r.started)
	<-r.release
	r.done.Store(true)
	return nil
}

func TestShutdown_WaitsForStartupRefresh(t *testing.T) {
	r := &blockingRefresher{started: make(chan struct{}), release: make(chan struct{})}
	s, err := New(r, time.Hour, true, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	<-r.started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Shutdown(ctx), context.DeadlineExceeded)

	close(r.release)
	require.NoError(t, s.Shutdown(context.Background()))
	assert.True(t, r.done.Load())
}

func TestNew_Validates(t *testing.T) {
	_, err := New(nil, time.Hour, true, nil)
	require.Error(t, err)

	_, err = New(&countingRefresher{}, 0, true, nil)
	require.Error(t, err)
}

func TestStart_RunsImmediately(t *testing.T) {
	r := &countingRefresher{}
	s, err := New(r, time.Hour, true, logging.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestStart_NoImmediateRun(t *testing.T) {
	r := &countingRefresher{}
	s, err := New(r, time.Hour, false, logging.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Shutdown(context.Background()))

	assert.Equal(t, int32(0), r.calls.Load())
}

func TestStart_TicksAndSurvivesFailures(t *testing.T) {
	r := &countingRefresher{err: errors.New("feed down")}
	s, err := New(r, time.Second, false, logging.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	require.Eventually(t, func() bool { return r.calls.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)
}
