package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"github.com/civicgrid/waterworks/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sweepStub struct {
	billingdomain.Service

	calls atomic.Int64
	err   error
}

func (s *sweepStub) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	s.calls.Add(1)
	if s.err != nil {
		return 0, s.err
	}
	return 3, nil
}

func newTestScheduler(t *testing.T, svc billingdomain.Service) *Scheduler {
	t.Helper()

	sched, err := New(Params{
		Log:        zap.NewNop(),
		Clock:      clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		BillingSvc: svc,
		Config:     Config{Enabled: true, RunInterval: time.Millisecond, RunTimeout: time.Second},
	})
	require.NoError(t, err)
	return sched
}

func TestScheduler_RunOnce(t *testing.T) {
	stub := &sweepStub{}
	sched := newTestScheduler(t, stub)

	require.NoError(t, sched.RunOnce(context.Background()))
	assert.Equal(t, int64(1), stub.calls.Load())
}

func TestScheduler_RunOnce_PropagatesError(t *testing.T) {
	stub := &sweepStub{err: errors.New("db down")}
	sched := newTestScheduler(t, stub)

	assert.Error(t, sched.RunOnce(context.Background()))
}

func TestScheduler_RunForever_RetriesAfterFailure(t *testing.T) {
	stub := &sweepStub{err: errors.New("db down")}
	sched := newTestScheduler(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.RunForever(ctx)
		close(done)
	}()

	// Failed runs keep ticking rather than stopping the loop.
	assert.Eventually(t, func() bool {
		return stub.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}

func TestScheduler_New_RequiresDependencies(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop()})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.Equal(t, time.Minute, cfg.RunTimeout)
}
