package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter() (*atomic.Int32, RefreshFunc) {
	var n atomic.Int32
	return &n, func(ctx context.Context) error {
		n.Add(1)
		return nil
	}
}

func TestStart_RegistersJobs(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     int
	}{
		{"Midnight only", 0, 1},
		{"Negative disables", -time.Minute, 1},
		{"Midnight and interval", time.Hour, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fn := counter()
			s := New(time.UTC, fn)
			require.NoError(t, s.Start(tt.interval))
			defer s.Stop()

			assert.Equal(t, tt.want, s.Entries())
		})
	}
}

func TestSetInterval_Replaces(t *testing.T) {
	_, fn := counter()
	s := New(time.Local, fn)
	require.NoError(t, s.Start(time.Hour))
	defer s.Stop()

	require.NoError(t, s.SetInterval(15*time.Minute))
	assert.Equal(t, 2, s.Entries())
	assert.Equal(t, 15*time.Minute, s.Interval())

	require.NoError(t, s.SetInterval(0))
	assert.Equal(t, 1, s.Entries())
	assert.Zero(t, s.Interval())
}

func TestIntervalJob_Fires(t *testing.T) {
	n, fn := counter()
	s := New(time.UTC, fn)
	require.NoError(t, s.Start(time.Second))
	defer s.Stop()

	assert.Eventually(t, func() bool { return n.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestTrigger(t *testing.T) {
	n, fn := counter()
	s := New(time.UTC, fn)
	defer s.Stop()

	require.NoError(t, s.Trigger())
	assert.Equal(t, int32(1), n.Load())

	failing := New(time.UTC, func(ctx context.Context) error { return errors.New("boom") })
	defer failing.Stop()
	assert.EqualError(t, failing.Trigger(), "boom")
}

func TestStop_CancelsContext(t *testing.T) {
	var seen context.Context
	s := New(time.UTC, func(ctx context.Context) error {
		seen = ctx
		return nil
	})
	require.NoError(t, s.Start(0))
	require.NoError(t, s.Trigger())

	s.Stop()
	require.NotNil(t, seen)
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}
