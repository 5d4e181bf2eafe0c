// Package scheduler re-derives the dashboard when the calendar day rolls
// over and on a user-configured interval.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/circle-squared/internal/config"
)

// RefreshFunc recomputes and publishes the view state.
type RefreshFunc func(ctx context.Context) error

// Scheduler runs a RefreshFunc at local midnight and every interval.
// Runs never overlap: a tick that fires while a refresh is still running
// is skipped.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	refresh  RefreshFunc
	interval time.Duration
	every    cron.EntryID
}

// New creates a scheduler evaluating its midnight job in loc.
func New(loc *time.Location, refresh RefreshFunc) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:     ctx,
		cancel:  cancel,
		refresh: refresh,
	}
}

// Start registers the midnight job and, when interval is positive, the
// periodic job, then starts the cron loop.
func (s *Scheduler) Start(interval time.Duration) error {
	if _, err := s.cron.AddFunc(config.CronMidnight, s.job(config.CronMidnight)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSchedule, err)
	}
	if err := s.SetInterval(interval); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info(config.MsgSchedulerStart,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyInterval, interval.String())
	return nil
}

// SetInterval replaces the periodic job. Zero or a negative interval
// disables it; the midnight job is kept.
func (s *Scheduler) SetInterval(interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.every != 0 {
		s.cron.Remove(s.every)
		s.every = 0
	}
	s.interval = max(interval, config.DisabledInterval)
	if s.interval == config.DisabledInterval {
		return nil
	}

	spec := fmt.Sprintf(config.CronEveryFormat, s.interval)
	id, err := s.cron.AddFunc(spec, s.job(spec))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSchedule, err)
	}
	s.every = id
	return nil
}

// Interval returns the current periodic interval, zero when disabled.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Trigger runs the refresh immediately on the caller's goroutine.
func (s *Scheduler) Trigger() error {
	return s.refresh(s.ctx)
}

// Stop halts the cron loop, waits for a running refresh to finish and
// cancels the context handed to refreshes.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
	slog.Info(config.MsgSchedulerStop, config.LogKeyComponent, config.CompScheduler)
}

func (s *Scheduler) job(spec string) func() {
	return func() {
		slog.Debug(config.MsgScheduledRun,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyValue, spec)
		if err := s.refresh(s.ctx); err != nil {
			slog.Error(config.ErrSchedule,
				config.LogKeyComponent, config.CompScheduler,
				config.LogKeyError, err)
		}
	}
}
