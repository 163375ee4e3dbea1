// Package scheduler drives the periodic external refresh.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Refresher is the operation run on every tick
type Refresher interface {
	RefreshExternal(ctx context.Context) error
}

// Scheduler wraps robfig/cron and runs the refresh loop off the request path.
type Scheduler struct {
	cron       *cron.Cron
	refresher  Refresher
	spec       string // cron spec, e.g. "@every 1h"
	runOnStart bool
	log        *logging.Logger

	startup sync.WaitGroup // run-on-start refresh, outside cron's tracking
}

// New creates a Scheduler firing every interval
func New(refresher Refresher, interval time.Duration, runOnStart bool, log *logging.Logger) (*Scheduler, error) {
	if refresher == nil {
		return nil, fmt.Errorf("scheduler: refresher is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %s", interval)
	}
	if log == nil {
		log = logging.NewNop()
	}
	log = log.Named("scheduler")

	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		refresher:  refresher,
		spec:       fmt.Sprintf("@every %s", interval),
		runOnStart: runOnStart,
		log:        log,
	}, nil
}

// Start registers the refresh job and starts the cron. When runOnStart is
// set one refresh also runs immediately so the snapshot is populated
// without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("scheduler: add %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info("cron started", "spec", s.spec)

	if s.runOnStart {
		s.startup.Add(1)
		go func() {
			defer s.startup.Done()
			s.run(ctx)
		}()
	}
	return nil
}

// Shutdown stops the cron and waits for running refreshes, including the
// startup one, or for ctx
func (s *Scheduler) Shutdown(ctx context.Context) error {
	cronDone := s.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.startup.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("cron stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler: stop: %w", ctx.Err())
	}
}

func (s *Scheduler) run(ctx context.Context) {
	started := time.Now()
	if err := s.refresher.RefreshExternal(ctx); err != nil {
		s.log.Warn("scheduled refresh failed", "err", err, "elapsed", time.Since(started))
		return
	}
	s.log.Info("scheduled refresh completed", "elapsed", time.Since(started))
}

// cronLogger routes cron's own logging through the service logger
type cronLogger struct {
	log *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "err", err)...)
}
