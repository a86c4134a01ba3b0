/*
scheduler.go - Background cadence for the legacy maintenance steps

PURPOSE:
  Runs the legacy daily accrual and annual rollover on a fixed interval,
  independent of the request path. The legacy steps themselves do not
  guard against double execution, so the at-most-once-per-day guarantee
  lives here: the loop remembers the last calendar day it processed and
  skips further ticks within the same day.

USAGE:
  scheduler := NewScheduler(legacySched, interval, logger)
  scheduler.Start()
  // ... on shutdown
  scheduler.Stop()
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/staffhub/vacation-engine/legacy"
	"github.com/staffhub/vacation-engine/vacation"
)

// Scheduler drives the legacy steps on a fixed check interval.
type Scheduler struct {
	Legacy        *legacy.Scheduler
	CheckInterval time.Duration
	Logger        *slog.Logger

	mu     sync.Mutex
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup

	// lastRun has its own lock: Stop holds mu while waiting for an
	// in-flight pass, which must still be able to record its run day.
	runMu   sync.Mutex
	lastRun vacation.Date
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(legacySched *legacy.Scheduler, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		Legacy:        legacySched,
		CheckInterval: interval,
		Logger:        logger,
		stop:          make(chan struct{}),
	}
}

// Start begins the background loop. The first pass runs immediately.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)
	go s.run()

	s.Logger.Info("legacy scheduler started",
		slog.Duration("check_interval", s.CheckInterval))
}

// Stop halts the loop and waits for an in-flight pass to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
		close(s.stop)
		s.wg.Wait()
		s.Logger.Info("legacy scheduler stopped")
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.checkAndProcess()

	for {
		select {
		case <-s.ticker.C:
			s.checkAndProcess()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) checkAndProcess() {
	today := vacation.Today()

	s.runMu.Lock()
	alreadyRan := !s.lastRun.IsZero() && s.lastRun.Equal(today)
	if !alreadyRan {
		s.lastRun = today
	}
	s.runMu.Unlock()

	if alreadyRan {
		return
	}

	ctx := context.Background()
	if err := s.Legacy.RunDailyAccrual(ctx, today); err != nil {
		s.Logger.Error("legacy daily accrual failed", slog.Any("error", err))
	}
	if err := s.Legacy.RunAnnualRollover(ctx, today); err != nil {
		s.Logger.Error("legacy annual rollover failed", slog.Any("error", err))
	}
}
