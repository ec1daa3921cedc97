// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package premium runs the recurring lifecycle sweeps that demote
// expired premium listings and warn about listings expiring soon.
package premium

import (
	"log/slog"
	"time"
)

// Sweeper is the store-side contract for one tick. Both sweeps are
// atomic on their own; they are not atomic with each other.
type Sweeper interface {
	ExpireDue(now time.Time) (int, error)
	WarnExpiring(now time.Time, window time.Duration) (int, error)
}

// Scheduler ticks on a fixed interval for the life of the process.
// A failing tick is logged and the next tick proceeds unaffected.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	window   time.Duration
	log      *slog.Logger

	// now is swappable for deterministic tests.
	now    func() time.Time
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewScheduler returns a stopped scheduler. interval is the tick
// period, window the premium warning window.
func NewScheduler(sweeper Sweeper, interval, window time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		window:   window,
		log:      log,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background loop. The first sweep runs immediately
// so a restart never leaves expired listings promoted for a full interval.
func (s *Scheduler) Start() {
	go func() {
		defer close(s.doneCh)

		s.Tick()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Tick()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// Tick runs one expiry sweep followed by one warning sweep. Errors are
// logged, never returned: a broken store must not kill the loop.
func (s *Scheduler) Tick() {
	now := s.now()

	expired, err := s.sweeper.ExpireDue(now)
	if err != nil {
		s.log.Error("premium expiry sweep failed", "error", err)
	} else if expired > 0 {
		s.log.Info("premium listings expired", "count", expired)
	}

	warned, err := s.sweeper.WarnExpiring(now, s.window)
	if err != nil {
		s.log.Error("premium warning sweep failed", "error", err)
	} else if warned > 0 {
		s.log.Info("premium expiry warnings sent", "count", warned)
	}
}
