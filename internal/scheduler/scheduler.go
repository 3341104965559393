// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper deletes appointments whose date has passed.
type Sweeper interface {
	Execute(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
	logger  zerolog.Logger
}

// New schedules the sweep with a standard 5-field cron spec evaluated in
// loc.
func New(spec string, loc *time.Location, sweeper Sweeper, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		sweeper: sweeper,
		timeout: time.Minute,
		logger:  logger.With().Str("component", "scheduler").Logger(),
	}

	if _, err := s.cron.AddFunc(spec, s.RunSweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs one sweep right away and then follows the schedule.
func (s *Scheduler) Start() {
	s.RunSweep()
	s.cron.Start()
	s.logger.Info().Msg("sweep scheduler started")
}

// Stop waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("sweep still running at shutdown")
	}
}

func (s *Scheduler) RunSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.sweeper.Execute(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("sweep failed")
		return
	}
	s.logger.Debug().Int("barber_days", n).Msg("sweep done")
}
