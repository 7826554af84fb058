package cronjob

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

// Sweeper removes membership entries that point at deleted agendas.
type Sweeper interface {
	SweepOrphanMemberships(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *slog.Logger
}

func NewScheduler(sweeper Sweeper, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		sweeper: sweeper,
		logger:  logger,
	}
}

// Start registers the orphan sweep on schedule (six-field spec, seconds
// first) and starts the cron runner.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runSweep); err != nil {
		return err
	}
	s.logger.Info("cron scheduler started", "job", "orphan_sweep", "schedule", schedule)
	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	start := time.Now()
	removed, err := s.sweeper.SweepOrphanMemberships(ctx)
	if err != nil {
		s.logger.Error("orphan sweep failed", "removed", removed, "error", err)
		return
	}
	s.logger.Info("orphan sweep completed", "removed", removed, "duration", time.Since(start))
}
