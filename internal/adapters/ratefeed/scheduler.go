package ratefeed

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Scheduler periodically runs the rate sync job. Singleton mode keeps a slow
// feed from stacking overlapping runs.
type Scheduler struct {
	syncSvc  portssvc.RateSyncSvc
	interval time.Duration
	logger   *slog.Logger

	sched gocron.Scheduler
}

// NewScheduler creates a scheduler that syncs every interval.
func NewScheduler(syncSvc portssvc.RateSyncSvc, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{syncSvc: syncSvc, interval: interval, logger: logger}
}

// Start begins the periodic sync. It stops when ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if syncErr := s.syncSvc.SyncAllTenants(jobCtx); syncErr != nil {
			s.logger.Error("rate feed sync failed",
				slog.String("exec_id", execID),
				slog.String("error", syncErr.Error()))
			return
		}
		s.logger.Info("rate feed sync completed", slog.String("exec_id", execID))
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			s.logger.Error("scheduler shutdown error", slog.String("error", sdErr.Error()))
		}
	}()
	return nil
}

// Shutdown stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
