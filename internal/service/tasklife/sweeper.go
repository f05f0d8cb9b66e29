package tasklife

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper runs SweepDue on a cron schedule so that deadline transitions are
// persisted even when nobody is looking at the task list.
type Sweeper struct {
	svc      Service
	cron     *cron.Cron
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewSweeper validates the cron expression and prepares the job without
// starting it. The standard 5-field cron format is expected.
func NewSweeper(svc Service, schedule string, log *slog.Logger) (*Sweeper, error) {
	if svc == nil {
		panic("lifecycle service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Sweeper{
		svc:      svc,
		logger:   log.With(slog.String("component", "deadline_sweeper")),
		timeFunc: time.Now,
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	s.cron = c
	return s, nil
}

// Start runs one sweep immediately to catch up on transitions missed while
// the process was down, then hands off to the cron scheduler.
func (s *Sweeper) Start() {
	s.run()
	s.cron.Start()
	s.logger.Info("deadline sweeper started")
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("deadline sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	updated, err := s.svc.SweepDue(ctx, s.timeFunc())
	if err != nil {
		s.logger.Error("deadline sweep failed", slog.String("error", err.Error()))
		return
	}
	if updated > 0 {
		s.logger.Info("deadline sweep applied transitions", slog.Int("updated", updated))
	}
}
