package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"nutriplan/internal/config"
	applog "nutriplan/internal/log"
	"nutriplan/models"
)

// Pruner deletes menus dated before a cutoff.
type Pruner interface {
	DeleteBefore(ctx context.Context, cutoff string, keepFavorites bool) (int64, error)
}

// Sweeper periodically removes menus older than the retention window.
// Favorite menus are never removed.
type Sweeper struct {
	pruner        Pruner
	retentionDays int
	schedule      string
	location      *time.Location
	now           func() time.Time
	cron          *cron.Cron
}

// NewSweeper returns nil when retention is disabled.
func NewSweeper(pruner Pruner, cfg config.PlanConfig) *Sweeper {
	if cfg.RetentionDays <= 0 {
		return nil
	}
	location := cfg.TimeZone
	if location == nil {
		location = time.UTC
	}
	schedule := cfg.RetentionSchedule
	if schedule == "" {
		schedule = "@daily"
	}
	return &Sweeper{
		pruner:        pruner,
		retentionDays: cfg.RetentionDays,
		schedule:      schedule,
		location:      location,
		now:           time.Now,
		cron:          cron.New(cron.WithLocation(location)),
	}
}

// Cutoff is the first date that is still retained.
func (s *Sweeper) Cutoff() string {
	return s.now().In(s.location).AddDate(0, 0, -s.retentionDays).Format(models.DateLayout)
}

// Sweep runs one retention pass.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.Cutoff()
	removed, err := s.pruner.DeleteBefore(ctx, cutoff, true)
	if err != nil {
		applog.Error(ctx, "menu retention sweep failed", "cutoff", cutoff, "error", err)
		return 0, err
	}
	applog.Info(ctx, "menu retention sweep finished", "cutoff", cutoff, "removed", removed)
	return removed, nil
}

// Start schedules Sweep and returns once the scheduler is running. The
// scheduler stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.Sweep(ctx)
	}); err != nil {
		return fmt.Errorf("schedule retention sweep %q: %w", s.schedule, err)
	}
	s.cron.Start()
	applog.Info(ctx, "menu retention scheduled", "schedule", s.schedule, "retention_days", s.retentionDays)

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
	return nil
}
