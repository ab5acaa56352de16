package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"clinicamia-assets/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// depreciationCronSpec fires on day 1 of every month at 02:00 local time
const depreciationCronSpec = "0 2 1 * *"

// PeriodRunner executes one depreciation period run
type PeriodRunner interface {
	RunPeriod(ctx context.Context, period, actor string) (*domain.RunResult, error)
}

// SchedulerService triggers the monthly depreciation run unattended.
//
// The automatic trigger targets the previous calendar month; a manual run
// without an explicit period targets the current month. Both paths share the
// same mutual-exclusion guard and the same period-level already-run check.
type SchedulerService struct {
	runner   PeriodRunner
	location *time.Location
	cron     *cron.Cron
	entryID  cron.EntryID
	running  atomic.Bool
}

// NewSchedulerService creates a new depreciation scheduler
func NewSchedulerService(runner PeriodRunner, timezone string) (*SchedulerService, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %s: %w", timezone, err)
	}

	return &SchedulerService{
		runner:   runner,
		location: loc,
	}, nil
}

// Start launches the monthly cron trigger
func (s *SchedulerService) Start() error {
	s.cron = cron.New(cron.WithLocation(s.location))

	entryID, err := s.cron.AddFunc(depreciationCronSpec, s.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule depreciation run: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	log.Printf("🚀 Depreciation scheduler started [%s, tz=%s]", depreciationCronSpec, s.location)
	return nil
}

// Stop stops the cron trigger, waiting for an in-flight run to finish
func (s *SchedulerService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("🛑 Depreciation scheduler stopped")
}

// runScheduled is the automatic monthly trigger. It never surfaces errors to
// a user: outcomes are logged, an already-run period is benign, and an
// overlapping trigger is skipped, not queued.
func (s *SchedulerService) runScheduled() {
	period := PreviousPeriod(time.Now().In(s.location))

	if !s.running.CompareAndSwap(false, true) {
		log.Printf("⚠️ Depreciation run skipped: another run is in progress (period=%s)", period)
		return
	}
	defer s.running.Store(false)

	result, err := s.runner.RunPeriod(context.Background(), period, "scheduler")
	if err != nil {
		if errors.Is(err, domain.ErrPeriodAlreadyRun) {
			log.Printf("ℹ️ Depreciation for period %s already executed, skipping", period)
			return
		}
		log.Printf("❌ Scheduled depreciation run failed: period=%s error=%v", period, err)
		return
	}

	log.Printf("✅ Scheduled depreciation completed: period=%s processed=%d omitted=%d total=%s",
		result.Period, result.Processed, result.Omitted, result.TotalDepreciation.String())
}

// RunManual triggers a run for an explicit period, defaulting to the current
// calendar month when none is given. It shares the scheduler's
// mutual-exclusion guard; errors (including ErrPeriodAlreadyRun) surface to
// the caller.
func (s *SchedulerService) RunManual(ctx context.Context, period, actor string) (*domain.RunResult, error) {
	if period == "" {
		period = CurrentPeriod(time.Now().In(s.location))
	}

	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrRunInProgress
	}
	defer s.running.Store(false)

	return s.runner.RunPeriod(ctx, period, actor)
}

// Status reports whether a run is executing and when the next automatic
// trigger fires
func (s *SchedulerService) Status() *domain.SchedulerStatus {
	status := &domain.SchedulerStatus{
		Running: s.running.Load(),
	}
	if s.cron != nil {
		status.NextScheduledRun = s.cron.Entry(s.entryID).Next
	}
	return status
}

// CurrentPeriod formats t's calendar month as YYYY-MM
func CurrentPeriod(t time.Time) string {
	return t.Format("2006-01")
}

// PreviousPeriod formats the calendar month before t as YYYY-MM
func PreviousPeriod(t time.Time) string {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.AddDate(0, 0, -1).Format("2006-01")
}
