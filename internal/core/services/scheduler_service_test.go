package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicamia-assets/internal/core/domain"

	"github.com/shopspring/decimal"
)

// fakeRunner records RunPeriod invocations and can block or fail on demand
type fakeRunner struct {
	period  string
	actor   string
	err     error
	started chan struct{}
	release chan struct{}
}

func (r *fakeRunner) RunPeriod(ctx context.Context, period, actor string) (*domain.RunResult, error) {
	r.period = period
	r.actor = actor
	if r.started != nil {
		close(r.started)
	}
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return nil, r.err
	}
	return &domain.RunResult{
		Period:            period,
		Actor:             actor,
		TotalDepreciation: decimal.Zero,
	}, nil
}

func TestCurrentPeriod(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC), "2026-08"},
		{time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), "2026-12"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2026-01"},
	}
	for _, tt := range tests {
		if got := CurrentPeriod(tt.at); got != tt.want {
			t.Errorf("CurrentPeriod(%v) = %s, want %s", tt.at, got, tt.want)
		}
	}
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC), "2026-07"},
		{time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), "2026-07"},
		// January rolls back to December of the previous year
		{time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC), "2025-12"},
	}
	for _, tt := range tests {
		if got := PreviousPeriod(tt.at); got != tt.want {
			t.Errorf("PreviousPeriod(%v) = %s, want %s", tt.at, got, tt.want)
		}
	}
}

func TestNewSchedulerService_InvalidTimezone(t *testing.T) {
	if _, err := NewSchedulerService(&fakeRunner{}, "Not/AZone"); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}

func TestRunManual_DefaultsToCurrentPeriod(t *testing.T) {
	runner := &fakeRunner{}
	svc, err := NewSchedulerService(runner, "UTC")
	if err != nil {
		t.Fatalf("NewSchedulerService() error: %v", err)
	}

	result, err := svc.RunManual(context.Background(), "", "admin")
	if err != nil {
		t.Fatalf("RunManual() error: %v", err)
	}

	want := CurrentPeriod(time.Now().UTC())
	if result.Period != want {
		t.Errorf("period = %s, want %s", result.Period, want)
	}
	if runner.actor != "admin" {
		t.Errorf("actor = %s, want admin", runner.actor)
	}
}

func TestRunManual_ExplicitPeriod(t *testing.T) {
	runner := &fakeRunner{}
	svc, err := NewSchedulerService(runner, "America/Bogota")
	if err != nil {
		t.Fatalf("NewSchedulerService() error: %v", err)
	}

	if _, err := svc.RunManual(context.Background(), "2026-03", "admin"); err != nil {
		t.Fatalf("RunManual() error: %v", err)
	}
	if runner.period != "2026-03" {
		t.Errorf("period = %s, want 2026-03", runner.period)
	}
}

func TestRunManual_RejectsConcurrentRun(t *testing.T) {
	runner := &fakeRunner{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, err := NewSchedulerService(runner, "UTC")
	if err != nil {
		t.Fatalf("NewSchedulerService() error: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.RunManual(context.Background(), "2026-07", "admin")
		firstDone <- err
	}()

	<-runner.started

	// While the first run holds the guard, a second run must be rejected
	if _, err := svc.RunManual(context.Background(), "2026-08", "admin"); !errors.Is(err, domain.ErrRunInProgress) {
		t.Errorf("concurrent RunManual() error = %v, want ErrRunInProgress", err)
	}

	close(runner.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first RunManual() error: %v", err)
	}

	// Guard released: runs are accepted again
	runner.started = nil
	runner.release = nil
	if _, err := svc.RunManual(context.Background(), "2026-08", "admin"); err != nil {
		t.Errorf("RunManual() after release error: %v", err)
	}
}

func TestRunManual_SurfacesAlreadyRun(t *testing.T) {
	runner := &fakeRunner{err: domain.ErrPeriodAlreadyRun}
	svc, err := NewSchedulerService(runner, "UTC")
	if err != nil {
		t.Fatalf("NewSchedulerService() error: %v", err)
	}

	if _, err := svc.RunManual(context.Background(), "2026-07", "admin"); !errors.Is(err, domain.ErrPeriodAlreadyRun) {
		t.Errorf("RunManual() error = %v, want ErrPeriodAlreadyRun", err)
	}

	// The guard must be released even when the run fails
	runner.err = nil
	if _, err := svc.RunManual(context.Background(), "2026-07", "admin"); err != nil {
		t.Errorf("RunManual() after failure error: %v", err)
	}
}

func TestStatus(t *testing.T) {
	svc, err := NewSchedulerService(&fakeRunner{}, "UTC")
	if err != nil {
		t.Fatalf("NewSchedulerService() error: %v", err)
	}

	status := svc.Status()
	if status.Running {
		t.Error("Running = true before any run")
	}
	if !status.NextScheduledRun.IsZero() {
		t.Error("NextScheduledRun should be zero before Start()")
	}
}

func TestStatus_AfterStart(t *testing.T) {
	svc, err := NewSchedulerService(&fakeRunner{}, "UTC")
	if err != nil {
		t.Fatalf("NewSchedulerService() error: %v", err)
	}

	if err := svc.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer svc.Stop()

	status := svc.Status()
	if status.NextScheduledRun.IsZero() {
		t.Fatal("NextScheduledRun is zero after Start()")
	}

	// Next automatic trigger is day 1 at 02:00
	next := status.NextScheduledRun
	if next.Day() != 1 || next.Hour() != 2 || next.Minute() != 0 {
		t.Errorf("next run = %v, want day 1 at 02:00", next)
	}
}
