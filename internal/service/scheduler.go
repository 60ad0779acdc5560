package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// CleanupScheduler runs the cleanup executor on a cron schedule.
// Overlapping triggers are tolerated: concurrent runs may fetch
// overlapping expired sets, and the batch delete is idempotent.
type CleanupScheduler struct {
	cleanup  *CleanupService
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
}

// NewCleanupScheduler creates a scheduler driving cleanup on the given
// cron expression. An empty schedule disables scheduling.
func NewCleanupScheduler(cleanup *CleanupService, schedule string) *CleanupScheduler {
	return &CleanupScheduler{
		cleanup:  cleanup,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start begins scheduled cleanup runs. It validates the cron expression
// and stops the scheduler when ctx is cancelled.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		log.Println("Cleanup schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runCleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.running = true
	log.Printf("Cleanup scheduler started with schedule %q", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *CleanupScheduler) runCleanup(ctx context.Context) {
	report, err := s.cleanup.Run(ctx, time.Now())
	if err != nil {
		log.Printf("Scheduled cleanup failed: %v", err)
		return
	}

	if report.InvoicesDeleted > 0 {
		log.Printf("Scheduled cleanup deleted %d invoices and %d images",
			report.InvoicesDeleted, report.ImagesDeleted)
	}
}

// Stop stops the scheduler and waits for any running job to complete.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		log.Println("Cleanup scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *CleanupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}
