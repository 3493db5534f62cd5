// Package scheduler triggers periodic maintenance work on cron schedules:
// the rental sweep, which completes pending rentals whose end date has
// passed, and the audit cleanup, which trims old audit events.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/rentals/internal/config"
	"github.com/mrlokans/rentals/internal/tasks"
)

// MaintenanceScheduler enqueues background maintenance tasks on cron
// schedules.
type MaintenanceScheduler struct {
	taskClient *tasks.Client
	sweep      config.Sweep
	audit      config.Audit

	cron       *cron.Cron
	sweepEntry cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	watchCtx   context.Context
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(taskClient *tasks.Client, sweepCfg config.Sweep, auditCfg config.Audit) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		taskClient: taskClient,
		sweep:      sweepCfg,
		audit:      auditCfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start registers the enabled maintenance jobs and begins the cron loop.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.taskClient == nil {
		log.Printf("Maintenance scheduler: task queue not configured, skipping")
		return nil
	}

	entries := 0

	if s.sweep.Enabled {
		entryID, err := s.cron.AddFunc(s.sweep.Schedule, s.enqueueSweep)
		if err != nil {
			return fmt.Errorf("invalid sweep schedule '%s': %w", s.sweep.Schedule, err)
		}
		s.sweepEntry = entryID
		entries++
		log.Printf("Maintenance scheduler: rental sweep on '%s'", s.sweep.Schedule)
	}

	if s.audit.RetentionDays > 0 && s.audit.CleanupSchedule != "" {
		if _, err := s.cron.AddFunc(s.audit.CleanupSchedule, s.enqueueAuditCleanup); err != nil {
			return fmt.Errorf("invalid audit cleanup schedule '%s': %w", s.audit.CleanupSchedule, err)
		}
		entries++
		log.Printf("Maintenance scheduler: audit cleanup on '%s' (retention %d days)",
			s.audit.CleanupSchedule, s.audit.RetentionDays)
	}

	if entries == 0 {
		log.Printf("Maintenance scheduler: nothing enabled")
		return nil
	}

	s.watchCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	go func(watch context.Context) {
		<-watch.Done()
		s.Stop()
	}(s.watchCtx)

	return nil
}

// Stop gracefully stops the scheduler and releases the watcher goroutine.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

// RunSweepNow triggers an immediate rental sweep.
func (s *MaintenanceScheduler) RunSweepNow() {
	s.enqueueSweep()
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextSweepTime returns when the next rental sweep will be enqueued.
func (s *MaintenanceScheduler) GetNextSweepTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.sweepEntry {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// enqueueSweep pushes a sweep task onto the queue. The queue deduplicates
// nothing; a sweep that finds no expired rentals is a no-op.
func (s *MaintenanceScheduler) enqueueSweep() {
	_, err := s.taskClient.Add(tasks.CompleteExpiredRentalsTask{
		RequestedAt: time.Now(),
	}).Save()
	if err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue sweep: %v", err)
	}
}

// enqueueAuditCleanup pushes an audit retention task onto the queue.
func (s *MaintenanceScheduler) enqueueAuditCleanup() {
	_, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{
		RetentionDays: s.audit.RetentionDays,
	}).Save()
	if err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue audit cleanup: %v", err)
	}
}
