package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// RentalSweeper finishes pending rentals whose end date has passed.
type RentalSweeper interface {
	CompleteExpired(now time.Time) (int64, error)
}

// SweepAuditor records the outcome of a sweep run.
type SweepAuditor interface {
	LogSweep(completed int64, err error)
}

// CompleteExpiredRentalsTask completes every pending rental past its end date
// and returns the vehicles to the available pool.
type CompleteExpiredRentalsTask struct {
	// RequestedAt marks when the sweep was scheduled, for tracing.
	RequestedAt time.Time `json:"requested_at"`
}

// Config returns the queue configuration for rental sweep tasks.
func (t CompleteExpiredRentalsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "complete_expired_rentals",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CompleteExpiredRentalsProcessor creates a processor function for
// CompleteExpiredRentalsTask. The auditor may be nil.
func CompleteExpiredRentalsProcessor(sweeper RentalSweeper, auditor SweepAuditor) backlite.QueueProcessor[CompleteExpiredRentalsTask] {
	return func(ctx context.Context, task CompleteExpiredRentalsTask) error {
		if sweeper == nil {
			return fmt.Errorf("rental sweeper not configured")
		}

		completed, err := sweeper.CompleteExpired(time.Now())
		if auditor != nil {
			auditor.LogSweep(completed, err)
		}
		if err != nil {
			return fmt.Errorf("complete expired rentals: %w", err)
		}

		if completed > 0 {
			log.Printf("[TASK] Completed %d expired rentals", completed)
		}
		return nil
	}
}

// NewCompleteExpiredRentalsQueue creates a backlite queue for rental sweeps.
func NewCompleteExpiredRentalsQueue(sweeper RentalSweeper, auditor SweepAuditor) backlite.Queue {
	return backlite.NewQueue(CompleteExpiredRentalsProcessor(sweeper, auditor))
}
