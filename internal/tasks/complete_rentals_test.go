package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	completed int64
	err       error
	calls     int
}

func (f *fakeSweeper) CompleteExpired(now time.Time) (int64, error) {
	f.calls++
	return f.completed, f.err
}

type fakeAuditor struct {
	completed int64
	err       error
	calls     int
}

func (f *fakeAuditor) LogSweep(completed int64, err error) {
	f.calls++
	f.completed = completed
	f.err = err
}

func TestCompleteExpiredRentalsProcessor(t *testing.T) {
	t.Run("sweeps and audits", func(t *testing.T) {
		sweeper := &fakeSweeper{completed: 3}
		auditor := &fakeAuditor{}
		processor := CompleteExpiredRentalsProcessor(sweeper, auditor)

		err := processor(context.Background(), CompleteExpiredRentalsTask{RequestedAt: time.Now()})
		require.NoError(t, err)

		assert.Equal(t, 1, sweeper.calls)
		assert.Equal(t, 1, auditor.calls)
		assert.Equal(t, int64(3), auditor.completed)
	})

	t.Run("propagates sweep errors for retry", func(t *testing.T) {
		sweeper := &fakeSweeper{err: errors.New("database is locked")}
		auditor := &fakeAuditor{}
		processor := CompleteExpiredRentalsProcessor(sweeper, auditor)

		err := processor(context.Background(), CompleteExpiredRentalsTask{})
		require.Error(t, err)
		assert.Error(t, auditor.err)
	})

	t.Run("fails without a sweeper", func(t *testing.T) {
		processor := CompleteExpiredRentalsProcessor(nil, nil)
		assert.Error(t, processor(context.Background(), CompleteExpiredRentalsTask{}))
	})

	t.Run("works without an auditor", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		processor := CompleteExpiredRentalsProcessor(sweeper, nil)
		assert.NoError(t, processor(context.Background(), CompleteExpiredRentalsTask{}))
	})
}

func TestCompleteExpiredRentalsTask_Config(t *testing.T) {
	cfg := CompleteExpiredRentalsTask{}.Config()
	assert.Equal(t, "complete_expired_rentals", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
}
