package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
	calls     int
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.calls++
	f.retention = retention
	return f.deleted, f.err
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	t.Run("deletes with the requested retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 12}
		processor := CleanupAuditEventsProcessor(cleaner)

		err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 7})
		require.NoError(t, err)

		assert.Equal(t, 1, cleaner.calls)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
	})

	t.Run("falls back to the default retention", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		processor := CleanupAuditEventsProcessor(cleaner)

		require.NoError(t, processor(context.Background(), CleanupAuditEventsTask{}))
		assert.Equal(t, time.Duration(DefaultAuditRetentionDays)*24*time.Hour, cleaner.retention)
	})

	t.Run("propagates delete errors for retry", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("database is locked")}
		processor := CleanupAuditEventsProcessor(cleaner)

		assert.Error(t, processor(context.Background(), CleanupAuditEventsTask{}))
	})

	t.Run("fails without a cleaner", func(t *testing.T) {
		processor := CleanupAuditEventsProcessor(nil)
		assert.Error(t, processor(context.Background(), CleanupAuditEventsTask{}))
	})
}

func TestCleanupAuditEventsTask_Config(t *testing.T) {
	cfg := CleanupAuditEventsTask{}.Config()
	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
}
