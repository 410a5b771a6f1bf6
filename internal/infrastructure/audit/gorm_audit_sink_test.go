package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/cdnflush/internal/config"
	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/internal/domain/service"
	"github.com/turtacn/cdnflush/internal/infrastructure/persistence"
)

func newSinkForTest(t *testing.T) service.AuditSink {
	t.Helper()
	db, err := persistence.OpenDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "audit.db"),
	})
	require.NoError(t, err)
	return NewGormAuditSink(db)
}

func record(id string, requestTime time.Time, success bool) *models.RefreshLog {
	l := &models.RefreshLog{
		ID:           id,
		Provider:     "main (aliyun)",
		TriggerType:  models.TriggerPostPublish,
		Success:      success,
		TaskID:       "task-" + id,
		RequestTime:  requestTime,
		ResponseTime: requestTime.Add(120 * time.Millisecond),
	}
	l.SetURLList([]string{"https://example.com/a", "https://example.com/b"})
	return l
}

func TestSinkSaveAndList(t *testing.T) {
	sink := newSinkForTest(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)

	require.NoError(t, sink.Save(ctx, record("1", base, true)))
	require.NoError(t, sink.Save(ctx, record("2", base.Add(time.Minute), false)))
	require.NoError(t, sink.Save(ctx, record("3", base.Add(2*time.Minute), true)))

	logs, err := sink.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// Newest first.
	assert.Equal(t, "3", logs[0].ID)
	assert.Equal(t, "2", logs[1].ID)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, logs[0].URLList())
}

func TestSinkListDefaultLimit(t *testing.T) {
	sink := newSinkForTest(t)
	ctx := context.Background()

	require.NoError(t, sink.Save(ctx, record("1", time.Now(), true)))

	logs, err := sink.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestSinkDelete(t *testing.T) {
	sink := newSinkForTest(t)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, sink.Save(ctx, record("1", base, true)))
	require.NoError(t, sink.Save(ctx, record("2", base, true)))

	require.NoError(t, sink.Delete(ctx, "1"))

	logs, err := sink.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2", logs[0].ID)
}

func TestSinkClear(t *testing.T) {
	sink := newSinkForTest(t)
	ctx := context.Background()

	require.NoError(t, sink.Save(ctx, record("1", time.Now(), true)))
	require.NoError(t, sink.Save(ctx, record("2", time.Now(), false)))

	require.NoError(t, sink.Clear(ctx))

	logs, err := sink.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
