package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wodtimer/internal/storage"
)

func openTestHistory(t *testing.T) *storage.History {
	t.Helper()
	history, err := storage.OpenHistory(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = history.Close()
	})
	return history
}

func TestRecordSessionAssignsID(t *testing.T) {
	history := openTestHistory(t)

	session := storage.Session{
		Mode:        "tabata",
		Total:       4 * time.Minute,
		CompletedAt: time.Now(),
	}
	require.NoError(t, history.RecordSession(&session))

	assert.NotEmpty(t, session.ID)
}

func TestRecentSessionsNewestFirst(t *testing.T) {
	history := openTestHistory(t)

	base := time.Date(2026, 8, 23, 7, 0, 0, 0, time.UTC)
	modes := []string{"countdown", "tabata", "amrap"}
	for i, mode := range modes {
		session := storage.Session{
			Mode:        mode,
			Total:       time.Duration(i+1) * time.Minute,
			CompletedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, history.RecordSession(&session))
	}

	sessions, err := history.RecentSessions(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "amrap", sessions[0].Mode)
	assert.Equal(t, 3*time.Minute, sessions[0].Total)
	assert.Equal(t, "tabata", sessions[1].Mode)
}

func TestCount(t *testing.T) {
	history := openTestHistory(t)

	count, err := history.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 3; i++ {
		session := storage.Session{Mode: "emom", Total: 10 * time.Minute, CompletedAt: time.Now()}
		require.NoError(t, history.RecordSession(&session))
	}

	count, err = history.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRecentSessionsEmpty(t *testing.T) {
	history := openTestHistory(t)

	sessions, err := history.RecentSessions(5)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
