package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotificationCleanupRepository struct {
	before  time.Time
	removed int64
}

func (m *mockNotificationCleanupRepository) RemoveOldRead(_ context.Context, before time.Time) (int64, error) {
	m.before = before
	return m.removed, nil
}

func Test_NotificationsCleaner_RejectsInvalidRetention(t *testing.T) {

	_, err := NewNotificationsCleaner(&mockNotificationCleanupRepository{}, 0)
	assert.Error(t, err)

	_, err = NewNotificationsCleaner(&mockNotificationCleanupRepository{}, -1)
	assert.Error(t, err)
}

func Test_NotificationsCleaner_UsesRetentionWindow(t *testing.T) {

	repo := &mockNotificationCleanupRepository{removed: 3}
	cleaner, err := NewNotificationsCleaner(repo, 30)
	require.NoError(t, err)
	defer cleaner.Stop()

	cleaner.cleanOldNotifications()

	expected := time.Now().Add(-30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, repo.before, time.Minute)
}
