package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveCompletedAt(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)

	t.Run("entering completed stamps now", func(t *testing.T) {
		stamp := DeriveCompletedAt(TaskStatusCompleted, nil, now)
		require.NotNil(t, stamp)
		require.True(t, stamp.Equal(now))
	})

	t.Run("staying completed keeps the original stamp", func(t *testing.T) {
		stamp := DeriveCompletedAt(TaskStatusCompleted, &earlier, now)
		require.NotNil(t, stamp)
		require.True(t, stamp.Equal(earlier))
	})

	t.Run("leaving completed clears the stamp", func(t *testing.T) {
		require.Nil(t, DeriveCompletedAt(TaskStatusPending, &earlier, now))
		require.Nil(t, DeriveCompletedAt(TaskStatusInProgress, &earlier, now))
	})
}

func TestValidateReminderDate(t *testing.T) {
	due := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	before := due.Add(-time.Hour)
	after := due.Add(time.Hour)

	require.NoError(t, ValidateReminderDate(nil, nil))
	require.NoError(t, ValidateReminderDate(&before, nil))
	require.NoError(t, ValidateReminderDate(nil, &due))
	require.NoError(t, ValidateReminderDate(&before, &due))
	require.NoError(t, ValidateReminderDate(&due, &due))
	require.ErrorIs(t, ValidateReminderDate(&after, &due), ErrReminderAfterDueDate)
}

func TestPriorityRank(t *testing.T) {
	require.Equal(t, 3, PriorityRank(TaskPriorityHigh))
	require.Equal(t, 2, PriorityRank(TaskPriorityMedium))
	require.Equal(t, 1, PriorityRank(TaskPriorityLow))
	require.Less(t, PriorityRank(TaskPriority("unknown")), PriorityRank(TaskPriorityLow))
}
