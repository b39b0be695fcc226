package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskvault/internal/adapter/storage/file"
	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
	"taskvault/internal/scheduler"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.ReminderNotification
}

func (n *recordingNotifier) Notify(_ context.Context, notification ports.ReminderNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) notifications() []ports.ReminderNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.ReminderNotification(nil), n.sent...)
}

func newSchedulerFixture(t *testing.T) (*file.TaskStore, *file.CategoryStore, *recordingNotifier, *scheduler.ReminderScheduler) {
	t.Helper()
	dataDir := t.TempDir()

	tasks, err := file.NewTaskStore(dataDir)
	require.NoError(t, err)
	categories, err := file.NewCategoryStore(dataDir)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	sched := scheduler.New(tasks, categories, notifier, 15*time.Minute)
	return tasks, categories, notifier, sched
}

func TestSweepNotifiesEachReminderOnce(t *testing.T) {
	tasks, categories, notifier, sched := newSchedulerFixture(t)
	ctx := context.Background()

	work, err := categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
	require.NoError(t, err)

	soon := time.Now().Add(5 * time.Minute)
	due, err := tasks.Create(ctx, domain.CreateTaskInput{
		Title:        "Standup prep",
		ReminderDate: &soon,
		DueDate:      &soon,
		Priority:     domain.TaskPriorityHigh,
		CategoryIDs:  []string{work.ID},
		OwnerID:      "u1",
	})
	require.NoError(t, err)

	require.NoError(t, sched.Sweep(ctx))

	sent := notifier.notifications()
	require.Len(t, sent, 1)
	require.Equal(t, due.ID, sent[0].TaskID)
	require.Equal(t, "Standup prep", sent[0].Title)
	require.Equal(t, domain.TaskPriorityHigh, sent[0].Priority)
	require.Equal(t, []string{"Work"}, sent[0].Categories)

	// Repeated sweeps never re-send.
	require.NoError(t, sched.Sweep(ctx))
	require.NoError(t, sched.Sweep(ctx))
	require.Len(t, notifier.notifications(), 1)

	marked, err := tasks.FindByID(ctx, due.ID)
	require.NoError(t, err)
	require.True(t, marked.ReminderSent)
}

func TestSweepSkipsCompletedAndOutOfWindow(t *testing.T) {
	tasks, _, notifier, sched := newSchedulerFixture(t)
	ctx := context.Background()

	soon := time.Now().Add(5 * time.Minute)
	later := time.Now().Add(2 * time.Hour)
	past := time.Now().Add(-time.Hour)

	_, err := tasks.Create(ctx, domain.CreateTaskInput{
		Title: "Already done", ReminderDate: &soon, Status: domain.TaskStatusCompleted, OwnerID: "u1",
	})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "Too far out", ReminderDate: &later, OwnerID: "u1"})
	require.NoError(t, err)
	// A window that already passed is never retried.
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "Missed", ReminderDate: &past, OwnerID: "u1"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "No reminder", OwnerID: "u1"})
	require.NoError(t, err)

	require.NoError(t, sched.Sweep(ctx))
	require.Empty(t, notifier.notifications())
}
