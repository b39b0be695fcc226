package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskvault/internal/adapter/storage/file"
	"taskvault/internal/app/service"
	"taskvault/internal/core/domain"
)

func newTaskService(t *testing.T) (*service.TaskService, *file.TaskStore, *file.CategoryStore) {
	t.Helper()
	dataDir := t.TempDir()

	tasks, err := file.NewTaskStore(dataDir)
	require.NoError(t, err)
	categories, err := file.NewCategoryStore(dataDir)
	require.NoError(t, err)

	return service.NewTaskService(tasks, categories), tasks, categories
}

func TestListTasksScopedToOwner(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	_, err := tasks.Create(ctx, domain.CreateTaskInput{Title: "Mine", OwnerID: "u1"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "Theirs", OwnerID: "u2"})
	require.NoError(t, err)

	page, err := svc.ListTasks(ctx, "u1", domain.TaskListQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Len(t, page.Tasks, 1)
	require.Equal(t, "Mine", page.Tasks[0].Title)
}

func TestListTasksPopulatesCategories(t *testing.T) {
	svc, tasks, categories := newTaskService(t)
	ctx := context.Background()

	work, err := categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
	require.NoError(t, err)

	_, err = tasks.Create(ctx, domain.CreateTaskInput{
		Title:       "Tagged",
		CategoryIDs: []string{work.ID, "gone"},
		OwnerID:     "u1",
	})
	require.NoError(t, err)

	page, err := svc.ListTasks(ctx, "u1", domain.TaskListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)

	// The dangling id is dropped, the live one resolves to a summary.
	summaries := page.Tasks[0].Categories
	require.Len(t, summaries, 1)
	require.Equal(t, work.ID, summaries[0].ID)
	require.Equal(t, "Work", summaries[0].Name)
	require.Equal(t, domain.DefaultCategoryColor, summaries[0].Color)
}

func TestOwnershipGuardDistinguishesMissingFromForeign(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	foreign, err := tasks.Create(ctx, domain.CreateTaskInput{Title: "Not yours", OwnerID: "u2"})
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, "u1", "missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = svc.GetTask(ctx, "u1", foreign.ID)
	require.ErrorIs(t, err, domain.ErrNotOwner)

	require.ErrorIs(t, svc.DeleteTask(ctx, "u1", foreign.ID), domain.ErrNotOwner)

	title := "hijack"
	_, err = svc.UpdateTask(ctx, "u1", foreign.ID, domain.UpdateTaskInput{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotOwner)

	// The record is untouched after all of the above.
	kept, err := tasks.FindByID(ctx, foreign.ID)
	require.NoError(t, err)
	require.Equal(t, "Not yours", kept.Title)
}

func TestCreateTaskRejectsReminderAfterDueDate(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	reminder := due.Add(time.Hour)

	_, err := svc.CreateTask(ctx, domain.CreateTaskInput{
		Title:        "Backwards reminder",
		DueDate:      &due,
		ReminderDate: &reminder,
		OwnerID:      "u1",
	})
	require.ErrorIs(t, err, domain.ErrReminderAfterDueDate)
}

func TestUpdateTaskValidatesMergedRecord(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	task, err := tasks.Create(ctx, domain.CreateTaskInput{Title: "Deadline", DueDate: &due, OwnerID: "u1"})
	require.NoError(t, err)

	// A patch that only sets the reminder must still be checked against the
	// stored due date.
	late := due.Add(time.Hour)
	_, err = svc.UpdateTask(ctx, "u1", task.ID, domain.UpdateTaskInput{
		ReminderDate:    &late,
		ReminderDateSet: true,
	})
	require.ErrorIs(t, err, domain.ErrReminderAfterDueDate)

	early := due.Add(-time.Hour)
	updated, err := svc.UpdateTask(ctx, "u1", task.ID, domain.UpdateTaskInput{
		ReminderDate:    &early,
		ReminderDateSet: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ReminderDate)
}

func TestUpdateTaskStatusDerivesCompletion(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	task, err := tasks.Create(ctx, domain.CreateTaskInput{Title: "Finish me", OwnerID: "u1"})
	require.NoError(t, err)

	updated, err := svc.UpdateTaskStatus(ctx, "u1", task.ID, domain.TaskStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	updated, err = svc.UpdateTaskStatus(ctx, "u1", task.ID, domain.TaskStatusInProgress)
	require.NoError(t, err)
	require.Nil(t, updated.CompletedAt)
}

func TestStatisticsCountsAllBuckets(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	seed := []domain.CreateTaskInput{
		{Title: "a", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityHigh, OwnerID: "u1"},
		{Title: "b", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityLow, OwnerID: "u1"},
		{Title: "c", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityHigh, OwnerID: "u1"},
		{Title: "d", Status: domain.TaskStatusInProgress, OwnerID: "u1"},
		{Title: "e", Status: domain.TaskStatusPending, OwnerID: "u2"},
	}
	for _, input := range seed {
		_, err := tasks.Create(ctx, input)
		require.NoError(t, err)
	}

	stats, err := svc.Statistics(ctx, "u1")
	require.NoError(t, err)

	require.Equal(t, 4, stats.Total)
	require.Equal(t, 2, stats.ByStatus[domain.TaskStatusPending])
	require.Equal(t, 1, stats.ByStatus[domain.TaskStatusInProgress])
	require.Equal(t, 1, stats.ByStatus[domain.TaskStatusCompleted])
	require.Equal(t, 2, stats.ByPriority[domain.TaskPriorityHigh])
	require.Equal(t, 2, stats.ByPriority[domain.TaskPriorityMedium])
	require.Equal(t, 1, stats.ByPriority[domain.TaskPriorityLow])
}

func TestUpcomingTasksWindowAndOrder(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	tomorrow := now.AddDate(0, 0, 1)
	inThreeDays := now.AddDate(0, 0, 3)
	nextMonth := now.AddDate(0, 1, 0)
	lastWeek := now.AddDate(0, 0, -7)

	_, err := tasks.Create(ctx, domain.CreateTaskInput{Title: "Later", DueDate: &inThreeDays, OwnerID: "u1"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "Soon", DueDate: &tomorrow, OwnerID: "u1"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "Far", DueDate: &nextMonth, OwnerID: "u1"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "Overdue", DueDate: &lastWeek, OwnerID: "u1"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{
		Title: "Done", DueDate: &tomorrow, Status: domain.TaskStatusCompleted, OwnerID: "u1",
	})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, domain.CreateTaskInput{Title: "Undated", OwnerID: "u1"})
	require.NoError(t, err)

	upcoming, err := svc.UpcomingTasks(ctx, "u1", now)
	require.NoError(t, err)

	require.Len(t, upcoming, 2)
	require.Equal(t, "Soon", upcoming[0].Title)
	require.Equal(t, "Later", upcoming[1].Title)
}
