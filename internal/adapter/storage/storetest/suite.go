// Package storetest holds a conformance suite every Record Store backend
// must pass, so behavioral parity between the file and mongodb families is
// checked mechanically instead of by convention.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

// Stores is one backend family under test. The factory must hand back empty
// stores.
type Stores struct {
	Tasks      ports.TaskStore
	Categories ports.CategoryStore
	Users      ports.UserStore
}

type Factory func(t *testing.T) Stores

// Run exercises the Record Store contract against one backend.
func Run(t *testing.T, factory Factory) {
	t.Run("TaskCreateAppliesDefaults", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		task, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{Title: "Write report", OwnerID: "u1"})
		require.NoError(t, err)

		require.NotEmpty(t, task.ID)
		require.Equal(t, domain.TaskStatusPending, task.Status)
		require.Equal(t, domain.TaskPriorityMedium, task.Priority)
		require.False(t, task.ReminderSent)
		require.Nil(t, task.CompletedAt)
		require.NotNil(t, task.CategoryIDs)
		require.Empty(t, task.CategoryIDs)
		require.NotNil(t, task.Tags)
		require.False(t, task.CreatedAt.IsZero())
		require.False(t, task.UpdatedAt.IsZero())
	})

	t.Run("TaskCreateCompletedStampsCompletedAt", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		task, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{
			Title:   "Already done",
			Status:  domain.TaskStatusCompleted,
			OwnerID: "u1",
		})
		require.NoError(t, err)
		require.NotNil(t, task.CompletedAt)
	})

	t.Run("TaskUpdateDerivesCompletedAt", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		task, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{Title: "Cycle states", OwnerID: "u1"})
		require.NoError(t, err)

		completed := domain.TaskStatusCompleted
		updated, err := stores.Tasks.Update(ctx, task.ID, domain.UpdateTaskInput{Status: &completed})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		stamp := *updated.CompletedAt

		// Staying completed keeps the original stamp.
		updated, err = stores.Tasks.Update(ctx, task.ID, domain.UpdateTaskInput{Status: &completed})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		require.True(t, stamp.Equal(*updated.CompletedAt))

		// Leaving completed clears it.
		pending := domain.TaskStatusPending
		updated, err = stores.Tasks.Update(ctx, task.ID, domain.UpdateTaskInput{Status: &pending})
		require.NoError(t, err)
		require.Nil(t, updated.CompletedAt)
	})

	t.Run("TaskUpdateMergesPartialPatch", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		description := "quarterly numbers"
		dueDate := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
		task, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{
			Title:       "Report",
			Description: &description,
			DueDate:     &dueDate,
			Tags:        []string{"finance"},
			OwnerID:     "u1",
		})
		require.NoError(t, err)

		title := "Annual report"
		updated, err := stores.Tasks.Update(ctx, task.ID, domain.UpdateTaskInput{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "Annual report", updated.Title)
		require.NotNil(t, updated.Description)
		require.Equal(t, description, *updated.Description)
		require.NotNil(t, updated.DueDate)
		require.Equal(t, []string{"finance"}, updated.Tags)

		// An explicit clear removes the value.
		updated, err = stores.Tasks.Update(ctx, task.ID, domain.UpdateTaskInput{DueDateSet: true})
		require.NoError(t, err)
		require.Nil(t, updated.DueDate)
		require.False(t, updated.UpdatedAt.Before(task.UpdatedAt))
	})

	t.Run("TaskFindFiltersAndCount", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		high := domain.TaskPriorityHigh
		_, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{
			Title: "A", OwnerID: "u1", Priority: high, CategoryIDs: []string{"c1"},
		})
		require.NoError(t, err)
		_, err = stores.Tasks.Create(ctx, domain.CreateTaskInput{
			Title: "B", OwnerID: "u1", Status: domain.TaskStatusInProgress,
		})
		require.NoError(t, err)
		_, err = stores.Tasks.Create(ctx, domain.CreateTaskInput{Title: "C", OwnerID: "u2"})
		require.NoError(t, err)

		all, err := stores.Tasks.Find(ctx, ports.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)

		owned, err := stores.Tasks.Find(ctx, ports.TaskFilter{OwnerID: "u1"})
		require.NoError(t, err)
		require.Len(t, owned, 2)

		inProgress, err := stores.Tasks.Find(ctx, ports.TaskFilter{OwnerID: "u1", Status: domain.TaskStatusInProgress})
		require.NoError(t, err)
		require.Len(t, inProgress, 1)
		require.Equal(t, "B", inProgress[0].Title)

		categorized, err := stores.Tasks.Find(ctx, ports.TaskFilter{CategoryID: "c1"})
		require.NoError(t, err)
		require.Len(t, categorized, 1)
		require.Equal(t, "A", categorized[0].Title)

		count, err := stores.Tasks.Count(ctx, ports.TaskFilter{OwnerID: "u1"})
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("TaskNotFoundSentinels", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		_, err := stores.Tasks.FindByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrTaskNotFound)

		_, err = stores.Tasks.Update(ctx, "missing", domain.UpdateTaskInput{})
		require.ErrorIs(t, err, domain.ErrTaskNotFound)

		require.ErrorIs(t, stores.Tasks.Delete(ctx, "missing"), domain.ErrTaskNotFound)
		require.ErrorIs(t, stores.Tasks.MarkReminderSent(ctx, "missing"), domain.ErrTaskNotFound)
	})

	t.Run("TaskDeleteRemovesRecord", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		task, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{Title: "Ephemeral", OwnerID: "u1"})
		require.NoError(t, err)

		require.NoError(t, stores.Tasks.Delete(ctx, task.ID))
		_, err = stores.Tasks.FindByID(ctx, task.ID)
		require.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("ReminderSelectionAndMark", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Second)

		soon := now.Add(5 * time.Minute)
		far := now.Add(2 * time.Hour)
		past := now.Add(-30 * time.Minute)

		due, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{Title: "Due soon", ReminderDate: &soon, OwnerID: "u1"})
		require.NoError(t, err)
		_, err = stores.Tasks.Create(ctx, domain.CreateTaskInput{Title: "Due later", ReminderDate: &far, OwnerID: "u1"})
		require.NoError(t, err)
		_, err = stores.Tasks.Create(ctx, domain.CreateTaskInput{Title: "Missed", ReminderDate: &past, OwnerID: "u1"})
		require.NoError(t, err)
		_, err = stores.Tasks.Create(ctx, domain.CreateTaskInput{
			Title: "Done", ReminderDate: &soon, Status: domain.TaskStatusCompleted, OwnerID: "u1",
		})
		require.NoError(t, err)

		window := ports.ReminderWindow{From: now, To: now.Add(15 * time.Minute)}
		selected, err := stores.Tasks.FindDueReminders(ctx, window)
		require.NoError(t, err)
		require.Len(t, selected, 1)
		require.Equal(t, due.ID, selected[0].ID)

		require.NoError(t, stores.Tasks.MarkReminderSent(ctx, due.ID))

		selected, err = stores.Tasks.FindDueReminders(ctx, window)
		require.NoError(t, err)
		require.Empty(t, selected)
	})

	t.Run("TaskUpdateLeavesReminderSentAlone", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Second)

		soon := now.Add(5 * time.Minute)
		task, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{
			Title: "Marked already", ReminderDate: &soon, OwnerID: "u1",
		})
		require.NoError(t, err)
		require.NoError(t, stores.Tasks.MarkReminderSent(ctx, task.ID))

		// A field patch must not write back a stale reminderSent.
		title := "Renamed after the sweep"
		updated, err := stores.Tasks.Update(ctx, task.ID, domain.UpdateTaskInput{Title: &title})
		require.NoError(t, err)
		require.True(t, updated.ReminderSent)

		window := ports.ReminderWindow{From: now, To: now.Add(15 * time.Minute)}
		selected, err := stores.Tasks.FindDueReminders(ctx, window)
		require.NoError(t, err)
		require.Empty(t, selected)
	})

	t.Run("CategoryCreateAppliesDefaults", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		category, err := stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
		require.NoError(t, err)
		require.NotEmpty(t, category.ID)
		require.Equal(t, domain.DefaultCategoryColor, category.Color)
		require.Equal(t, domain.DefaultCategoryIcon, category.Icon)
		require.False(t, category.CreatedAt.IsZero())
	})

	t.Run("CategoryNameUniquePerOwner", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		_, err := stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
		require.NoError(t, err)

		// Same owner collides, another owner does not.
		_, err = stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
		require.ErrorIs(t, err, domain.ErrCategoryNameTaken)

		_, err = stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u2"})
		require.NoError(t, err)
	})

	t.Run("CategoryFindFiltersByName", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		_, err := stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
		require.NoError(t, err)
		_, err = stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Personal", OwnerID: "u1"})
		require.NoError(t, err)
		_, err = stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u2"})
		require.NoError(t, err)

		matches, err := stores.Categories.Find(ctx, ports.CategoryFilter{OwnerID: "u1", Name: "Work"})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		require.Equal(t, "u1", matches[0].OwnerID)

		matches, err = stores.Categories.Find(ctx, ports.CategoryFilter{Name: "Work"})
		require.NoError(t, err)
		require.Len(t, matches, 2)

		count, err := stores.Categories.Count(ctx, ports.CategoryFilter{OwnerID: "u1", Name: "Work"})
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("CategoryRenameChecksUniqueness", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		_, err := stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
		require.NoError(t, err)
		personal, err := stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Personal", OwnerID: "u1"})
		require.NoError(t, err)

		taken := "Work"
		_, err = stores.Categories.Update(ctx, personal.ID, domain.UpdateCategoryInput{Name: &taken})
		require.ErrorIs(t, err, domain.ErrCategoryNameTaken)

		// Re-saving under its own name is not a collision.
		same := "Personal"
		updated, err := stores.Categories.Update(ctx, personal.ID, domain.UpdateCategoryInput{Name: &same})
		require.NoError(t, err)
		require.Equal(t, "Personal", updated.Name)
	})

	t.Run("CategoryNotFoundSentinels", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		_, err := stores.Categories.FindByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrCategoryNotFound)

		_, err = stores.Categories.Update(ctx, "missing", domain.UpdateCategoryInput{})
		require.ErrorIs(t, err, domain.ErrCategoryNotFound)

		require.ErrorIs(t, stores.Categories.Delete(ctx, "missing"), domain.ErrCategoryNotFound)
	})

	t.Run("CategoryDeleteLeavesTaskReferences", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		category, err := stores.Categories.Create(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
		require.NoError(t, err)
		task, err := stores.Tasks.Create(ctx, domain.CreateTaskInput{
			Title: "Tagged", CategoryIDs: []string{category.ID}, OwnerID: "u1",
		})
		require.NoError(t, err)

		require.NoError(t, stores.Categories.Delete(ctx, category.ID))

		// The task keeps the dangling reference.
		kept, err := stores.Tasks.FindByID(ctx, task.ID)
		require.NoError(t, err)
		require.Equal(t, []string{category.ID}, kept.CategoryIDs)
	})

	t.Run("UserEmailUnique", func(t *testing.T) {
		stores := factory(t)
		ctx := context.Background()

		created, err := stores.Users.Create(ctx, domain.CreateUserInput{
			Name: "Ada", Email: "ada@example.com", PasswordHash: "x",
		})
		require.NoError(t, err)

		_, err = stores.Users.Create(ctx, domain.CreateUserInput{
			Name: "Imposter", Email: "ada@example.com", PasswordHash: "y",
		})
		require.ErrorIs(t, err, domain.ErrEmailTaken)

		found, err := stores.Users.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, created.ID, found.ID)

		_, err = stores.Users.FindByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = stores.Users.FindByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
