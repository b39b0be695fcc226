package ports

import (
	"context"
	"time"

	"taskvault/internal/core/domain"
)

// TaskFilter selects tasks by exact field match. Zero values mean "no
// constraint". Identifier fields are compared in canonical string form by
// every backend. There is no implicit ownership scoping here: callers that
// want owner-scoped results set OwnerID explicitly.
type TaskFilter struct {
	OwnerID    string
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	CategoryID string
}

// ReminderWindow is the inclusive [From, To] interval a scheduler sweep
// selects due reminders from.
type ReminderWindow struct {
	From time.Time
	To   time.Time
}

// TaskStore is the Record Store contract for tasks. The file and mongodb
// implementations must produce identical observable results for the same
// inputs and starting state.
type TaskStore interface {
	Find(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter TaskFilter) (int, error)

	// FindDueReminders returns tasks whose reminderDate falls inside the
	// window, reminderSent is false and status is not completed.
	FindDueReminders(ctx context.Context, window ReminderWindow) ([]domain.Task, error)
	// MarkReminderSent flips reminderSent to true. The transition is terminal.
	MarkReminderSent(ctx context.Context, id string) error
}

type CategoryFilter struct {
	OwnerID string
	Name    string
}

// CategoryStore is the Record Store contract for categories. Create and
// Update enforce (name, owner) uniqueness and report collisions as
// domain.ErrCategoryNameTaken.
type CategoryStore interface {
	Find(ctx context.Context, filter CategoryFilter) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, input domain.CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, input domain.UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter CategoryFilter) (int, error)
}

// UserStore holds account records. Create enforces email uniqueness and
// reports collisions as domain.ErrEmailTaken.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
}
