package ports

import (
	"context"
	"time"

	"taskvault/internal/core/domain"
)

type TaskService interface {
	ListTasks(ctx context.Context, ownerID string, query domain.TaskListQuery) (*domain.TaskPage, error)
	GetTask(ctx context.Context, ownerID, id string) (*domain.PopulatedTask, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (*domain.PopulatedTask, error)
	UpdateTask(ctx context.Context, ownerID, id string, input domain.UpdateTaskInput) (*domain.PopulatedTask, error)
	UpdateTaskStatus(ctx context.Context, ownerID, id string, status domain.TaskStatus) (*domain.PopulatedTask, error)
	DeleteTask(ctx context.Context, ownerID, id string) error
	Statistics(ctx context.Context, ownerID string) (*domain.TaskStatistics, error)
	UpcomingTasks(ctx context.Context, ownerID string, now time.Time) ([]domain.PopulatedTask, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error)
	GetCategory(ctx context.Context, ownerID, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, input domain.CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, ownerID, id string, input domain.UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error
}

// AuthSession is what register and login hand back to the transport layer.
type AuthSession struct {
	Token string
	User  domain.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthSession, error)
	Login(ctx context.Context, email, password string) (*AuthSession, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
