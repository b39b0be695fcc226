package service

import (
	"context"
	"sort"
	"time"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

const (
	upcomingWindowDays = 7
	upcomingLimit      = 10
)

type TaskService struct {
	tasks      ports.TaskStore
	categories ports.CategoryStore
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(tasks ports.TaskStore, categories ports.CategoryStore) *TaskService {
	return &TaskService{tasks: tasks, categories: categories}
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string, query domain.TaskListQuery) (*domain.TaskPage, error) {
	tasks, err := s.tasks.Find(ctx, ports.TaskFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	pageTasks, total, pages, page := applyTaskQuery(tasks, query)

	populated, err := s.populateAll(ctx, ownerID, pageTasks)
	if err != nil {
		return nil, err
	}

	return &domain.TaskPage{
		Tasks: populated,
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, id string) (*domain.PopulatedTask, error) {
	task, err := s.ownedTask(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, *task)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (*domain.PopulatedTask, error) {
	if err := domain.ValidateReminderDate(input.ReminderDate, input.DueDate); err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, *task)
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID, id string, input domain.UpdateTaskInput) (*domain.PopulatedTask, error) {
	existing, err := s.ownedTask(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// The invariant holds over the merged record, not the patch alone.
	reminderDate := existing.ReminderDate
	if input.ReminderDateSet {
		reminderDate = input.ReminderDate
	}
	dueDate := existing.DueDate
	if input.DueDateSet {
		dueDate = input.DueDate
	}
	if err := domain.ValidateReminderDate(reminderDate, dueDate); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, *task)
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, ownerID, id string, status domain.TaskStatus) (*domain.PopulatedTask, error) {
	if _, err := s.ownedTask(ctx, ownerID, id); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, domain.UpdateTaskInput{Status: &status})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, *task)
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	if _, err := s.ownedTask(ctx, ownerID, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) Statistics(ctx context.Context, ownerID string) (*domain.TaskStatistics, error) {
	tasks, err := s.tasks.Find(ctx, ports.TaskFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	stats := domain.TaskStatistics{
		Total: len(tasks),
		ByStatus: map[domain.TaskStatus]int{
			domain.TaskStatusPending:    0,
			domain.TaskStatusInProgress: 0,
			domain.TaskStatusCompleted:  0,
		},
		ByPriority: map[domain.TaskPriority]int{
			domain.TaskPriorityLow:    0,
			domain.TaskPriorityMedium: 0,
			domain.TaskPriorityHigh:   0,
		},
	}

	for _, task := range tasks {
		if _, known := stats.ByStatus[task.Status]; known {
			stats.ByStatus[task.Status]++
		}
		if _, known := stats.ByPriority[task.Priority]; known {
			stats.ByPriority[task.Priority]++
		}
	}

	return &stats, nil
}

func (s *TaskService) UpcomingTasks(ctx context.Context, ownerID string, now time.Time) ([]domain.PopulatedTask, error) {
	tasks, err := s.tasks.Find(ctx, ports.TaskFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := today.AddDate(0, 0, upcomingWindowDays)

	var upcoming []domain.Task
	for _, task := range tasks {
		if task.DueDate == nil || task.Status == domain.TaskStatusCompleted {
			continue
		}
		if task.DueDate.Before(today) || task.DueDate.After(horizon) {
			continue
		}
		upcoming = append(upcoming, task)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})

	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}

	return s.populateAll(ctx, ownerID, upcoming)
}

// ownedTask is the guard in front of every single-record operation: a
// missing id stays not-found, an id owned by someone else is forbidden.
func (s *TaskService) ownedTask(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, domain.ErrNotOwner
	}
	return task, nil
}

func (s *TaskService) populate(ctx context.Context, task domain.Task) (*domain.PopulatedTask, error) {
	populated, err := s.populateAll(ctx, task.OwnerID, []domain.Task{task})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// populateAll resolves category references against the owner's categories,
// fetched once for the whole batch. Dangling ids are dropped silently:
// category deletion does not cascade, so stale references are expected.
func (s *TaskService) populateAll(ctx context.Context, ownerID string, tasks []domain.Task) ([]domain.PopulatedTask, error) {
	populated := make([]domain.PopulatedTask, 0, len(tasks))

	var byID map[string]domain.Category
	for _, task := range tasks {
		summaries := []domain.CategorySummary{}
		if len(task.CategoryIDs) > 0 {
			if byID == nil {
				categories, err := s.categories.Find(ctx, ports.CategoryFilter{OwnerID: ownerID})
				if err != nil {
					return nil, err
				}
				byID = make(map[string]domain.Category, len(categories))
				for _, category := range categories {
					byID[category.ID] = category
				}
			}
			for _, id := range task.CategoryIDs {
				if category, ok := byID[id]; ok {
					summaries = append(summaries, category.Summary())
				}
			}
		}
		populated = append(populated, domain.PopulatedTask{Task: task, Categories: summaries})
	}

	return populated, nil
}
