package file

import (
	"context"
	"slices"
	"sync"
	"time"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

const tasksFileName = "tasks.json"

type taskRecord struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ReminderDate *time.Time `json:"reminderDate,omitempty"`
	ReminderSent bool       `json:"reminderSent"`
	Categories   []string   `json:"categories"`
	Tags         []string   `json:"tags"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	User         string     `json:"user"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type TaskStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.TaskStore = (*TaskStore)(nil)

func NewTaskStore(dataDir string) (*TaskStore, error) {
	path, err := ensureDataFile(dataDir, tasksFileName)
	if err != nil {
		return nil, err
	}
	return &TaskStore{path: path}, nil
}

func (s *TaskStore) Find(_ context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, record := range records {
		if matchTask(record, filter) {
			tasks = append(tasks, record.toDomain())
		}
	}
	return tasks, nil
}

func (s *TaskStore) FindByID(_ context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.ID == id {
			task := record.toDomain()
			return &task, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (s *TaskStore) Create(_ context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	record := taskRecord{
		ID:           newID(),
		Title:        input.Title,
		Description:  input.Description,
		Status:       string(status),
		Priority:     string(priority),
		DueDate:      input.DueDate,
		ReminderDate: input.ReminderDate,
		ReminderSent: false,
		Categories:   normalizeSlice(input.CategoryIDs),
		Tags:         normalizeSlice(input.Tags),
		CompletedAt:  domain.DeriveCompletedAt(status, nil, now),
		User:         input.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	records = append(records, record)
	if err := writeCollection(s.path, records); err != nil {
		return nil, err
	}

	task := record.toDomain()
	return &task, nil
}

func (s *TaskStore) Update(_ context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	index := slices.IndexFunc(records, func(r taskRecord) bool { return r.ID == id })
	if index == -1 {
		return nil, domain.ErrTaskNotFound
	}

	record := records[index]
	now := time.Now().UTC()

	if input.Title != nil {
		record.Title = *input.Title
	}
	if input.DescriptionSet {
		record.Description = input.Description
	}
	if input.Status != nil {
		record.Status = string(*input.Status)
	}
	if input.Priority != nil {
		record.Priority = string(*input.Priority)
	}
	if input.DueDateSet {
		record.DueDate = input.DueDate
	}
	if input.ReminderDateSet {
		record.ReminderDate = input.ReminderDate
	}
	if input.CategoryIDsSet {
		record.Categories = normalizeSlice(input.CategoryIDs)
	}
	if input.TagsSet {
		record.Tags = normalizeSlice(input.Tags)
	}

	record.UpdatedAt = now
	record.CompletedAt = domain.DeriveCompletedAt(domain.TaskStatus(record.Status), record.CompletedAt, now)

	records[index] = record
	if err := writeCollection(s.path, records); err != nil {
		return nil, err
	}

	task := record.toDomain()
	return &task, nil
}

func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	remaining := slices.DeleteFunc(records, func(r taskRecord) bool { return r.ID == id })
	if len(remaining) == len(records) {
		return domain.ErrTaskNotFound
	}

	return writeCollection(s.path, remaining)
}

func (s *TaskStore) Count(ctx context.Context, filter ports.TaskFilter) (int, error) {
	tasks, err := s.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (s *TaskStore) FindDueReminders(_ context.Context, window ports.ReminderWindow) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	var due []domain.Task
	for _, record := range records {
		if record.ReminderSent || record.ReminderDate == nil {
			continue
		}
		if record.Status == string(domain.TaskStatusCompleted) {
			continue
		}
		if record.ReminderDate.Before(window.From) || record.ReminderDate.After(window.To) {
			continue
		}
		due = append(due, record.toDomain())
	}
	return due, nil
}

func (s *TaskStore) MarkReminderSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	index := slices.IndexFunc(records, func(r taskRecord) bool { return r.ID == id })
	if index == -1 {
		return domain.ErrTaskNotFound
	}

	records[index].ReminderSent = true
	return writeCollection(s.path, records)
}

func (s *TaskStore) load() ([]taskRecord, error) {
	var records []taskRecord
	if err := readCollection(s.path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func matchTask(record taskRecord, filter ports.TaskFilter) bool {
	if filter.OwnerID != "" && record.User != filter.OwnerID {
		return false
	}
	if filter.Status != "" && record.Status != string(filter.Status) {
		return false
	}
	if filter.Priority != "" && record.Priority != string(filter.Priority) {
		return false
	}
	if filter.CategoryID != "" && !slices.Contains(record.Categories, filter.CategoryID) {
		return false
	}
	return true
}

func normalizeSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}

func (r taskRecord) toDomain() domain.Task {
	return domain.Task{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Status:       domain.TaskStatus(r.Status),
		Priority:     domain.TaskPriority(r.Priority),
		DueDate:      r.DueDate,
		ReminderDate: r.ReminderDate,
		ReminderSent: r.ReminderSent,
		CategoryIDs:  slices.Clone(r.Categories),
		Tags:         slices.Clone(r.Tags),
		CompletedAt:  r.CompletedAt,
		OwnerID:      r.User,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
