package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// PriorityRank orders priorities for sorting. Unknown values rank below low.
func PriorityRank(p TaskPriority) int {
	switch p {
	case TaskPriorityHigh:
		return 3
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 1
	}
	return 0
}

type Task struct {
	ID           string
	Title        string
	Description  *string
	Status       TaskStatus
	Priority     TaskPriority
	DueDate      *time.Time
	ReminderDate *time.Time
	ReminderSent bool
	CategoryIDs  []string
	Tags         []string
	CompletedAt  *time.Time
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateTaskInput struct {
	Title        string
	Description  *string
	Status       TaskStatus
	Priority     TaskPriority
	DueDate      *time.Time
	ReminderDate *time.Time
	CategoryIDs  []string
	Tags         []string
	OwnerID      string
}

// UpdateTaskInput is a partial patch. Nullable fields carry a Set flag so a
// JSON null can clear the stored value while an absent field leaves it alone.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	DescriptionSet  bool
	Status          *TaskStatus
	Priority        *TaskPriority
	DueDate         *time.Time
	DueDateSet      bool
	ReminderDate    *time.Time
	ReminderDateSet bool
	CategoryIDs     []string
	CategoryIDsSet  bool
	Tags            []string
	TagsSet         bool
}

// DeriveCompletedAt keeps completedAt consistent with status: stamped once on
// the transition to completed, cleared whenever the task is not completed.
func DeriveCompletedAt(status TaskStatus, current *time.Time, now time.Time) *time.Time {
	if status != TaskStatusCompleted {
		return nil
	}
	if current != nil {
		return current
	}
	stamp := now
	return &stamp
}

// ValidateReminderDate rejects a reminder scheduled after the due date. Either
// value may be nil, in which case there is nothing to check.
func ValidateReminderDate(reminderDate, dueDate *time.Time) error {
	if reminderDate == nil || dueDate == nil {
		return nil
	}
	if reminderDate.After(*dueDate) {
		return ErrReminderAfterDueDate
	}
	return nil
}

// PopulatedTask is a task whose category references have been resolved to
// summaries owned by the same user. Dangling references are dropped.
type PopulatedTask struct {
	Task
	Categories []CategorySummary
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type TaskListQuery struct {
	Status      TaskStatus
	Priority    TaskPriority
	CategoryID  string
	Search      string
	SortBy      string
	Order       SortOrder
	Page        int
	Limit       int
	DueDateFrom *time.Time
	DueDateTo   *time.Time
}

type TaskPage struct {
	Tasks []PopulatedTask
	Total int
	Page  int
	Pages int
}

type TaskStatistics struct {
	Total      int
	ByStatus   map[TaskStatus]int
	ByPriority map[TaskPriority]int
}
