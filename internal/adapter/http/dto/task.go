package dto

type TaskItem struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  *string       `json:"description,omitempty"`
	Status       string        `json:"status"`
	Priority     string        `json:"priority"`
	DueDate      *string       `json:"due_date,omitempty"`
	ReminderDate *string       `json:"reminder_date,omitempty"`
	ReminderSent bool          `json:"reminder_sent"`
	Categories   []CategoryRef `json:"categories"`
	Tags         []string      `json:"tags"`
	CompletedAt  *string       `json:"completed_at,omitempty"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  *string  `json:"description" binding:"omitempty,max=2000"`
	Status       *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority     *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate      *string  `json:"due_date" binding:"omitempty"`
	ReminderDate *string  `json:"reminder_date" binding:"omitempty"`
	Categories   []string `json:"categories" binding:"omitempty"`
	Tags         []string `json:"tags" binding:"omitempty"`
}

type UpdateTaskRequest struct {
	Title        *string  `json:"title" binding:"omitempty,max=200"`
	Description  *string  `json:"description" binding:"omitempty,max=2000"`
	Status       *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority     *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate      *string  `json:"due_date" binding:"omitempty"`
	ReminderDate *string  `json:"reminder_date" binding:"omitempty"`
	Categories   []string `json:"categories" binding:"omitempty"`
	Tags         []string `json:"tags" binding:"omitempty"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

type TaskListResponse struct {
	Count int        `json:"count"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
	Data  []TaskItem `json:"data"`
}

type TaskStatisticsResponse struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
}

type UpcomingTasksResponse struct {
	Count int        `json:"count"`
	Data  []TaskItem `json:"data"`
}
