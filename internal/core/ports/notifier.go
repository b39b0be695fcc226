package ports

import (
	"context"
	"time"

	"taskvault/internal/core/domain"
)

// ReminderNotification is the event emitted once per task when its reminder
// window comes due.
type ReminderNotification struct {
	TaskID     string
	Title      string
	DueDate    *time.Time
	Priority   domain.TaskPriority
	Status     domain.TaskStatus
	Categories []string
}

type ReminderNotifier interface {
	Notify(ctx context.Context, notification ReminderNotification) error
}
