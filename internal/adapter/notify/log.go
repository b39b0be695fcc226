package notify

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskvault/internal/core/ports"
)

// LogNotifier writes reminder events to the process log. A real deployment
// would swap in an email or push sink behind the same port.
type LogNotifier struct {
	logger *zap.Logger
}

var _ ports.ReminderNotifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, notification ports.ReminderNotification) error {
	dueDate := ""
	if notification.DueDate != nil {
		dueDate = notification.DueDate.Format(time.RFC3339)
	}

	n.logger.Info("task reminder",
		zap.String("task_id", notification.TaskID),
		zap.String("title", notification.Title),
		zap.String("due_date", dueDate),
		zap.String("priority", string(notification.Priority)),
		zap.String("status", string(notification.Status)),
		zap.String("categories", strings.Join(notification.Categories, ", ")),
	)
	return nil
}
