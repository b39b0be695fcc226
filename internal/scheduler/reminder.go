package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

// ReminderScheduler sweeps the task store on a fixed interval and fires one
// notification per due reminder. A reminder is sent at most once: the
// reminderSent flag is terminal, even if the dates are edited afterwards.
// The window only looks forward, so a reminder whose window passed while the
// process was down is never retried.
type ReminderScheduler struct {
	tasks      ports.TaskStore
	categories ports.CategoryStore
	notifier   ports.ReminderNotifier
	interval   time.Duration
}

func New(tasks ports.TaskStore, categories ports.CategoryStore, notifier ports.ReminderNotifier, interval time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		tasks:      tasks,
		categories: categories,
		notifier:   notifier,
		interval:   interval,
	}
}

// Run blocks until ctx is cancelled. A failed sweep is logged and the next
// tick proceeds normally.
func (s *ReminderScheduler) Run(ctx context.Context) {
	zap.L().Info("reminder scheduler started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				zap.L().Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep selects tasks whose reminder falls inside [now, now+interval], marks
// each sent and emits its notification.
func (s *ReminderScheduler) Sweep(ctx context.Context) error {
	now := time.Now()
	window := ports.ReminderWindow{From: now, To: now.Add(s.interval)}

	due, err := s.tasks.FindDueReminders(ctx, window)
	if err != nil {
		return err
	}

	categoriesByOwner := make(map[string]map[string]domain.Category)

	for _, task := range due {
		// Mark before notifying so a flaky sink cannot cause a re-send.
		if err := s.tasks.MarkReminderSent(ctx, task.ID); err != nil {
			zap.L().Error("failed to mark reminder sent",
				zap.String("task_id", task.ID), zap.Error(err))
			continue
		}

		names, err := s.categoryNames(ctx, task, categoriesByOwner)
		if err != nil {
			zap.L().Warn("failed to resolve category names for reminder",
				zap.String("task_id", task.ID), zap.Error(err))
		}

		notification := ports.ReminderNotification{
			TaskID:     task.ID,
			Title:      task.Title,
			DueDate:    task.DueDate,
			Priority:   task.Priority,
			Status:     task.Status,
			Categories: names,
		}
		if err := s.notifier.Notify(ctx, notification); err != nil {
			zap.L().Error("failed to deliver reminder notification",
				zap.String("task_id", task.ID), zap.Error(err))
		}
	}

	if len(due) > 0 {
		zap.L().Info("processed reminders", zap.Int("count", len(due)))
	}
	return nil
}

func (s *ReminderScheduler) categoryNames(ctx context.Context, task domain.Task, cache map[string]map[string]domain.Category) ([]string, error) {
	if len(task.CategoryIDs) == 0 {
		return nil, nil
	}

	byID, ok := cache[task.OwnerID]
	if !ok {
		categories, err := s.categories.Find(ctx, ports.CategoryFilter{OwnerID: task.OwnerID})
		if err != nil {
			return nil, err
		}
		byID = make(map[string]domain.Category, len(categories))
		for _, category := range categories {
			byID[category.ID] = category
		}
		cache[task.OwnerID] = byID
	}

	var names []string
	for _, id := range task.CategoryIDs {
		if category, ok := byID[id]; ok {
			names = append(names, category.Name)
		}
	}
	return names, nil
}
