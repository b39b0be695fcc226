package mapper

import (
	"time"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/core/domain"
)

func ToTaskItems(tasks []domain.PopulatedTask) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.PopulatedTask) dto.TaskItem {
	item := dto.TaskItem{
		ID:           task.ID,
		Title:        task.Title,
		Status:       string(task.Status),
		Priority:     string(task.Priority),
		ReminderSent: task.ReminderSent,
		Categories:   toCategoryRefs(task.Categories),
		Tags:         task.Tags,
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}
	item.DueDate = formatTime(task.DueDate)
	item.ReminderDate = formatTime(task.ReminderDate)
	item.CompletedAt = formatTime(task.CompletedAt)

	if item.Tags == nil {
		item.Tags = []string{}
	}

	return item
}

func toCategoryRefs(categories []domain.CategorySummary) []dto.CategoryRef {
	refs := make([]dto.CategoryRef, 0, len(categories))
	for _, category := range categories {
		refs = append(refs, dto.CategoryRef{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
		})
	}
	return refs
}

func ToTaskStatistics(stats domain.TaskStatistics) dto.TaskStatisticsResponse {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	byPriority := make(map[string]int, len(stats.ByPriority))
	for priority, count := range stats.ByPriority {
		byPriority[string(priority)] = count
	}

	return dto.TaskStatisticsResponse{
		Total:      stats.Total,
		ByStatus:   byStatus,
		ByPriority: byPriority,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	value := t.Format(time.RFC3339)
	return &value
}
