package service

import (
	"sort"
	"strings"
	"time"

	"taskvault/internal/core/domain"
)

const defaultPageSize = 20

// applyTaskQuery runs the in-memory query pipeline over an already
// owner-scoped set: field filters, search, date range, stable sort, then
// page slicing. It returns the page slice, the pre-slice total, the page
// count and the effective page number.
func applyTaskQuery(tasks []domain.Task, query domain.TaskListQuery) ([]domain.Task, int, int, int) {
	filtered := filterTasks(tasks, query)
	sortTasks(filtered, query.SortBy, query.Order)

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultPageSize
	}

	total := len(filtered)
	pages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return filtered[start:end], total, pages, page
}

func filterTasks(tasks []domain.Task, query domain.TaskListQuery) []domain.Task {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if query.Status != "" && task.Status != query.Status {
			continue
		}
		if query.Priority != "" && task.Priority != query.Priority {
			continue
		}
		if query.CategoryID != "" && !containsID(task.CategoryIDs, query.CategoryID) {
			continue
		}
		if query.Search != "" && !matchesSearch(task, query.Search) {
			continue
		}
		if (query.DueDateFrom != nil || query.DueDateTo != nil) && !inDueDateRange(task, query.DueDateFrom, query.DueDateTo) {
			continue
		}
		filtered = append(filtered, task)
	}
	return filtered
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func matchesSearch(task domain.Task, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(task.Title), needle) {
		return true
	}
	if task.Description != nil && strings.Contains(strings.ToLower(*task.Description), needle) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// inDueDateRange keeps tasks with a dueDate inside the inclusive window.
// Tasks without a dueDate are excluded whenever either bound is supplied.
func inDueDateRange(task domain.Task, from, to *time.Time) bool {
	if task.DueDate == nil {
		return false
	}
	if from != nil && task.DueDate.Before(*from) {
		return false
	}
	if to != nil && task.DueDate.After(*to) {
		return false
	}
	return true
}

// sortTasks sorts stably so equal keys keep their input order. Priority has
// its own rank: high over medium over low, not lexical.
func sortTasks(tasks []domain.Task, sortBy string, order domain.SortOrder) {
	less := taskLessFunc(sortBy)
	if order == domain.SortAsc {
		sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[j], tasks[i]) })
}

func taskLessFunc(sortBy string) func(a, b domain.Task) bool {
	switch sortBy {
	case "priority":
		return func(a, b domain.Task) bool {
			return domain.PriorityRank(a.Priority) < domain.PriorityRank(b.Priority)
		}
	case "title":
		return func(a, b domain.Task) bool { return a.Title < b.Title }
	case "status":
		return func(a, b domain.Task) bool { return a.Status < b.Status }
	case "dueDate":
		return func(a, b domain.Task) bool {
			return timeOrZero(a.DueDate).Before(timeOrZero(b.DueDate))
		}
	case "updatedAt":
		return func(a, b domain.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return func(a, b domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
