package validation

import (
	"net/url"
	"strconv"

	"taskvault/internal/core/domain"
)

// ParseTaskListQuery translates list query parameters into a typed query.
// Unknown sort fields fall back to createdAt inside the query engine; bad
// page numbers are rejected here.
func ParseTaskListQuery(values url.Values) (domain.TaskListQuery, error) {
	query := domain.TaskListQuery{
		Status:     domain.TaskStatus(values.Get("status")),
		Priority:   domain.TaskPriority(values.Get("priority")),
		CategoryID: values.Get("category"),
		Search:     values.Get("search"),
		SortBy:     values.Get("sortBy"),
		Order:      domain.SortDesc,
		Page:       1,
		Limit:      0,
	}

	if query.SortBy == "" {
		query.SortBy = "createdAt"
	}
	if values.Get("order") == string(domain.SortAsc) {
		query.Order = domain.SortAsc
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return domain.TaskListQuery{}, ErrInvalidTaskPayload
		}
		query.Page = page
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return domain.TaskListQuery{}, ErrInvalidTaskPayload
		}
		query.Limit = limit
	}

	var err error
	from := values.Get("dueDateFrom")
	if from != "" {
		if query.DueDateFrom, err = parseOptionalDate(&from); err != nil {
			return domain.TaskListQuery{}, ErrInvalidTaskPayload
		}
	}
	to := values.Get("dueDateTo")
	if to != "" {
		if query.DueDateTo, err = parseOptionalDate(&to); err != nil {
			return domain.TaskListQuery{}, ErrInvalidTaskPayload
		}
	}

	return query, nil
}
