package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// Dates are accepted as full RFC 3339 timestamps or bare dates.
var taskDateLayouts = []string{time.RFC3339, "2006-01-02"}

func BuildCreateTaskInput(ownerID string, req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		CategoryIDs: req.Categories,
		Tags:        req.Tags,
		OwnerID:     ownerID,
	}

	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}

	var err error
	if input.DueDate, err = parseOptionalDate(req.DueDate); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if input.ReminderDate, err = parseOptionalDate(req.ReminderDate); err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return input, nil
}

// BuildUpdateTaskInput distinguishes absent fields from explicit nulls using
// the raw message map: an absent field is left alone, a null clears the
// stored value.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if len(raw) == 0 {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = &title
	}

	if hasJSONField(raw, "description") {
		input.DescriptionSet = true
		input.Description = req.Description
	}

	if hasJSONField(raw, "status") {
		if req.Status == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	if hasJSONField(raw, "due_date") {
		input.DueDateSet = true
		if !isJSONNull(raw["due_date"]) {
			dueDate, err := parseOptionalDate(req.DueDate)
			if err != nil || dueDate == nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			input.DueDate = dueDate
		}
	}

	if hasJSONField(raw, "reminder_date") {
		input.ReminderDateSet = true
		if !isJSONNull(raw["reminder_date"]) {
			reminderDate, err := parseOptionalDate(req.ReminderDate)
			if err != nil || reminderDate == nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			input.ReminderDate = reminderDate
		}
	}

	if hasJSONField(raw, "categories") {
		input.CategoryIDsSet = true
		input.CategoryIDs = req.Categories
	}

	if hasJSONField(raw, "tags") {
		input.TagsSet = true
		input.Tags = req.Tags
	}

	return input, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	for _, layout := range taskDateLayouts {
		if parsed, err := time.Parse(layout, *value); err == nil {
			return &parsed, nil
		}
	}
	return nil, ErrInvalidTaskPayload
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
