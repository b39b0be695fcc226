package validation

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/core/domain"
)

func buildUpdateInput(t *testing.T, body string) (domain.UpdateTaskInput, error) {
	t.Helper()

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return BuildUpdateTaskInput(req, raw)
}

func TestBuildUpdateTaskInputAbsentVersusNull(t *testing.T) {
	input, err := buildUpdateInput(t, `{"title":"New title"}`)
	require.NoError(t, err)
	require.NotNil(t, input.Title)
	require.False(t, input.DueDateSet)
	require.False(t, input.DescriptionSet)

	input, err = buildUpdateInput(t, `{"due_date":null,"description":null}`)
	require.NoError(t, err)
	require.Nil(t, input.Title)
	require.True(t, input.DueDateSet)
	require.Nil(t, input.DueDate)
	require.True(t, input.DescriptionSet)
	require.Nil(t, input.Description)

	input, err = buildUpdateInput(t, `{"due_date":"2026-09-20"}`)
	require.NoError(t, err)
	require.True(t, input.DueDateSet)
	require.NotNil(t, input.DueDate)
}

func TestBuildUpdateTaskInputRejectsBadValues(t *testing.T) {
	_, err := buildUpdateInput(t, `{}`)
	require.ErrorIs(t, err, ErrInvalidTaskPayload)

	_, err = buildUpdateInput(t, `{"title":null}`)
	require.ErrorIs(t, err, ErrInvalidTaskPayload)

	_, err = buildUpdateInput(t, `{"title":"   "}`)
	require.ErrorIs(t, err, ErrInvalidTaskPayload)

	_, err = buildUpdateInput(t, `{"due_date":"not a date"}`)
	require.ErrorIs(t, err, ErrInvalidTaskPayload)

	_, err = buildUpdateInput(t, `{"status":null}`)
	require.ErrorIs(t, err, ErrInvalidTaskPayload)
}

func TestBuildCreateTaskInputDateLayouts(t *testing.T) {
	full := "2026-09-20T12:30:00Z"
	bare := "2026-09-21"

	input, err := BuildCreateTaskInput("u1", dto.CreateTaskRequest{
		Title:        "  Padded title  ",
		DueDate:      &full,
		ReminderDate: &bare,
	})
	require.NoError(t, err)
	require.Equal(t, "Padded title", input.Title)
	require.Equal(t, "u1", input.OwnerID)
	require.NotNil(t, input.DueDate)
	require.Equal(t, 12, input.DueDate.Hour())
	require.NotNil(t, input.ReminderDate)
	require.Equal(t, 21, input.ReminderDate.Day())
}

func TestParseTaskListQueryDefaultsAndErrors(t *testing.T) {
	query, err := ParseTaskListQuery(url.Values{})
	require.NoError(t, err)
	require.Equal(t, "createdAt", query.SortBy)
	require.Equal(t, domain.SortDesc, query.Order)
	require.Equal(t, 1, query.Page)

	query, err = ParseTaskListQuery(url.Values{
		"status":      {"pending"},
		"order":       {"asc"},
		"page":        {"3"},
		"limit":       {"5"},
		"dueDateFrom": {"2026-09-01"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusPending, query.Status)
	require.Equal(t, domain.SortAsc, query.Order)
	require.Equal(t, 3, query.Page)
	require.Equal(t, 5, query.Limit)
	require.NotNil(t, query.DueDateFrom)

	_, err = ParseTaskListQuery(url.Values{"page": {"0"}})
	require.ErrorIs(t, err, ErrInvalidTaskPayload)

	_, err = ParseTaskListQuery(url.Values{"limit": {"abc"}})
	require.ErrorIs(t, err, ErrInvalidTaskPayload)

	_, err = ParseTaskListQuery(url.Values{"dueDateTo": {"whenever"}})
	require.ErrorIs(t, err, ErrInvalidTaskPayload)
}
