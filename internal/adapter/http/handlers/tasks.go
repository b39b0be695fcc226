package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/adapter/http/mapper"
	"taskvault/internal/adapter/http/middleware"
	"taskvault/internal/adapter/http/validation"
	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
	"taskvault/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	query, err := validation.ParseTaskListQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	page, err := h.taskService.ListTasks(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	items := mapper.ToTaskItems(page.Tasks)
	c.JSON(http.StatusOK, dto.TaskListResponse{
		Count: len(items),
		Total: page.Total,
		Page:  page.Page,
		Pages: page.Pages,
		Data:  items,
	})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		h.renderTaskError(c, lang, err, apierrors.MsgFailGetTask, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(*task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(middleware.GetUserID(c), req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrReminderAfterDueDate) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgReminderAfterDueDate, lang),
			)
			return
		}
		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(*task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &req) != nil || json.Unmarshal(body, &raw) != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	// GetRawData skips ShouldBindJSON, so the binding tags must run here.
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, domain.ErrReminderAfterDueDate) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgReminderAfterDueDate, lang),
			)
			return
		}
		h.renderTaskError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(*task))
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskStatus, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(
		c.Request.Context(), middleware.GetUserID(c), c.Param("id"), domain.TaskStatus(req.Status),
	)
	if err != nil {
		h.renderTaskError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task status")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(*task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		h.renderTaskError(c, lang, err, apierrors.MsgFailDeleteTask, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{}})
}

func (h *TaskHandler) Statistics(c *gin.Context) {
	lang := middleware.GetLang(c)

	stats, err := h.taskService.Statistics(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		zap.L().Error("failed to compute task statistics", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTaskStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskStatistics(*stats))
}

func (h *TaskHandler) UpcomingTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	tasks, err := h.taskService.UpcomingTasks(c.Request.Context(), middleware.GetUserID(c), time.Now())
	if err != nil {
		zap.L().Error("failed to list upcoming tasks", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpcomingTasks, lang),
		)
		return
	}

	items := mapper.ToTaskItems(tasks)
	c.JSON(http.StatusOK, dto.UpcomingTasksResponse{Count: len(items), Data: items})
}

func (h *TaskHandler) renderTaskError(c *gin.Context, lang string, err error, failKey, logMessage string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgTaskForbidden, lang),
		)
	default:
		zap.L().Error(logMessage, zap.String("task_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
		)
	}
}
