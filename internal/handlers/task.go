package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/studenthub-api/internal/dto"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
	"github.com/studenthub/studenthub-api/internal/middleware"
	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns all tasks with relations populated.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task with relations populated.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task. Any authenticated caller may create tasks; the
// admin gate applies to deletion, not creation.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name              string         `json:"name" binding:"required"`
		Description       string         `json:"description"`
		ProjectID         uint64         `json:"project_id" binding:"required"`
		AssignedStudentID *uint64        `json:"assigned_student_id"`
		Status            *models.Status `json:"status"`
		DueDate           string         `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Name:              req.Name,
		Description:       req.Description,
		ProjectID:         req.ProjectID,
		AssignedStudentID: req.AssignedStudentID,
		Status:            req.Status,
		DueDate:           req.DueDate,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Admins may change any field; the
// task's assignee may only change status.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthenticated(c)
		return
	}

	type UpdateTaskRequest struct {
		Name              *string        `json:"name"`
		Description       *string        `json:"description"`
		ProjectID         *uint64        `json:"project_id"`
		AssignedStudentID *uint64        `json:"assigned_student_id"`
		Unassign          bool           `json:"unassign"`
		Status            *models.Status `json:"status"`
		DueDate           *string        `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), identity, id, services.UpdateTaskInput{
		Name:              req.Name,
		Description:       req.Description,
		ProjectID:         req.ProjectID,
		AssignedStudentID: req.AssignedStudentID,
		Unassign:          req.Unassign,
		Status:            req.Status,
		DueDate:           req.DueDate,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.taskService.DeleteTask(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
