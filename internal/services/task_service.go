package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/auth"
	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/repository"
	"github.com/studenthub/studenthub-api/internal/utils"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskNameRequired   = errors.New("task name is required")
	ErrDueDateRequired    = errors.New("due date is required")
	ErrInvalidDueDate     = errors.New("invalid due date format")
	ErrProjectRequired    = errors.New("project is required")
	ErrStudentNotOnRoster = errors.New("assigned student is not on the project's roster")
	// ErrNotTaskAssignee and ErrStatusOnlyUpdate gate non-admin updates: the
	// caller must be the task's assignee and may only change status.
	ErrNotTaskAssignee  = errors.New("only the assigned student can update this task")
	ErrStatusOnlyUpdate = errors.New("assigned students may only change the task status")
)

// TaskService handles task business rules, including the referential check
// that an assignee belongs to the task's project roster.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListTasks returns all tasks with relations populated.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with relations populated.
func (s *TaskService) GetTask(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Name              string
	Description       string
	ProjectID         uint64
	AssignedStudentID *uint64
	Status            *models.Status
	DueDate           string
}

// CreateTask creates a task. The due date is mandatory and must parse; a
// given assignee must be on the project's roster. Status defaults to Pending.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTaskNameRequired
	}
	if input.ProjectID == 0 {
		return nil, ErrProjectRequired
	}
	if input.DueDate == "" {
		return nil, ErrDueDateRequired
	}

	dueDate, err := utils.ParseDate(input.DueDate)
	if err != nil {
		return nil, ErrInvalidDueDate
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	status := models.StatusPending
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *input.Status
	}

	if input.AssignedStudentID != nil {
		if err := s.ensureOnRoster(ctx, input.ProjectID, *input.AssignedStudentID); err != nil {
			return nil, err
		}
	}

	projectID := input.ProjectID
	task := &models.Task{
		Name:              strings.TrimSpace(input.Name),
		Description:       input.Description,
		ProjectID:         &projectID,
		AssignedStudentID: input.AssignedStudentID,
		Status:            status,
		DueDate:           dueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// UpdateTaskInput holds the partial update for a task. Nil fields keep the
// stored value; Unassign clears the assignee.
type UpdateTaskInput struct {
	Name              *string
	Description       *string
	ProjectID         *uint64
	AssignedStudentID *uint64
	Unassign          bool
	Status            *models.Status
	DueDate           *string
}

// UpdateTask applies a partial merge update. Admins may change any field; a
// non-admin caller must be the task's assignee and may only change status.
func (s *TaskService) UpdateTask(ctx context.Context, identity auth.Identity, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !identity.IsAdmin {
		if task.AssignedStudentID == nil || *task.AssignedStudentID != identity.StudentID {
			return nil, ErrNotTaskAssignee
		}
		if input.Name != nil || input.Description != nil || input.ProjectID != nil ||
			input.AssignedStudentID != nil || input.Unassign || input.DueDate != nil {
			return nil, ErrStatusOnlyUpdate
		}
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		dueDate, err := utils.ParseDate(*input.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		task.DueDate = dueDate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		task.ProjectID = input.ProjectID
	}

	switch {
	case input.Unassign:
		task.AssignedStudentID = nil
	case input.AssignedStudentID != nil:
		task.AssignedStudentID = input.AssignedStudentID
	}

	// Re-check the roster whenever the project or assignee changed.
	if (input.ProjectID != nil || input.AssignedStudentID != nil) &&
		task.ProjectID != nil && task.AssignedStudentID != nil {
		if err := s.ensureOnRoster(ctx, *task.ProjectID, *task.AssignedStudentID); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return deleted, nil
}

// ensureOnRoster verifies that a student belongs to a project's roster.
func (s *TaskService) ensureOnRoster(ctx context.Context, projectID, studentID uint64) error {
	onRoster, err := s.projectRepo.HasStudent(ctx, projectID, studentID)
	if err != nil {
		return fmt.Errorf("failed to check roster: %w", err)
	}
	if !onRoster {
		return ErrStudentNotOnRoster
	}
	return nil
}
