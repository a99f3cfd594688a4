package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/repository"
	"github.com/studenthub/studenthub-api/internal/utils"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrTitleRequired         = errors.New("title is required")
	ErrInvalidDate           = errors.New("invalid date format")
	ErrStartDateRequired     = errors.New("start date is required")
	ErrEndDateRequired       = errors.New("end date is required")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrUnknownRosterStudents = errors.New("one or more roster students do not exist")
)

// ProjectService handles project business rules. Roster changes keep task
// assignments consistent: a student removed from the roster is unassigned
// from the project's tasks.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	studentRepo repository.StudentRepository
	taskRepo    repository.TaskRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, studentRepo repository.StudentRepository, taskRepo repository.TaskRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		studentRepo: studentRepo,
		taskRepo:    taskRepo,
	}
}

// ListProjects returns all projects with rosters populated.
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a single project with its roster populated.
func (s *ProjectService) GetProject(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Title       string
	Description string
	Category    string
	StudentIDs  []uint64
	StartDate   string
	EndDate     string
}

// CreateProject creates a project with status Pending. End before start is
// accepted; ordering is left to the caller.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.StartDate == "" {
		return nil, ErrStartDateRequired
	}
	if input.EndDate == "" {
		return nil, ErrEndDateRequired
	}

	startDate, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	students, err := s.resolveRoster(ctx, input.StudentIDs)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Students:    students,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      models.StatusPending,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(ctx, project.ID)
}

// UpdateProjectInput holds the partial update for a project. Nil fields keep
// the stored value; a non-nil StudentIDs replaces the whole roster.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Category    *string
	StudentIDs  *[]uint64
	StartDate   *string
	EndDate     *string
	Status      *models.Status
}

// UpdateProject applies a partial merge update. Replacing the roster
// unassigns the project's tasks whose assignee is no longer on it.
func (s *ProjectService) UpdateProject(ctx context.Context, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	// Validate the roster before touching the record so a bad roster never
	// leaves a half-applied update behind.
	var roster []models.Student
	if input.StudentIDs != nil {
		students, err := s.resolveRoster(ctx, *input.StudentIDs)
		if err != nil {
			return nil, err
		}
		roster = students
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		project.Title = title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Category != nil {
		project.Category = *input.Category
	}
	if input.StartDate != nil {
		startDate, err := utils.ParseDate(*input.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		project.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, err := utils.ParseDate(*input.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		project.EndDate = endDate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		project.Status = *input.Status
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if input.StudentIDs != nil {
		if err := s.projectRepo.ReplaceRoster(ctx, project, roster); err != nil {
			return nil, fmt.Errorf("failed to replace roster: %w", err)
		}
		if err := s.taskRepo.UnassignStudentsNotIn(ctx, project.ID, *input.StudentIDs); err != nil {
			return nil, fmt.Errorf("failed to unassign removed students: %w", err)
		}
	}

	return s.projectRepo.FindByID(ctx, project.ID)
}

// DeleteProject removes a project. Nothing cascades; tasks keep their
// project reference, which then reads back as absent.
func (s *ProjectService) DeleteProject(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return deleted, nil
}

// resolveRoster loads the students for a roster and rejects unknown ids.
func (s *ProjectService) resolveRoster(ctx context.Context, studentIDs []uint64) ([]models.Student, error) {
	ids := uniqueUint64(studentIDs)

	students, err := s.studentRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster students: %w", err)
	}
	if len(students) != len(ids) {
		return nil, ErrUnknownRosterStudents
	}
	return students, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
