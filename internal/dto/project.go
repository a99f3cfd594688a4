package dto

import (
	"time"

	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/utils"
)

// ProjectDTO represents a project in API responses. Dates are RFC3339 UTC
// strings; progress is derived from elapsed time, never read from storage.
type ProjectDTO struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Students    []StudentDTO  `json:"students"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Status      models.Status `json:"status"`
	Progress    int           `json:"progress"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Category:    project.Category,
		Students:    ToStudentDTOs(project.Students),
		StartDate:   utils.FormatDate(project.StartDate),
		EndDate:     utils.FormatDate(project.EndDate),
		Status:      project.Status,
		Progress:    projectProgress(project, time.Now()),
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// projectProgress computes the elapsed fraction of the start-end window as a
// percentage, clamped to [0, 100]. Completed projects report 100.
func projectProgress(project models.Project, now time.Time) int {
	if project.Status == models.StatusCompleted {
		return 100
	}

	window := project.EndDate.Sub(project.StartDate)
	if window <= 0 {
		return 0
	}

	elapsed := now.Sub(project.StartDate)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= window {
		return 100
	}

	// Float math: duration-in-nanoseconds arithmetic overflows int64 once
	// elapsed*100 passes roughly three years.
	return int(elapsed.Seconds() * 100 / window.Seconds())
}
