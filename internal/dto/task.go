package dto

import (
	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/utils"
)

// TaskDTO represents a task in API responses. The due date uses the same
// RFC3339 representation as project dates; the epoch-millisecond form of the
// predecessor API is gone.
type TaskDTO struct {
	ID              uint64        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Project         *ProjectDTO   `json:"project,omitempty"`
	AssignedStudent *StudentDTO   `json:"assigned_student,omitempty"`
	Status          models.Status `json:"status"`
	DueDate         string        `json:"due_date"`
}

// ToTaskDTO converts a Task model to TaskDTO. Dangling references are simply
// absent from the response.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     utils.FormatDate(task.DueDate),
	}

	if task.Project != nil {
		project := ToProjectDTO(*task.Project)
		dto.Project = &project
	}

	if task.AssignedStudent != nil {
		student := ToStudentDTO(*task.AssignedStudent)
		dto.AssignedStudent = &student
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
