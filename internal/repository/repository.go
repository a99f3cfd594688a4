package repository

import (
	"context"

	"github.com/studenthub/studenthub-api/internal/models"
)

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	// Create creates a new student
	Create(ctx context.Context, student *models.Student) error

	// FindByID finds a student by ID
	FindByID(ctx context.Context, id uint64) (*models.Student, error)

	// FindByName finds a student by exact display name
	FindByName(ctx context.Context, name string) (*models.Student, error)

	// FindByIDs returns the students matching the given IDs
	FindByIDs(ctx context.Context, ids []uint64) ([]models.Student, error)

	// List returns all students
	List(ctx context.Context) ([]models.Student, error)

	// Update saves the full student record
	Update(ctx context.Context, student *models.Student) error

	// Delete removes a student and reports whether a record existed
	Delete(ctx context.Context, id uint64) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project; an attached roster is persisted with it
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID with its roster populated
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// List returns all projects with rosters populated
	List(ctx context.Context) ([]models.Project, error)

	// Update saves the full project record (roster excluded)
	Update(ctx context.Context, project *models.Project) error

	// ReplaceRoster replaces the project's assigned students
	ReplaceRoster(ctx context.Context, project *models.Project, students []models.Student) error

	// HasStudent reports whether the student is on the project's roster
	HasStudent(ctx context.Context, projectID, studentID uint64) (bool, error)

	// Delete removes a project and reports whether a record existed
	Delete(ctx context.Context, id uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with project and assignee populated
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List returns all tasks with project and assignee populated
	List(ctx context.Context) ([]models.Task, error)

	// Update saves the full task record
	Update(ctx context.Context, task *models.Task) error

	// UnassignStudentsNotIn clears assignees of the project's tasks whose
	// student is not in keep
	UnassignStudentsNotIn(ctx context.Context, projectID uint64, keep []uint64) error

	// Delete removes a task and reports whether a record existed
	Delete(ctx context.Context, id uint64) (bool, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(ctx context.Context, message *models.Message) error

	// FindByID finds a message by ID with participants populated
	FindByID(ctx context.Context, id uint64) (*models.Message, error)

	// List returns all messages with participants populated
	List(ctx context.Context) ([]models.Message, error)

	// ListBetween returns messages exchanged between two students in either
	// direction, ordered by timestamp ascending
	ListBetween(ctx context.Context, firstID, secondID uint64) ([]models.Message, error)

	// Update saves the full message record
	Update(ctx context.Context, message *models.Message) error

	// Delete removes a message and reports whether a record existed
	Delete(ctx context.Context, id uint64) (bool, error)
}
