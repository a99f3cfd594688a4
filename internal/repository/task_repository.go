package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID with project and assignee populated. A dangling
// assignee reference leaves the relation pointer nil.
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Project.Students").
		Preload("AssignedStudent").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns all tasks with project and assignee populated
func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("AssignedStudent").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the full task record
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Project", "AssignedStudent").Save(task).Error
}

// UnassignStudentsNotIn clears assignees of the project's tasks whose student
// is not in keep
func (r *GormTaskRepository) UnassignStudentsNotIn(ctx context.Context, projectID uint64, keep []uint64) error {
	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("project_id = ? AND assigned_student_id IS NOT NULL", projectID)

	if len(keep) > 0 {
		query = query.Where("assigned_student_id NOT IN ?", keep)
	}

	return query.Update("assigned_student_id", nil).Error
}

// Delete removes a task and reports whether a record existed
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
