package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project; an attached roster is persisted with it
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID with its roster populated
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Preload("Students").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns all projects with rosters populated
func (r *GormProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Preload("Students").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update saves the full project record. The roster association is managed
// separately through ReplaceRoster.
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Students").Save(project).Error
}

// ReplaceRoster replaces the project's assigned students
func (r *GormProjectRepository) ReplaceRoster(ctx context.Context, project *models.Project, students []models.Student) error {
	if err := r.db.WithContext(ctx).Model(project).Association("Students").Replace(students); err != nil {
		return err
	}
	project.Students = students
	return nil
}

// HasStudent reports whether the student is on the project's roster
func (r *GormProjectRepository) HasStudent(ctx context.Context, projectID, studentID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("project_students").
		Where("project_id = ? AND student_id = ?", projectID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a project and reports whether a record existed. Tasks that
// reference it keep their identifier; nothing cascades.
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
