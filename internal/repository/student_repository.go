package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/models"
)

// GormStudentRepository is a GORM implementation of StudentRepository
type GormStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &GormStudentRepository{db: db}
}

// Create creates a new student
func (r *GormStudentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// FindByID finds a student by ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uint64) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByName finds a student by exact display name
func (r *GormStudentRepository) FindByName(ctx context.Context, name string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByIDs returns the students matching the given IDs
func (r *GormStudentRepository) FindByIDs(ctx context.Context, ids []uint64) ([]models.Student, error) {
	if len(ids) == 0 {
		return []models.Student{}, nil
	}

	var students []models.Student
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// List returns all students
func (r *GormStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Update saves the full student record
func (r *GormStudentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// Delete removes a student and reports whether a record existed. References
// held by projects, tasks, and messages are left dangling on purpose.
func (r *GormStudentRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
