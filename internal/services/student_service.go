package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/auth"
	"github.com/studenthub/studenthub-api/internal/constants"
	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/repository"
)

// StudentService handles student queries and admin-gated mutations.
type StudentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo repository.StudentRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
	}
}

// ListStudents returns all students.
func (s *StudentService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// GetStudent returns a single student.
func (s *StudentService) GetStudent(ctx context.Context, id uint64) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return student, nil
}

// UpdateStudentInput holds the partial update for a student. Nil fields keep
// the stored value.
type UpdateStudentInput struct {
	Name         *string
	Password     *string
	IsAdmin      *bool
	UniversityID *string
}

// UpdateStudent applies a partial merge update. A supplied password is hashed
// before storage; a supplied name must stay unique.
func (s *StudentService) UpdateStudent(ctx context.Context, id uint64, input UpdateStudentInput) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		if name != student.Name {
			if existing, err := s.studentRepo.FindByName(ctx, name); err == nil && existing.ID != id {
				return nil, ErrNameTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check name: %w", err)
			}
		}
		student.Name = name
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		student.PasswordHash = hash
	}

	if input.IsAdmin != nil {
		student.IsAdmin = *input.IsAdmin
	}

	if input.UniversityID != nil {
		student.UniversityID = *input.UniversityID
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	return student, nil
}

// DeleteStudent removes a student. Deleting an unknown id is not an error;
// the result reports whether a record was removed. References elsewhere are
// left dangling and surface as absent on read.
func (s *StudentService) DeleteStudent(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete student: %w", err)
	}
	return deleted, nil
}
