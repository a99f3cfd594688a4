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

var (
	ErrNameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown name and a wrong password
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrStudentNotFound    = errors.New("student not found")
)

// AuthService handles sign-up, sign-in, and identity lookups.
type AuthService struct {
	studentRepo repository.StudentRepository
	tokens      *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(studentRepo repository.StudentRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		tokens:      tokens,
	}
}

// SignUpInput represents the required information to create a new student.
type SignUpInput struct {
	Name         string
	Password     string
	IsAdmin      bool
	UniversityID string
}

// SignUp creates a new student and issues a session token. Name uniqueness is
// a case-sensitive exact match.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*models.Student, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, "", ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.studentRepo.FindByName(ctx, name); err == nil {
		return nil, "", ErrNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check name: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      input.IsAdmin,
		UniversityID: input.UniversityID,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		// The unique index still covers soft-deleted rows, so a name freed
		// by a delete surfaces here rather than in the precheck.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrNameTaken
		}
		return nil, "", fmt.Errorf("failed to create student: %w", err)
	}

	token, err := s.tokens.Issue(student.ID, student.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return student, token, nil
}

// SignIn verifies credentials and issues a session token.
func (s *AuthService) SignIn(ctx context.Context, name, password string) (*models.Student, string, error) {
	student, err := s.studentRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find student: %w", err)
	}

	if !auth.CheckPassword(password, student.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(student.ID, student.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return student, token, nil
}

// GetStudent retrieves a student by ID.
func (s *AuthService) GetStudent(ctx context.Context, id uint64) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return student, nil
}
