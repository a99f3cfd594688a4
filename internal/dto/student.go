package dto

import (
	"github.com/studenthub/studenthub-api/internal/models"
)

// StudentDTO represents a student in API responses
type StudentDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	IsAdmin      bool   `json:"is_admin"`
	UniversityID string `json:"university_id,omitempty"`
}

// AuthPayloadDTO is the response of signUp and signIn
type AuthPayloadDTO struct {
	Token string     `json:"token"`
	User  StudentDTO `json:"user"`
}

// ToStudentDTO converts a Student model to StudentDTO
func ToStudentDTO(student models.Student) StudentDTO {
	return StudentDTO{
		ID:           student.ID,
		Name:         student.Name,
		IsAdmin:      student.IsAdmin,
		UniversityID: student.UniversityID,
	}
}

// ToStudentDTOs converts a slice of students
func ToStudentDTOs(students []models.Student) []StudentDTO {
	dtos := make([]StudentDTO, len(students))
	for i, s := range students {
		dtos[i] = ToStudentDTO(s)
	}
	return dtos
}
