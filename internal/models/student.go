package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	UniversityID string         `gorm:"type:varchar(100)" json:"university_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects      []Project `gorm:"many2many:project_students" json:"-"`
	AssignedTasks []Task    `gorm:"foreignKey:AssignedStudentID" json:"-"`
}
