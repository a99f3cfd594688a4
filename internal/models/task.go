package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Description       string         `gorm:"type:text" json:"description"`
	ProjectID         *uint64        `json:"project_id"`
	AssignedStudentID *uint64        `json:"assigned_student_id"`
	Status            Status         `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	DueDate           time.Time      `gorm:"not null" json:"due_date"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations. Pointers stay nil when the reference is dangling, which is
	// how a deleted student surfaces on read.
	Project         *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedStudent *Student `gorm:"foreignKey:AssignedStudentID" json:"assigned_student,omitempty"`
}
