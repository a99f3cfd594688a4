package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	SenderID    uint64         `gorm:"not null;index" json:"sender_id"`
	RecipientID uint64         `gorm:"not null;index" json:"recipient_id"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	Timestamp   time.Time      `gorm:"not null;index" json:"timestamp"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Sender    *Student `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *Student `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
