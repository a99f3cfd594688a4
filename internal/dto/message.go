package dto

import (
	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/utils"
)

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID        uint64      `json:"id"`
	Sender    *StudentDTO `json:"sender,omitempty"`
	Recipient *StudentDTO `json:"recipient,omitempty"`
	Text      string      `json:"text"`
	Timestamp string      `json:"timestamp"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID,
		Text:      message.Text,
		Timestamp: utils.FormatDate(message.Timestamp),
	}

	if message.Sender != nil {
		sender := ToStudentDTO(*message.Sender)
		dto.Sender = &sender
	}

	if message.Recipient != nil {
		recipient := ToStudentDTO(*message.Recipient)
		dto.Recipient = &recipient
	}

	return dto
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = ToMessageDTO(m)
	}
	return dtos
}
