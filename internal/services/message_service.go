package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/dto"
	"github.com/studenthub/studenthub-api/internal/models"
	"github.com/studenthub/studenthub-api/internal/realtime"
	"github.com/studenthub/studenthub-api/internal/repository"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrTextRequired    = errors.New("message text is required")
	// ErrParticipantNotFound is raised before anything is written, so a
	// failed participant check never leaves a partial record.
	ErrParticipantNotFound = errors.New("sender or recipient not found")
)

// MessageService handles chat messages and their fan-out to subscribers.
type MessageService struct {
	messageRepo repository.MessageRepository
	studentRepo repository.StudentRepository
	hub         *realtime.Hub
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, studentRepo repository.StudentRepository, hub *realtime.Hub) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		studentRepo: studentRepo,
		hub:         hub,
	}
}

// ListMessages returns all messages with participants populated.
func (s *MessageService) ListMessages(ctx context.Context) ([]models.Message, error) {
	messages, err := s.messageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Conversation returns the union of messages sent in both directions between
// two students, ordered by timestamp ascending. Argument order is irrelevant.
func (s *MessageService) Conversation(ctx context.Context, firstID, secondID uint64) ([]models.Message, error) {
	messages, err := s.messageRepo.ListBetween(ctx, firstID, secondID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return messages, nil
}

// CreateMessageInput represents input for creating a message.
type CreateMessageInput struct {
	SenderID    uint64
	RecipientID uint64
	Text        string
}

// CreateMessage validates that both participants exist, persists the message,
// and publishes it to subscribers of the recipient. The participant check
// runs before the write; the check-then-insert window is an accepted race.
func (s *MessageService) CreateMessage(ctx context.Context, input CreateMessageInput) (*models.Message, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrTextRequired
	}

	for _, id := range []uint64{input.SenderID, input.RecipientID} {
		if _, err := s.studentRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParticipantNotFound
			}
			return nil, fmt.Errorf("failed to verify participant: %w", err)
		}
	}

	message := &models.Message{
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Text:        input.Text,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	populated, err := s.messageRepo.FindByID(ctx, message.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load message: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish(populated.RecipientID, dto.ToMessageDTO(*populated))
	}

	return populated, nil
}

// UpdateMessageText replaces the text of an existing message.
func (s *MessageService) UpdateMessageText(ctx context.Context, id uint64, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	message.Text = text
	if err := s.messageRepo.Update(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}

	return message, nil
}

// DeleteMessage removes a message.
func (s *MessageService) DeleteMessage(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.messageRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	return deleted, nil
}
