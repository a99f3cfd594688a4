package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/models"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID finds a message by ID with participants populated
func (r *GormMessageRepository) FindByID(ctx context.Context, id uint64) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// List returns all messages with participants populated
func (r *GormMessageRepository) List(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListBetween returns messages exchanged between two students in either
// direction, ordered by timestamp ascending
func (r *GormMessageRepository) ListBetween(ctx context.Context, firstID, secondID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			firstID, secondID, secondID, firstID).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Update saves the full message record
func (r *GormMessageRepository) Update(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Omit("Sender", "Recipient").Save(message).Error
}

// Delete removes a message and reports whether a record existed
func (r *GormMessageRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
