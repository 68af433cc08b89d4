package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yapyap/backend/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository abstracts message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	Get(ctx context.Context, id uint) (models.ChatMessage, error)
	ListForChat(ctx context.Context, chatID uint) ([]models.ChatMessage, error)
	ListForGroup(ctx context.Context, groupID uint) ([]models.ChatMessage, error)
	UpdateBody(ctx context.Context, id uint, body string) error
	Delete(ctx context.Context, id uint) error
}

// MessageRepo is a gorm implementation of MessageRepository.
type MessageRepo struct {
	db *gorm.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create inserts the message. CreatedAt is assigned by the store and never
// changes afterwards.
func (r *MessageRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// Get fetches a message by id.
func (r *MessageRepo) Get(ctx context.Context, id uint) (models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.WithContext(ctx).First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ChatMessage{}, ErrMessageNotFound
	}
	return message, err
}

// ListForChat returns the chat's messages oldest first, with senders loaded.
func (r *MessageRepo) ListForChat(ctx context.Context, chatID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// ListForGroup returns the group's messages oldest first, with senders loaded.
func (r *MessageRepo) ListForGroup(ctx context.Context, groupID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// UpdateBody replaces the message body. Last writer wins.
func (r *MessageRepo) UpdateBody(ctx context.Context, id uint, body string) error {
	return r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("id = ?", id).
		Update("body", body).Error
}

// Delete removes the message row.
func (r *MessageRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ChatMessage{}, id).Error
}
