package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yapyap/backend/internal/models"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRepository abstracts chat persistence.
type ChatRepository interface {
	Get(ctx context.Context, chatID uint) (models.Chat, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Chat, error)
	CreateOrGet(ctx context.Context, userID, otherID uint) (models.Chat, error)
}

// ChatRepo is a gorm implementation of ChatRepository.
type ChatRepo struct {
	db *gorm.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *gorm.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// Get fetches a chat by id.
func (r *ChatRepo) Get(ctx context.Context, chatID uint) (models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Chat{}, ErrChatNotFound
	}
	return chat, err
}

// ListForUser returns every chat the user participates in.
func (r *ChatRepo) ListForUser(ctx context.Context, userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&chats).Error
	return chats, err
}

// CreateOrGet returns the chat between the two users, creating it if none
// exists. The pair is stored with the lower id first so lookups are
// order-independent.
func (r *ChatRepo) CreateOrGet(ctx context.Context, userID, otherID uint) (models.Chat, error) {
	one, two := userID, otherID
	if one > two {
		one, two = two, one
	}

	var chat models.Chat
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? AND user_two_id = ?", one, two).
		First(&chat).Error
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Chat{}, err
	}

	chat = models.Chat{UserOneID: one, UserTwoID: two}
	if err := r.db.WithContext(ctx).Create(&chat).Error; err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}
