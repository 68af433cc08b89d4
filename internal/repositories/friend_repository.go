package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yapyap/backend/internal/models"
)

var ErrFriendshipNotFound = errors.New("friendship not found")

// FriendRepository abstracts friendship persistence.
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	Get(ctx context.Context, id uint) (models.Friendship, error)
	FindBetween(ctx context.Context, userA, userB uint) (models.Friendship, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Friendship, error)
	Delete(ctx context.Context, id uint) error
}

// FriendRepo is a gorm implementation of FriendRepository.
type FriendRepo struct {
	db *gorm.DB
}

// NewFriendRepo constructs a FriendRepo.
func NewFriendRepo(db *gorm.DB) *FriendRepo {
	return &FriendRepo{db: db}
}

// Create inserts a friendship edge.
func (r *FriendRepo) Create(ctx context.Context, friendship *models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

// Get fetches a friendship by id with both users preloaded.
func (r *FriendRepo) Get(ctx context.Context, id uint) (models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Preload("UserOne").
		Preload("UserTwo").
		First(&friendship, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Friendship{}, ErrFriendshipNotFound
	}
	return friendship, err
}

// FindBetween resolves the friendship between two users regardless of the
// order the pair was stored in.
func (r *FriendRepo) FindBetween(ctx context.Context, userA, userB uint) (models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Preload("UserOne").
		Preload("UserTwo").
		Where("(user_one_id = ? AND user_two_id = ?) OR (user_one_id = ? AND user_two_id = ?)",
			userA, userB, userB, userA).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Friendship{}, ErrFriendshipNotFound
	}
	return friendship, err
}

// ListForUser returns every friendship the user is part of.
func (r *FriendRepo) ListForUser(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Preload("UserOne").
		Preload("UserTwo").
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Find(&friendships).Error
	return friendships, err
}

// Delete removes the friendship row.
func (r *FriendRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Friendship{}, id).Error
}
