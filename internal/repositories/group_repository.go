package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yapyap/backend/internal/models"
)

var ErrGroupNotFound = errors.New("group not found")

// GroupRepository abstracts group and membership persistence.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	Get(ctx context.Context, groupID uint) (models.Group, error)
	AddMember(ctx context.Context, groupID, userID uint) error
	IsMember(ctx context.Context, groupID, userID uint) (bool, error)
}

// GroupRepo is a gorm implementation of GroupRepository.
type GroupRepo struct {
	db *gorm.DB
}

// NewGroupRepo constructs a GroupRepo.
func NewGroupRepo(db *gorm.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// Create inserts a group.
func (r *GroupRepo) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// Get fetches a group by id.
func (r *GroupRepo) Get(ctx context.Context, groupID uint) (models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).First(&group, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Group{}, ErrGroupNotFound
	}
	return group, err
}

// AddMember inserts a membership row.
func (r *GroupRepo) AddMember(ctx context.Context, groupID, userID uint) error {
	return r.db.WithContext(ctx).Create(&models.GroupMember{GroupID: groupID, UserID: userID}).Error
}

// IsMember reports whether a membership row exists for the pair. A missing
// group and a non-member look the same: group existence is not leaked to
// non-members.
func (r *GroupRepo) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
