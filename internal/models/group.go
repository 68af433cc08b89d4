package models

import "time"

// Group is a multi-user messaging channel.
type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
}

// GroupMember links a user to a group. Membership is the only thing group
// authorization looks at.
type GroupMember struct {
	GroupID   uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
