package models

import "time"

// ChatMessage targets exactly one of a chat or a group; both pointers set, or
// neither, is rejected before anything is persisted.
type ChatMessage struct {
	ID        uint   `gorm:"primaryKey"`
	Body      string `gorm:"not null"`
	SenderID  uint   `gorm:"not null;index"`
	ChatID    *uint  `gorm:"index"`
	GroupID   *uint  `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Sender User `gorm:"foreignKey:SenderID"`
}
