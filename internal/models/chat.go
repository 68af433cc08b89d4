package models

import "time"

// Chat is a direct messaging channel between two users. Only the two named
// participants may read or send messages under this chat id.
type Chat struct {
	ID        uint `gorm:"primaryKey"`
	UserOneID uint `gorm:"not null;index"`
	UserTwoID uint `gorm:"not null;index"`
	CreatedAt time.Time
}
