package models

import "time"

// User represents a registered account.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Bio          string `gorm:"size:500"`
	StatusID     int    `gorm:"not null"`
	CreatedAt    time.Time
}
