package models

import "time"

// Friendship is the social edge between two users. The pair is unordered:
// (A, B) and (B, A) denote the same relation, and either side may delete it.
type Friendship struct {
	ID        uint `gorm:"primaryKey"`
	UserOneID uint `gorm:"not null;index"`
	UserTwoID uint `gorm:"not null;index"`
	CreatedAt time.Time

	UserOne User `gorm:"foreignKey:UserOneID;references:ID;constraint:OnDelete:CASCADE"`
	UserTwo User `gorm:"foreignKey:UserTwoID;references:ID;constraint:OnDelete:CASCADE"`
}
