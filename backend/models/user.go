package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:student"` // student, teacher, parent
	Status       string `gorm:"default:Pre-Apply"`
	Banned       bool   `gorm:"not null;default:false"`
}

// PasswordReset holds a single-use reset token mailed to the user.
type PasswordReset struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index"`
	Token     string `gorm:"unique;not null"`
	ExpiresAt time.Time
	Used      bool `gorm:"not null;default:false"`
}

// UserFollow links a follower to a followee.
type UserFollow struct {
	FollowerID uint `gorm:"primaryKey"`
	FolloweeID uint `gorm:"primaryKey"`
	CreatedAt  time.Time
}
