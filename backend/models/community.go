package models

import (
	"time"

	"gorm.io/gorm"
)

type CommunityPost struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"`
	PostType    string `gorm:"not null"` // share_art, question, poll
	Text        string
	ImageURL    string
	Hidden      bool                `gorm:"not null;default:false"`
	PollOptions []PollOption        `gorm:"foreignKey:PostID"`
	Likes       []CommunityPostLike `gorm:"foreignKey:PostID"`
	Comments    []CommunityComment  `gorm:"foreignKey:PostID"`
}

type PollOption struct {
	gorm.Model
	PostID uint   `gorm:"not null;index"`
	Text   string `gorm:"not null"`
	Votes  int    `gorm:"not null;default:0"`
}

type CommunityComment struct {
	gorm.Model
	PostID          uint   `gorm:"not null;index"`
	UserID          uint   `gorm:"not null"`
	Text            string `gorm:"not null"`
	ParentCommentID *uint
	Replies         []CommunityComment `gorm:"foreignKey:ParentCommentID"`
}

type CommunityPostLike struct {
	PostID    uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}

type CourseRequest struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	RequestedBy uint   `gorm:"not null"`
	Upvotes     int    `gorm:"not null;default:0"`
	Downvotes   int    `gorm:"not null;default:0"`
	Status      string `gorm:"default:idle"` // idle, working on, launched
	OptedBy     *uint
}
