package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title        string `gorm:"not null"`
	Description  string
	Subject      string
	SkillLevel   string // beginner, intermediate, advanced
	Type         string
	InstructorID uint `gorm:"not null;index"`
	Materials    datatypes.JSON
	Length       string // ISO 8601 duration
	IntroVideo   string
	Tips         string
	Terms        string
	Files        datatypes.JSON
	Lessons      []Lesson `gorm:"foreignKey:CourseID"`
	StudentWork  []Art    `gorm:"foreignKey:CourseID"`
}

type Lesson struct {
	gorm.Model
	CourseID uint   `gorm:"not null;index"`
	Title    string `gorm:"not null"`
	URL      string
}

type Art struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Type     string // gallery, course, portfolio
	UserID   uint   `gorm:"not null;index"`
	CourseID *uint  `gorm:"index"`
	MediaURL string `gorm:"not null"`
}

func (Art) TableName() string {
	return "artworks"
}
