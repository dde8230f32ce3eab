package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	UserID           uint  `gorm:"unique;not null"`
	ParentID         *uint `gorm:"index"`
	ProfilePic       string
	Bio              string
	DateOfBirth      *time.Time
	SkillLevel       string // beginner, intermediate, advanced
	Points           int    `gorm:"not null;default:0"`
	JoinedCourses    []Course                `gorm:"many2many:student_courses"`
	CompletedLessons []Lesson                `gorm:"many2many:student_lessons"`
	JoinedTracks     []Track                 `gorm:"many2many:student_tracks"`
	CourseProgress   []StudentCourseProgress `gorm:"foreignKey:StudentID"`
}

// StudentCourseProgress is the per-(student, course) progress record.
// Progress is a percentage in [0, 100]; Completed mirrors progress == 100.
type StudentCourseProgress struct {
	StudentID uint    `gorm:"primaryKey"`
	CourseID  uint    `gorm:"primaryKey"`
	Progress  float64 `gorm:"not null;default:0"`
	Completed bool    `gorm:"not null;default:false"`
}

func (StudentCourseProgress) TableName() string {
	return "student_course_progress"
}

type Parent struct {
	gorm.Model
	UserID     uint `gorm:"unique;not null"`
	ProfilePic string
	FirstName  string
	LastName   string
	City       string
	State      string
	Children   []Student `gorm:"foreignKey:ParentID"`
}

type Teacher struct {
	gorm.Model
	UserID     uint `gorm:"unique;not null"`
	ProfilePic string
	FirstName  string
	LastName   string
	City       string
	State      string
	Bio        string
	Expertise  string
}
