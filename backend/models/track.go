package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Track struct {
	gorm.Model
	Title             string `gorm:"not null"`
	Description       string
	Objectives        string
	Outcomes          string
	TeacherID         uint `gorm:"not null;index"`
	DownloadableFiles datatypes.JSON
	Courses           []Course `gorm:"many2many:track_courses"`
}

// TrackCourse is the track<->course join row. Order is the display position
// of the course inside the track; no two rows of one track may share it after
// a reorder.
type TrackCourse struct {
	TrackID  uint `gorm:"primaryKey"`
	CourseID uint `gorm:"primaryKey"`
	Order    int  `gorm:"column:order;not null"`
}

func (TrackCourse) TableName() string {
	return "track_courses"
}
