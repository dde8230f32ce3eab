package services

import (
	"errors"

	"artschool/backend/models"

	"gorm.io/gorm"
)

func loadOwnedTrack(tx *gorm.DB, trackID, teacherID uint) (*models.Track, error) {
	var track models.Track
	if err := tx.First(&track, trackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("track")
		}
		return nil, Storage(err)
	}
	if track.TeacherID != teacherID {
		return nil, Forbidden("you are not the creator of this track")
	}
	return &track, nil
}

// AddCourseToTrack appends the course to the track's ordered sequence.
// The order assigned is the current course count plus one; a course already
// linked to the track is a conflict.
func AddCourseToTrack(db *gorm.DB, trackID, courseID, teacherID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwnedTrack(tx, trackID, teacherID); err != nil {
			return err
		}

		var course models.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("course")
			}
			return Storage(err)
		}

		var existing models.TrackCourse
		err := tx.Where("track_id = ? AND course_id = ?", trackID, courseID).
			First(&existing).Error
		if err == nil {
			return Conflict("course already in track")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Storage(err)
		}

		var count int64
		if err := tx.Model(&models.TrackCourse{}).
			Where("track_id = ?", trackID).
			Count(&count).Error; err != nil {
			return Storage(err)
		}

		entry := models.TrackCourse{
			TrackID:  trackID,
			CourseID: courseID,
			Order:    int(count) + 1,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

// ReorderTrackCourses rewrites the order column so that courseIDs[i] gets
// order i+1. The id list must be an exact permutation of the track's current
// courses; partial or foreign lists are rejected.
func ReorderTrackCourses(db *gorm.DB, trackID uint, courseIDs []uint, teacherID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwnedTrack(tx, trackID, teacherID); err != nil {
			return err
		}

		var entries []models.TrackCourse
		if err := tx.Where("track_id = ?", trackID).Find(&entries).Error; err != nil {
			return Storage(err)
		}

		if len(courseIDs) != len(entries) {
			return BadRequest("course list does not match track contents")
		}
		current := make(map[uint]bool, len(entries))
		for _, e := range entries {
			current[e.CourseID] = true
		}
		seen := make(map[uint]bool, len(courseIDs))
		for _, id := range courseIDs {
			if !current[id] || seen[id] {
				return BadRequest("course list does not match track contents")
			}
			seen[id] = true
		}

		for i, id := range courseIDs {
			if err := tx.Model(&models.TrackCourse{}).
				Where("track_id = ? AND course_id = ?", trackID, id).
				Update("order", i+1).Error; err != nil {
				return Storage(err)
			}
		}
		return nil
	})
}

// RemoveCourseFromTrack deletes the join row. Remaining order values keep
// their gaps; display ordering is by relative value, so no compaction runs.
func RemoveCourseFromTrack(db *gorm.DB, trackID, courseID, teacherID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOwnedTrack(tx, trackID, teacherID); err != nil {
			return err
		}

		var entry models.TrackCourse
		err := tx.Where("track_id = ? AND course_id = ?", trackID, courseID).
			First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("course in track")
			}
			return Storage(err)
		}

		if err := tx.Where("track_id = ? AND course_id = ?", trackID, courseID).
			Delete(&models.TrackCourse{}).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

// TrackCourses returns the track's courses in display order.
func TrackCourses(db *gorm.DB, trackID uint) ([]models.Course, error) {
	var entries []models.TrackCourse
	if err := db.Where("track_id = ?", trackID).
		Order(`"order"`).
		Find(&entries).Error; err != nil {
		return nil, Storage(err)
	}

	courses := make([]models.Course, 0, len(entries))
	for _, e := range entries {
		var course models.Course
		if err := db.Preload("Lessons").First(&course, e.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, Storage(err)
		}
		courses = append(courses, course)
	}
	return courses, nil
}
