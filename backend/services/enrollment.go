package services

import (
	"errors"

	"artschool/backend/models"

	"gorm.io/gorm"
)

func studentExists(tx *gorm.DB, studentID uint) error {
	var student models.Student
	if err := tx.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("student")
		}
		return Storage(err)
	}
	return nil
}

func membershipCount(tx *gorm.DB, table, leftCol string, studentID, rightID uint) (int64, error) {
	var count int64
	err := tx.Table(table).
		Where("student_id = ? AND "+leftCol+" = ?", studentID, rightID).
		Count(&count).Error
	if err != nil {
		return 0, Storage(err)
	}
	return count, nil
}

// JoinCourse adds the course to the student's joined set. Joining a course
// twice is a no-op.
func JoinCourse(db *gorm.DB, studentID, courseID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := studentExists(tx, studentID); err != nil {
			return err
		}
		var course models.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("course")
			}
			return Storage(err)
		}

		count, err := membershipCount(tx, "student_courses", "course_id", studentID, courseID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Exec(
			"INSERT INTO student_courses (student_id, course_id) VALUES (?, ?)",
			studentID, courseID,
		).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

// UnjoinCourse removes the membership; leaving a course the student never
// joined reports not found instead of failing mid-flight.
func UnjoinCourse(db *gorm.DB, studentID, courseID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := studentExists(tx, studentID); err != nil {
			return err
		}

		count, err := membershipCount(tx, "student_courses", "course_id", studentID, courseID)
		if err != nil {
			return err
		}
		if count == 0 {
			return NotFound("course in joined courses")
		}

		if err := tx.Exec(
			"DELETE FROM student_courses WHERE student_id = ? AND course_id = ?",
			studentID, courseID,
		).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

func JoinTrack(db *gorm.DB, studentID, trackID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := studentExists(tx, studentID); err != nil {
			return err
		}
		var track models.Track
		if err := tx.First(&track, trackID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("track")
			}
			return Storage(err)
		}

		count, err := membershipCount(tx, "student_tracks", "track_id", studentID, trackID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Exec(
			"INSERT INTO student_tracks (student_id, track_id) VALUES (?, ?)",
			studentID, trackID,
		).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}

func WithdrawTrack(db *gorm.DB, studentID, trackID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := studentExists(tx, studentID); err != nil {
			return err
		}

		count, err := membershipCount(tx, "student_tracks", "track_id", studentID, trackID)
		if err != nil {
			return err
		}
		if count == 0 {
			return NotFound("track in joined tracks")
		}

		if err := tx.Exec(
			"DELETE FROM student_tracks WHERE student_id = ? AND track_id = ?",
			studentID, trackID,
		).Error; err != nil {
			return Storage(err)
		}
		return nil
	})
}
