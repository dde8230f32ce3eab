package services

import (
	"errors"

	"artschool/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleLessonCompletion flips the lesson's membership in the student's
// completed set, then recomputes and persists the progress record for the
// lesson's course. Both steps run in one transaction, so a failed recompute
// rolls the toggle back too. Returns the new progress percentage.
func ToggleLessonCompletion(db *gorm.DB, studentID, lessonID uint) (float64, error) {
	var progress float64

	err := db.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("student")
			}
			return Storage(err)
		}

		var lesson models.Lesson
		if err := tx.First(&lesson, lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("lesson")
			}
			return Storage(err)
		}

		var completed int64
		if err := tx.Table("student_lessons").
			Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
			Count(&completed).Error; err != nil {
			return Storage(err)
		}

		if completed > 0 {
			if err := tx.Exec(
				"DELETE FROM student_lessons WHERE student_id = ? AND lesson_id = ?",
				studentID, lessonID,
			).Error; err != nil {
				return Storage(err)
			}
		} else {
			if err := tx.Exec(
				"INSERT INTO student_lessons (student_id, lesson_id) VALUES (?, ?)",
				studentID, lessonID,
			).Error; err != nil {
				return Storage(err)
			}
		}

		p, err := upsertCourseProgress(tx, studentID, lesson.CourseID)
		if err != nil {
			return err
		}
		progress = p
		return nil
	})

	return progress, err
}

// ComputeCourseProgress recomputes the student's progress on a course from
// the current completed-lesson set and upserts the (student, course) record.
func ComputeCourseProgress(db *gorm.DB, studentID, courseID uint) (float64, error) {
	var progress float64

	err := db.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("student")
			}
			return Storage(err)
		}

		var course models.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("course")
			}
			return Storage(err)
		}

		p, err := upsertCourseProgress(tx, studentID, courseID)
		if err != nil {
			return err
		}
		progress = p
		return nil
	})

	return progress, err
}

// upsertCourseProgress writes progress = completed/total*100 (0 for an empty
// course) with completed mirroring progress == 100. The OnConflict clause
// keeps the (student_id, course_id) key unique under concurrent recomputes.
func upsertCourseProgress(tx *gorm.DB, studentID, courseID uint) (float64, error) {
	var total int64
	if err := tx.Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&total).Error; err != nil {
		return 0, Storage(err)
	}

	var done int64
	if err := tx.Table("student_lessons").
		Joins("JOIN lessons ON lessons.id = student_lessons.lesson_id").
		Where("student_lessons.student_id = ? AND lessons.course_id = ?", studentID, courseID).
		Count(&done).Error; err != nil {
		return 0, Storage(err)
	}

	progress := 0.0
	if total > 0 {
		progress = float64(done) / float64(total) * 100
	}

	record := models.StudentCourseProgress{
		StudentID: studentID,
		CourseID:  courseID,
		Progress:  progress,
		Completed: progress == 100.0,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "completed"}),
	}).Create(&record).Error; err != nil {
		return 0, Storage(err)
	}

	return progress, nil
}
