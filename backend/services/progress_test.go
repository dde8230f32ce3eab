package services_test

import (
	"testing"

	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLessonCompletion(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	student := createStudent(t, db, "student1")
	course := createCourse(t, db, teacher.ID, "Watercolor", 4)

	// Complete two of four lessons.
	progress, err := services.ToggleLessonCompletion(db, student.ID, course.Lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, progress)

	progress, err = services.ToggleLessonCompletion(db, student.ID, course.Lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, progress)

	var record models.StudentCourseProgress
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&record).Error)
	assert.Equal(t, 50.0, record.Progress)
	assert.False(t, record.Completed)

	// Complete the rest.
	_, err = services.ToggleLessonCompletion(db, student.ID, course.Lessons[2].ID)
	require.NoError(t, err)
	progress, err = services.ToggleLessonCompletion(db, student.ID, course.Lessons[3].ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, progress)

	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&record).Error)
	assert.True(t, record.Completed)

	// Toggling a completed lesson takes it back out.
	progress, err = services.ToggleLessonCompletion(db, student.ID, course.Lessons[3].ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, progress)

	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&record).Error)
	assert.False(t, record.Completed)
}

func TestToggleLessonCompletionUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "student1")

	_, err := services.ToggleLessonCompletion(db, student.ID, 9999)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestToggleLessonCompletionUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	course := createCourse(t, db, teacher.ID, "Sketching", 1)

	_, err := services.ToggleLessonCompletion(db, 9999, course.Lessons[0].ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestComputeCourseProgressKeepsSingleRecord(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	student := createStudent(t, db, "student1")
	course := createCourse(t, db, teacher.ID, "Oil Painting", 2)

	_, err := services.ToggleLessonCompletion(db, student.ID, course.Lessons[0].ID)
	require.NoError(t, err)

	// Recomputing twice must upsert into the same row.
	for i := 0; i < 2; i++ {
		progress, err := services.ComputeCourseProgress(db, student.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, 50.0, progress)
	}

	var count int64
	require.NoError(t, db.Model(&models.StudentCourseProgress{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestComputeCourseProgressEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	student := createStudent(t, db, "student1")
	course := createCourse(t, db, teacher.ID, "Empty", 0)

	progress, err := services.ComputeCourseProgress(db, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress)

	var record models.StudentCourseProgress
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&record).Error)
	assert.False(t, record.Completed)
}

func TestComputeCourseProgressUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "student1")

	_, err := services.ComputeCourseProgress(db, student.ID, 9999)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}
