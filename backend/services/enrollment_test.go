package services_test

import (
	"testing"

	"artschool/backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinCourseIdempotent(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	student := createStudent(t, db, "student1")
	course := createCourse(t, db, teacher.ID, "Lines", 0)

	require.NoError(t, services.JoinCourse(db, student.ID, course.ID))
	// Second join is a no-op, not an error.
	require.NoError(t, services.JoinCourse(db, student.ID, course.ID))

	var count int64
	require.NoError(t, db.Table("student_courses").
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestJoinCourseUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "student1")

	err := services.JoinCourse(db, student.ID, 9999)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestUnjoinCourse(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	student := createStudent(t, db, "student1")
	course := createCourse(t, db, teacher.ID, "Lines", 0)

	require.NoError(t, services.JoinCourse(db, student.ID, course.ID))
	require.NoError(t, services.UnjoinCourse(db, student.ID, course.ID))

	var count int64
	require.NoError(t, db.Table("student_courses").
		Where("student_id = ?", student.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Leaving again reports not found.
	err := services.UnjoinCourse(db, student.ID, course.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestJoinAndWithdrawTrack(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	student := createStudent(t, db, "student1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")

	require.NoError(t, services.JoinTrack(db, student.ID, track.ID))
	require.NoError(t, services.JoinTrack(db, student.ID, track.ID))

	var count int64
	require.NoError(t, db.Table("student_tracks").
		Where("student_id = ? AND track_id = ?", student.ID, track.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, services.WithdrawTrack(db, student.ID, track.ID))

	err := services.WithdrawTrack(db, student.ID, track.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestJoinTrackUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")

	err := services.JoinTrack(db, 9999, track.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}
