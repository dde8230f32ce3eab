package services_test

import (
	"testing"

	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCourseToTrack(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")
	c1 := createCourse(t, db, teacher.ID, "Lines", 0)
	c2 := createCourse(t, db, teacher.ID, "Shading", 0)

	require.NoError(t, services.AddCourseToTrack(db, track.ID, c1.ID, teacher.ID))
	require.NoError(t, services.AddCourseToTrack(db, track.ID, c2.ID, teacher.ID))

	var entries []models.TrackCourse
	require.NoError(t, db.Where("track_id = ?", track.ID).Order(`"order"`).Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, c1.ID, entries[0].CourseID)
	assert.Equal(t, 1, entries[0].Order)
	assert.Equal(t, c2.ID, entries[1].CourseID)
	assert.Equal(t, 2, entries[1].Order)
}

func TestAddCourseToTrackDuplicate(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")
	course := createCourse(t, db, teacher.ID, "Lines", 0)

	require.NoError(t, services.AddCourseToTrack(db, track.ID, course.ID, teacher.ID))

	err := services.AddCourseToTrack(db, track.ID, course.ID, teacher.ID)
	assert.Equal(t, services.KindConflict, services.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&models.TrackCourse{}).
		Where("track_id = ?", track.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddCourseToTrackNotOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTeacher(t, db, "owner")
	other := createTeacher(t, db, "other")
	track := createTrack(t, db, owner.ID, "Fundamentals")
	course := createCourse(t, db, owner.ID, "Lines", 0)

	err := services.AddCourseToTrack(db, track.ID, course.ID, other.ID)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestReorderTrackCourses(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")
	c1 := createCourse(t, db, teacher.ID, "Lines", 0)
	c2 := createCourse(t, db, teacher.ID, "Shading", 0)
	require.NoError(t, services.AddCourseToTrack(db, track.ID, c1.ID, teacher.ID))
	require.NoError(t, services.AddCourseToTrack(db, track.ID, c2.ID, teacher.ID))

	require.NoError(t, services.ReorderTrackCourses(db, track.ID, []uint{c2.ID, c1.ID}, teacher.ID))

	courses, err := services.TrackCourses(db, track.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, c2.ID, courses[0].ID)
	assert.Equal(t, c1.ID, courses[1].ID)
}

func TestReorderTrackCoursesRejectsPartialList(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")
	c1 := createCourse(t, db, teacher.ID, "Lines", 0)
	c2 := createCourse(t, db, teacher.ID, "Shading", 0)
	require.NoError(t, services.AddCourseToTrack(db, track.ID, c1.ID, teacher.ID))
	require.NoError(t, services.AddCourseToTrack(db, track.ID, c2.ID, teacher.ID))

	err := services.ReorderTrackCourses(db, track.ID, []uint{c1.ID}, teacher.ID)
	assert.Equal(t, services.KindBadRequest, services.KindOf(err))

	err = services.ReorderTrackCourses(db, track.ID, []uint{c1.ID, 9999}, teacher.ID)
	assert.Equal(t, services.KindBadRequest, services.KindOf(err))

	err = services.ReorderTrackCourses(db, track.ID, []uint{c1.ID, c1.ID}, teacher.ID)
	assert.Equal(t, services.KindBadRequest, services.KindOf(err))
}

func TestRemoveCourseFromTrack(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")
	c1 := createCourse(t, db, teacher.ID, "Lines", 0)
	c2 := createCourse(t, db, teacher.ID, "Shading", 0)
	require.NoError(t, services.AddCourseToTrack(db, track.ID, c1.ID, teacher.ID))
	require.NoError(t, services.AddCourseToTrack(db, track.ID, c2.ID, teacher.ID))

	require.NoError(t, services.RemoveCourseFromTrack(db, track.ID, c1.ID, teacher.ID))

	courses, err := services.TrackCourses(db, track.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, c2.ID, courses[0].ID)
}

func TestRemoveCourseFromTrackNotMember(t *testing.T) {
	db := newTestDB(t)
	teacher := createTeacher(t, db, "teacher1")
	track := createTrack(t, db, teacher.ID, "Fundamentals")
	course := createCourse(t, db, teacher.ID, "Lines", 0)

	err := services.RemoveCourseFromTrack(db, track.ID, course.ID, teacher.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}
