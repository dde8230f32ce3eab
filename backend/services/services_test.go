package services_test

import (
	"fmt"
	"testing"

	"artschool/backend/models"
	"artschool/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps all sessions on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createStudent(t *testing.T, db *gorm.DB, username string) *models.Student {
	t.Helper()
	user := createUser(t, db, username, "student")
	student := models.Student{UserID: user.ID}
	require.NoError(t, db.Create(&student).Error)
	return &student
}

func createTeacher(t *testing.T, db *gorm.DB, username string) *models.Teacher {
	t.Helper()
	user := createUser(t, db, username, "teacher")
	teacher := models.Teacher{UserID: user.ID}
	require.NoError(t, db.Create(&teacher).Error)
	return &teacher
}

// createCourse makes a course with the given number of lessons.
func createCourse(t *testing.T, db *gorm.DB, instructorID uint, title string, lessons int) *models.Course {
	t.Helper()
	course := models.Course{Title: title, InstructorID: instructorID}
	for i := 1; i <= lessons; i++ {
		course.Lessons = append(course.Lessons, models.Lesson{
			Title: fmt.Sprintf("%s lesson %d", title, i),
		})
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func createTrack(t *testing.T, db *gorm.DB, teacherID uint, title string) *models.Track {
	t.Helper()
	track := models.Track{Title: title, TeacherID: teacherID}
	require.NoError(t, db.Create(&track).Error)
	return &track
}
