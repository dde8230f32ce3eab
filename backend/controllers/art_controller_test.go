package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadArtAwardsPoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "student1", "student")

	status, body := env.request(t, http.MethodPost, "/api/art/", token, fiber.Map{
		"name":      "Sunset study",
		"type":      "gallery",
		"media_url": "https://media.example.com/sunset.png",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(20), body["points_awarded"])

	student := env.studentByUsername(t, "student1")
	assert.Equal(t, 20, student.Points)
}

func TestUploadArtTeacherNoPoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "teacher1", "teacher")

	status, body := env.request(t, http.MethodPost, "/api/art/", token, fiber.Map{
		"name":      "Demo piece",
		"media_url": "https://media.example.com/demo.png",
	})
	require.Equal(t, http.StatusCreated, status)
	_, awarded := body["points_awarded"]
	assert.False(t, awarded)
}

func TestUploadArtValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "student1", "student")

	status, _ := env.request(t, http.MethodPost, "/api/art/", token, fiber.Map{
		"name": "No media",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.request(t, http.MethodPost, "/api/art/", token, fiber.Map{
		"name":      "Bad course",
		"media_url": "https://media.example.com/x.png",
		"course_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetArtByUserAndCourse(t *testing.T) {
	env := newTestEnv(t)
	teacherToken := env.register(t, "teacher1", "teacher")
	studentToken := env.register(t, "student1", "student")

	courseID, _ := createCourseHTTP(t, env, teacherToken, "Figure Drawing", 0)

	status, _ := env.request(t, http.MethodPost, "/api/art/", studentToken, fiber.Map{
		"name":      "Gesture sheet",
		"type":      "course",
		"media_url": "https://media.example.com/gesture.png",
		"course_id": courseID,
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = env.request(t, http.MethodPost, "/api/art/", studentToken, fiber.Map{
		"name":      "Personal piece",
		"type":      "gallery",
		"media_url": "https://media.example.com/personal.png",
	})
	require.Equal(t, http.StatusCreated, status)

	user := env.userByUsername(t, "student1")

	byUser := env.requestList(t, fmt.Sprintf("/api/art/user/%d", user.ID), studentToken)
	assert.Len(t, byUser, 2)

	byCourse := env.requestList(t, fmt.Sprintf("/api/art/course/%d", courseID), studentToken)
	assert.Len(t, byCourse, 1)
}
