package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"artschool/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesRoleRecord(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "alice", "student")

	user := env.userByUsername(t, "alice")
	assert.Equal(t, "student", user.Role)
	assert.Equal(t, "Pre-Apply", user.Status)

	var student models.Student
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&student).Error)
}

func TestRegisterRejectsBadRole(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "password123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginByEmailOrUsername(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "carol", "teacher")

	for _, identifier := range []string{"carol", "carol@example.com"} {
		status, body := env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"identifier": identifier,
			"password":   "password123",
		})
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
	}

	status, _ := env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"identifier": "carol",
		"password":   "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "dave", "student")

	status, _ := env.request(t, http.MethodPost, "/api/auth/password-reset/request", "", fiber.Map{
		"email": "dave@example.com",
	})
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.mailer.sent, 1)

	user := env.userByUsername(t, "dave")
	var reset models.PasswordReset
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&reset).Error)
	assert.True(t, reset.ExpiresAt.After(time.Now()))

	status, _ = env.request(t, http.MethodPost, "/api/auth/password-reset", "", fiber.Map{
		"token":    reset.Token,
		"password": "newpassword1",
	})
	require.Equal(t, http.StatusOK, status)

	// Old password no longer works, new one does.
	status, _ = env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"identifier": "dave",
		"password":   "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"identifier": "dave",
		"password":   "newpassword1",
	})
	assert.Equal(t, http.StatusOK, status)

	// The token is single use.
	status, _ = env.request(t, http.MethodPost, "/api/auth/password-reset", "", fiber.Map{
		"token":    reset.Token,
		"password": "anotherpassword",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPasswordResetRequestUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	// Unknown addresses get the same response and no mail.
	status, _ := env.request(t, http.MethodPost, "/api/auth/password-reset/request", "", fiber.Map{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.mailer.sent)
}
