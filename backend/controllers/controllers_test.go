package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"artschool/backend/config"
	"artschool/backend/models"
	"artschool/backend/routes"
	"artschool/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testMailer records outgoing mail instead of delivering it.
type testMailer struct {
	sent []string
}

func (m *testMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, to+": "+subject)
	return nil
}

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	cfg    *config.Config
	mailer *testMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{
		JWTSecret:       "testsecret",
		ServerPort:      "8080",
		ArtUploadPoints: 20,
	}
	mailer := &testMailer{}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg, mailer)

	return &testEnv{app: app, db: db, cfg: cfg, mailer: mailer}
}

// request performs a JSON request and decodes the response body into a map.
func (e *testEnv) request(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return res.StatusCode, decoded
}

// requestList performs an authenticated GET against an endpoint that returns
// a JSON array.
func (e *testEnv) requestList(t *testing.T, path, token string) []interface{} {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var decoded []interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

// register creates an account over the API and returns its token.
func (e *testEnv) register(t *testing.T, username, role string) string {
	t.Helper()

	status, body := e.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, status)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func (e *testEnv) userByUsername(t *testing.T, username string) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.Where("username = ?", username).First(&user).Error)
	return &user
}

func (e *testEnv) studentByUsername(t *testing.T, username string) *models.Student {
	t.Helper()
	user := e.userByUsername(t, username)
	var student models.Student
	require.NoError(t, e.db.Where("user_id = ?", user.ID).First(&student).Error)
	return &student
}

func (e *testEnv) teacherByUsername(t *testing.T, username string) *models.Teacher {
	t.Helper()
	user := e.userByUsername(t, username)
	var teacher models.Teacher
	require.NoError(t, e.db.Where("user_id = ?", user.ID).First(&teacher).Error)
	return &teacher
}

func coursePath(id uint, suffix string) string {
	return fmt.Sprintf("/api/courses/%d%s", id, suffix)
}
