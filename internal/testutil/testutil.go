// Package testutil wires an in-memory database and router for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gradewise-dev/gradewise/db"
	"github.com/gradewise-dev/gradewise/internal/auth"
	"github.com/gradewise-dev/gradewise/internal/config"
	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/router"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

const JWTSecret = "test-secret"

// OpenTestDB points db.DB at a fresh in-memory SQLite database with the schema applied.
func OpenTestDB(t *testing.T) {
	t.Helper()

	logger.Log.SetLevel(logrus.PanicLevel)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	if err := db.Open(sqlite.Open(dsn)); err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// Shared-cache SQLite locks whole tables; one connection keeps tests serial.
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	if err := auth.InitJWT(JWTSecret, 0); err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
}

// OpenMockDB points db.DB at a go-sqlmock connection speaking the postgres dialect.
func OpenMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	logger.Log.SetLevel(logrus.PanicLevel)

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}

	if err := db.Open(postgres.New(postgres.Config{Conn: sqlDB})); err != nil {
		t.Fatalf("open gorm on sqlmock: %v", err)
	}

	if err := auth.InitJWT(JWTSecret, 0); err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })

	return mock
}

// Token signs a token for a user id without touching the database.
func Token(t *testing.T, userID uint) string {
	t.Helper()

	token, err := auth.GenerateJWT(userID, "Test", "test@example.com")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// Config returns a server configuration suitable for tests.
func Config() *config.Config {
	return &config.Config{
		Port:     "0",
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Auth:     config.AuthConfig{JWTSecret: JWTSecret},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		Log:   config.LogConfig{Level: "panic"},
		Goals: config.GoalConfig{SweepSchedule: "@every 1h"},
	}
}

// NewRouter opens a test database and returns the API router.
func NewRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	OpenTestDB(t)
	return router.NewRouter(Config())
}

// CreateUser inserts a user with a hashed password and returns it with a bearer token.
func CreateUser(t *testing.T, name, email, password string) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{Name: name, Email: email, PasswordHash: hash}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.GenerateJWT(user.ID, user.Name, user.Email)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return user, token
}

// Do sends a JSON request through handler. body may be nil, a string, or a value to marshal.
func Do(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the recorder body into v.
func Decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
