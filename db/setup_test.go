package db

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	out, level, formatter := logger.Log.Out, logger.Log.Level, logger.Log.Formatter
	logger.Log.SetOutput(&buf)
	logger.Log.SetLevel(logrus.InfoLevel)
	logger.Log.SetFormatter(&logrus.JSONFormatter{})

	t.Cleanup(func() {
		logger.Log.SetOutput(out)
		logger.Log.SetLevel(level)
		logger.Log.SetFormatter(formatter)
	})
	return &buf
}

func openMemory(t *testing.T) {
	t.Helper()

	require.NoError(t, Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared")))
	t.Cleanup(func() { _ = Close() })
	require.NoError(t, MigrateDatabase())
}

func TestGormLogsThroughLogrus(t *testing.T) {
	openMemory(t)
	buf := captureLog(t)

	var user models.User
	err := DB.Where("email = ?", "nobody@example.com").First(&user).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, buf.String(), "missing rows must not be logged")

	err = DB.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "postgresql", "mysql", "sqlite", "sqlite3"} {
		_, err := Dialector(driver, "dsn")
		assert.NoError(t, err, driver)
	}

	_, err := Dialector("oracle", "dsn")
	assert.Error(t, err)
}
