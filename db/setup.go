package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector picks the gorm driver for DB_DRIVER.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func ConnectDatabase(driver, dsn string) error {
	dialector, err := Dialector(driver, dsn)

	if err != nil {
		return err
	}

	return Open(dialector)
}

// Open sets DB from an already built dialector.
func Open(dialector gorm.Dialector) error {
	var err error

	DB, err = gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})

	if err != nil {
		return err
	}

	return nil
}

// newGormLogger routes gorm's slow-query and error lines through logrus. Missing rows are
// normal lookups here and are not logged.
func newGormLogger() gormlogger.Interface {
	return gormlogger.New(logger.Log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Subject{},
		&models.Score{},
		&models.Goal{},
	}

	for _, model := range models {
		if err := DB.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}

// Ping checks that the database answers within timeout.
func Ping(ctx context.Context, timeout time.Duration) error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}

	sqlDB, err := DB.DB()

	if err != nil {
		return fmt.Errorf("failed to get database handle: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	return nil
}

func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}
