// Package store persists users, subjects, scores and goals. Every query that reads or
// deletes owned records filters on user_id.
package store

import (
	"context"

	"github.com/gradewise-dev/gradewise/db"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches the id and owner.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

func conn(ctx context.Context) *gorm.DB {
	return db.DB.WithContext(ctx)
}

func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(ErrDuplicate, op)
	default:
		return errors.Wrap(err, op)
	}
}

func CreateUser(ctx context.Context, user *models.User) error {
	return translate(conn(ctx).Create(user).Error, "create user")
}

func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "find user by email")
	}

	return &user, nil
}

func FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := conn(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "find user")
	}

	return &user, nil
}
