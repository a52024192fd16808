package store

import (
	"context"

	"github.com/gradewise-dev/gradewise/internal/models"
	"gorm.io/gorm"
)

func CreateSubject(ctx context.Context, subject *models.Subject) error {
	return translate(conn(ctx).Create(subject).Error, "create subject")
}

func ListSubjects(ctx context.Context, userID uint) ([]models.Subject, error) {
	subjects := []models.Subject{}

	if err := conn(ctx).Where("user_id = ?", userID).Order("id").Find(&subjects).Error; err != nil {
		return nil, translate(err, "list subjects")
	}

	return subjects, nil
}

func FindSubject(ctx context.Context, id, userID uint) (*models.Subject, error) {
	var subject models.Subject

	if err := conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&subject).Error; err != nil {
		return nil, translate(err, "find subject")
	}

	return &subject, nil
}

// DeleteSubject removes the subject and its scores.
func DeleteSubject(ctx context.Context, id, userID uint) error {
	err := conn(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject

		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&subject).Error; err != nil {
			return err
		}

		if err := tx.Where("subject_id = ? AND user_id = ?", id, userID).Delete(&models.Score{}).Error; err != nil {
			return err
		}

		return tx.Delete(&subject).Error
	})

	return translate(err, "delete subject")
}
