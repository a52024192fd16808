package store

import (
	"context"

	"github.com/gradewise-dev/gradewise/internal/models"
)

// CreateScore inserts the score and loads its subject.
func CreateScore(ctx context.Context, score *models.Score) error {
	if err := conn(ctx).Create(score).Error; err != nil {
		return translate(err, "create score")
	}

	return translate(conn(ctx).Preload("Subject").First(score, score.ID).Error, "load score")
}

func ListScores(ctx context.Context, userID uint) ([]models.Score, error) {
	scores := []models.Score{}

	if err := conn(ctx).Preload("Subject").Where("user_id = ?", userID).Order("id").Find(&scores).Error; err != nil {
		return nil, translate(err, "list scores")
	}

	return scores, nil
}

func DeleteScore(ctx context.Context, id, userID uint) error {
	result := conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Score{})

	if result.Error != nil {
		return translate(result.Error, "delete score")
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
