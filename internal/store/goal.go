package store

import (
	"context"
	"time"

	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/types"
)

func CreateGoal(ctx context.Context, goal *models.Goal) error {
	return translate(conn(ctx).Create(goal).Error, "create goal")
}

func ListGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	goals := []models.Goal{}

	if err := conn(ctx).Where("user_id = ?", userID).Order("id").Find(&goals).Error; err != nil {
		return nil, translate(err, "list goals")
	}

	return goals, nil
}

func DeleteGoal(ctx context.Context, id, userID uint) error {
	result := conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})

	if result.Error != nil {
		return translate(result.Error, "delete goal")
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DueGoals returns active goals whose deadline is before now, across all users.
func DueGoals(ctx context.Context, now time.Time) ([]models.Goal, error) {
	goals := []models.Goal{}

	if err := conn(ctx).Where("status = ? AND deadline < ?", types.GoalStatusActive, now).Order("id").Find(&goals).Error; err != nil {
		return nil, translate(err, "list due goals")
	}

	return goals, nil
}

// SaveGoalOutcome records the evaluation of an active goal. It reports false when the goal
// was already evaluated or deleted in the meantime.
func SaveGoalOutcome(ctx context.Context, goalID uint, status string, achieved *float64, at time.Time) (bool, error) {
	result := conn(ctx).Model(&models.Goal{}).
		Where("id = ? AND status = ?", goalID, types.GoalStatusActive).
		Updates(map[string]interface{}{
			"status":         status,
			"achieved_score": achieved,
			"evaluated_at":   at,
		})

	if result.Error != nil {
		return false, translate(result.Error, "save goal outcome")
	}

	return result.RowsAffected > 0, nil
}
