package analytics

import (
	"testing"
	"time"

	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func subject(id uint, name string) models.Subject {
	return models.Subject{Model: gorm.Model{ID: id}, Name: name}
}

func score(id, subjectID uint, value float64, name string, day int) models.Score {
	return models.Score{
		Model:          gorm.Model{ID: id},
		SubjectID:      subjectID,
		Value:          value,
		AssignmentName: name,
		Date:           datatypes.Date(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)),
	}
}

func TestSubjectAverages(t *testing.T) {
	subjects := []models.Subject{subject(1, "Math"), subject(2, "History")}
	scores := []models.Score{
		score(1, 1, 90, "Quiz", 1),
		score(2, 1, 80, "Test", 2),
	}

	averages := SubjectAverages(subjects, scores)
	require.Len(t, averages, 2)

	assert.Equal(t, SubjectAverage{SubjectID: 1, Name: "Math", Average: 85, Count: 2}, averages[0])
	assert.Equal(t, SubjectAverage{SubjectID: 2, Name: "History", Average: 0, Count: 0}, averages[1])
}

func TestTrend_OrdersByDateThenID(t *testing.T) {
	scores := []models.Score{
		score(3, 1, 70, "Final", 9),
		score(1, 1, 90, "Quiz", 2),
		score(2, 1, 80, "Test", 2),
		score(4, 2, 50, "Other", 1),
	}

	points := Trend(scores, 1)
	require.Len(t, points, 3)
	assert.Equal(t, []string{"Quiz", "Test", "Final"},
		[]string{points[0].AssignmentName, points[1].AssignmentName, points[2].AssignmentName})
}

func TestTrend_Empty(t *testing.T) {
	points := Trend(nil, 1)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestTrends(t *testing.T) {
	trends := Trends([]models.Subject{subject(1, "Math"), subject(2, "Art")}, []models.Score{score(1, 1, 90, "Quiz", 1)})
	assert.Len(t, trends[1], 1)
	assert.Empty(t, trends[2])
}

func TestOverallAverage(t *testing.T) {
	_, ok := OverallAverage(nil)
	assert.False(t, ok)

	avg, ok := OverallAverage([]models.Score{score(1, 1, 60, "a", 1), score(2, 2, 100, "b", 1)})
	assert.True(t, ok)
	assert.Equal(t, 80.0, avg)
}

func TestRecentGoals(t *testing.T) {
	goals := []models.Goal{{Description: "a"}, {Description: "b"}, {Description: "c"}, {Description: "d"}}

	assert.Len(t, RecentGoals(goals, 3), 3)
	assert.Equal(t, "a", RecentGoals(goals, 3)[0].Description)
	assert.Len(t, RecentGoals(goals[:2], 3), 2)
	assert.Empty(t, RecentGoals(goals, -1))
}
