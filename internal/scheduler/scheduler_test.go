package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gradewise-dev/gradewise/db"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/services"
	"github.com/gradewise-dev/gradewise/internal/testutil"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEvaluateGoals(t *testing.T) {
	testutil.OpenTestDB(t)

	var posts int32
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&posts, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	ada, _ := testutil.CreateUser(t, "Ada", "ada@example.com", "pw")
	bob, _ := testutil.CreateUser(t, "Bob", "bob@example.com", "pw")

	math := models.Subject{Name: "Math", UserID: ada.ID}
	require.NoError(t, db.DB.Create(&math).Error)
	for _, v := range []float64{80, 90} {
		require.NoError(t, db.DB.Create(&models.Score{
			Value: v, AssignmentName: "Quiz", SubjectID: math.ID, UserID: ada.ID,
			Date: datatypes.Date(now.AddDate(0, -1, 0)),
		}).Error)
	}

	goals := []models.Goal{
		{Description: "reach 80", TargetScore: 80, Deadline: now.Add(-time.Hour), UserID: ada.ID, Status: types.GoalStatusActive},
		{Description: "reach 95", TargetScore: 95, Deadline: now.Add(-time.Hour), UserID: ada.ID, Status: types.GoalStatusActive},
		{Description: "later", TargetScore: 10, Deadline: now.Add(24 * time.Hour), UserID: ada.ID, Status: types.GoalStatusActive},
		{Description: "no scores", TargetScore: 10, Deadline: now.Add(-time.Hour), UserID: bob.ID, Status: types.GoalStatusActive},
	}
	for i := range goals {
		require.NoError(t, db.DB.Create(&goals[i]).Error)
	}

	s := NewScheduler(services.NewNotifier(hook.URL, ""))

	evaluated, err := s.EvaluateGoals(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, evaluated)
	assert.Equal(t, int32(3), atomic.LoadInt32(&posts))

	var stored []models.Goal
	require.NoError(t, db.DB.Order("id").Find(&stored).Error)
	require.Len(t, stored, 4)

	assert.Equal(t, types.GoalStatusAchieved, stored[0].Status)
	require.NotNil(t, stored[0].AchievedScore)
	assert.InDelta(t, 85.0, *stored[0].AchievedScore, 0.001)

	assert.Equal(t, types.GoalStatusMissed, stored[1].Status)
	assert.Equal(t, types.GoalStatusActive, stored[2].Status)

	assert.Equal(t, types.GoalStatusMissed, stored[3].Status)
	assert.Nil(t, stored[3].AchievedScore)

	evaluated, err = s.EvaluateGoals(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, evaluated)
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(services.NewNotifier("", ""))

	require.NoError(t, s.Start("@every 1h"))
	status := s.GetStatus()
	assert.Equal(t, true, status["running"])
	assert.Equal(t, 1, status["entries"])

	s.Stop()
	assert.Equal(t, false, s.GetStatus()["running"])
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(services.NewNotifier("", ""))
	assert.Error(t, s.Start("not a schedule"))
}
