package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gradewise-dev/gradewise/internal/handlers"
	"github.com/gradewise-dev/gradewise/internal/testutil"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalLifecycle(t *testing.T) {
	r := testutil.NewRouter(t)
	user, token := testutil.CreateUser(t, "Ada", "ada@example.com", "secret1")

	rec := testutil.Do(t, r, http.MethodPost, "/api/goals", token, map[string]string{
		"description": "Average above 90",
		"targetScore": "90",
		"deadline":    "2030-06-01",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var goal handlers.GoalResponse
	testutil.Decode(t, rec, &goal)
	assert.Equal(t, "Average above 90", goal.Description)
	assert.Equal(t, 90.0, goal.TargetScore)
	assert.True(t, goal.Deadline.Equal(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, types.GoalStatusActive, goal.Status)
	assert.Nil(t, goal.AchievedScore)

	rec = testutil.Do(t, r, http.MethodGet, "/api/goals/"+itoa(user.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var goals []handlers.GoalResponse
	testutil.Decode(t, rec, &goals)
	require.Len(t, goals, 1)
	assert.Equal(t, goal.ID, goals[0].ID)

	rec = testutil.Do(t, r, http.MethodDelete, "/api/goals/"+itoa(goal.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutil.Do(t, r, http.MethodDelete, "/api/goals/"+itoa(goal.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGoalValidation(t *testing.T) {
	r := testutil.NewRouter(t)
	_, token := testutil.CreateUser(t, "Ada", "ada@example.com", "secret1")

	rec := testutil.Do(t, r, http.MethodPost, "/api/goals", token, map[string]string{"description": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "targetScore")
	assert.Contains(t, rec.Body.String(), "deadline")

	rec = testutil.Do(t, r, http.MethodPost, "/api/goals", token, map[string]interface{}{
		"description": "x", "targetScore": -1, "deadline": "2030-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "targetScore")
}

func TestGoalOwnership(t *testing.T) {
	r := testutil.NewRouter(t)
	ada, _ := testutil.CreateUser(t, "Ada", "ada@example.com", "secret1")
	_, bobToken := testutil.CreateUser(t, "Bob", "bob@example.com", "secret2")

	rec := testutil.Do(t, r, http.MethodPost, "/api/goals", bobToken, map[string]interface{}{
		"description": "x", "targetScore": 50, "deadline": "2030-01-01", "userId": ada.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.Do(t, r, http.MethodGet, "/api/goals/"+itoa(ada.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = testutil.Do(t, r, http.MethodGet, "/api/goals/1.5", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
