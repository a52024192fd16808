package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gradewise-dev/gradewise/internal/handlers"
	"github.com/gradewise-dev/gradewise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecords(t *testing.T, r http.Handler, token string) {
	t.Helper()

	for _, name := range []string{"Math", "History"} {
		rec := testutil.Do(t, r, http.MethodPost, "/api/subjects", token, map[string]string{"name": name})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	scores := []map[string]interface{}{
		{"value": 80, "assignmentName": "Quiz 2", "date": "2024-02-01", "subjectId": 1},
		{"value": 90, "assignmentName": "Quiz 1", "date": "2024-01-01", "subjectId": 1},
	}
	for _, score := range scores {
		rec := testutil.Do(t, r, http.MethodPost, "/api/scores", token, score)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	for _, desc := range []string{"g1", "g2", "g3", "g4"} {
		rec := testutil.Do(t, r, http.MethodPost, "/api/goals", token, map[string]interface{}{
			"description": desc, "targetScore": 85, "deadline": "2030-01-01",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestDashboard(t *testing.T) {
	r := testutil.NewRouter(t)
	_, token := testutil.CreateUser(t, "Ada", "ada@example.com", "secret1")
	seedRecords(t, r, token)

	rec := testutil.Do(t, r, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var dash handlers.DashboardResponse
	testutil.Decode(t, rec, &dash)

	assert.Equal(t, "Ada", dash.User.Name)
	assert.Equal(t, handlers.DashboardTotals{Subjects: 2, Scores: 2, Goals: 4, ActiveGoals: 4}, dash.Totals)
	require.NotNil(t, dash.OverallAverage)
	assert.InDelta(t, 85.0, *dash.OverallAverage, 0.001)

	require.Len(t, dash.Averages, 2)
	assert.InDelta(t, 85.0, dash.Averages[0].Average, 0.001)
	assert.Equal(t, 2, dash.Averages[0].Count)
	assert.Equal(t, 0.0, dash.Averages[1].Average)
	assert.Equal(t, 0, dash.Averages[1].Count)

	require.Len(t, dash.RecentGoals, 3)
	assert.Equal(t, "g1", dash.RecentGoals[0].Description)
	assert.Equal(t, "g3", dash.RecentGoals[2].Description)
}

func TestDashboardEmpty(t *testing.T) {
	r := testutil.NewRouter(t)
	_, token := testutil.CreateUser(t, "Ada", "ada@example.com", "secret1")

	rec := testutil.Do(t, r, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	testutil.Decode(t, rec, &body)
	assert.Nil(t, body["overallAverage"])
	assert.Equal(t, []interface{}{}, body["subjects"])
	assert.Equal(t, []interface{}{}, body["recentGoals"])
}

func TestAnalyticsTrendsAreOrderedByDate(t *testing.T) {
	r := testutil.NewRouter(t)
	_, token := testutil.CreateUser(t, "Ada", "ada@example.com", "secret1")
	seedRecords(t, r, token)

	rec := testutil.Do(t, r, http.MethodGet, "/api/analytics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.AnalyticsResponse
	testutil.Decode(t, rec, &resp)

	trend := resp.Trends[1]
	require.Len(t, trend, 2)
	assert.Equal(t, "Quiz 1", trend[0].AssignmentName)
	assert.Equal(t, "Quiz 2", trend[1].AssignmentName)
	assert.Empty(t, resp.Trends[2])
}
