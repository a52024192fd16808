package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoal(status string) models.Goal {
	achieved := 91.5
	return models.Goal{
		Description:   "Ace calculus",
		TargetScore:   90,
		Deadline:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:        status,
		AchievedScore: &achieved,
	}
}

func TestNotifier_Disabled(t *testing.T) {
	n := NewNotifier("", "")
	assert.False(t, n.Enabled())
	assert.NoError(t, n.SendGoalOutcome(context.Background(), models.User{}, testGoal(types.GoalStatusAchieved)))
}

func TestNotifier_Discord(t *testing.T) {
	var got DiscordWebhookRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "")
	err := n.SendGoalOutcome(context.Background(), models.User{Name: "Ada", Email: "ada@example.com"}, testGoal(types.GoalStatusAchieved))
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, ColorGreen, got.Embeds[0].Color)
	assert.Equal(t, "91.5", got.Embeds[0].Fields[1].Value)
}

func TestNotifier_SlackMissed(t *testing.T) {
	var got SlackWebhookRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	n := NewNotifier("", srv.URL)
	err := n.SendGoalOutcome(context.Background(), models.User{Name: "Ada"}, testGoal(types.GoalStatusMissed))
	require.NoError(t, err)

	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "warning", got.Attachments[0].Color)
	assert.Equal(t, "Ace calculus", got.Attachments[0].Title)
}

func TestNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "")
	err := n.SendGoalOutcome(context.Background(), models.User{}, testGoal(types.GoalStatusAchieved))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord")
}
