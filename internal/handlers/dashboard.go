package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/analytics"
	"github.com/gradewise-dev/gradewise/internal/apperrors"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/store"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/gradewise-dev/gradewise/internal/utils"
)

const recentGoalCount = 3

type DashboardTotals struct {
	Subjects    int `json:"subjects"`
	Scores      int `json:"scores"`
	Goals       int `json:"goals"`
	ActiveGoals int `json:"activeGoals"`
}

type DashboardResponse struct {
	User           types.UserResponse         `json:"user"`
	Totals         DashboardTotals            `json:"totals"`
	OverallAverage *float64                   `json:"overallAverage"`
	Averages       []analytics.SubjectAverage `json:"averages"`
	Subjects       []SubjectResponse          `json:"subjects"`
	Scores         []ScoreResponse            `json:"scores"`
	Goals          []GoalResponse             `json:"goals"`
	RecentGoals    []GoalResponse             `json:"recentGoals"`
}

type AnalyticsResponse struct {
	OverallAverage *float64                        `json:"overallAverage"`
	Averages       []analytics.SubjectAverage      `json:"averages"`
	Trends         map[uint][]analytics.TrendPoint `json:"trends"`
}

type userRecords struct {
	subjects []models.Subject
	scores   []models.Score
	goals    []models.Goal
}

func loadUserRecords(ctx context.Context, userID uint, withGoals bool) (*userRecords, error) {
	var (
		records userRecords
		err     error
	)

	if records.subjects, err = store.ListSubjects(ctx, userID); err != nil {
		return nil, err
	}

	if records.scores, err = store.ListScores(ctx, userID); err != nil {
		return nil, err
	}

	if withGoals {
		if records.goals, err = store.ListGoals(ctx, userID); err != nil {
			return nil, err
		}
	}

	return &records, nil
}

func overallAverage(scores []models.Score) *float64 {
	if avg, ok := analytics.OverallAverage(scores); ok {
		return &avg
	}
	return nil
}

func GetDashboard(ctx *gin.Context) {
	log := utils.Log(ctx)
	log.Info("Building dashboard")

	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, apperrors.Unauthorized("User not authenticated"))
		return
	}

	records, err := loadUserRecords(ctx.Request.Context(), user.ID, true)

	if err != nil {
		log.WithError(err).Error("Failed to load dashboard data")
		respondError(ctx, apperrors.Persistence("Failed to load dashboard", http.StatusInternalServerError, err))
		return
	}

	response := DashboardResponse{
		User: types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		OverallAverage: overallAverage(records.scores),
		Averages:       analytics.SubjectAverages(records.subjects, records.scores),
		Subjects:       make([]SubjectResponse, 0, len(records.subjects)),
		Scores:         make([]ScoreResponse, 0, len(records.scores)),
		Goals:          make([]GoalResponse, 0, len(records.goals)),
		RecentGoals:    []GoalResponse{},
	}

	for _, subject := range records.subjects {
		response.Subjects = append(response.Subjects, subjectResponse(subject))
	}

	for _, score := range records.scores {
		response.Scores = append(response.Scores, scoreResponse(score))
	}

	for _, goal := range records.goals {
		response.Goals = append(response.Goals, goalResponse(goal))
		if goal.Status == types.GoalStatusActive {
			response.Totals.ActiveGoals++
		}
	}

	for _, goal := range analytics.RecentGoals(records.goals, recentGoalCount) {
		response.RecentGoals = append(response.RecentGoals, goalResponse(goal))
	}

	response.Totals.Subjects = len(records.subjects)
	response.Totals.Scores = len(records.scores)
	response.Totals.Goals = len(records.goals)

	ctx.JSON(http.StatusOK, response)
}

func GetAnalytics(ctx *gin.Context) {
	log := utils.Log(ctx)
	log.Info("Building analytics")

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, apperrors.Unauthorized("User not authenticated"))
		return
	}

	records, err := loadUserRecords(ctx.Request.Context(), userID, false)

	if err != nil {
		log.WithError(err).Error("Failed to load analytics data")
		respondError(ctx, apperrors.Persistence("Failed to load analytics", http.StatusInternalServerError, err))
		return
	}

	ctx.JSON(http.StatusOK, AnalyticsResponse{
		OverallAverage: overallAverage(records.scores),
		Averages:       analytics.SubjectAverages(records.subjects, records.scores),
		Trends:         analytics.Trends(records.subjects, records.scores),
	})
}
