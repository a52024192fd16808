package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/apperrors"
	"github.com/gradewise-dev/gradewise/internal/metrics"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/realtime"
	"github.com/gradewise-dev/gradewise/internal/store"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/gradewise-dev/gradewise/internal/utils"
	"github.com/pkg/errors"
)

type CreateGoalRequest struct {
	Description string           `json:"description" binding:"required"`
	TargetScore types.FlexString `json:"targetScore" binding:"required"`
	Deadline    types.FlexString `json:"deadline" binding:"required"`
	UserID      types.FlexString `json:"userId"`
}

type GoalResponse struct {
	ID            uint       `json:"id"`
	Description   string     `json:"description"`
	TargetScore   float64    `json:"targetScore"`
	Deadline      time.Time  `json:"deadline"`
	UserID        uint       `json:"userId"`
	Status        string     `json:"status"`
	AchievedScore *float64   `json:"achievedScore"`
	EvaluatedAt   *time.Time `json:"evaluatedAt,omitempty"`
}

func goalResponse(goal models.Goal) GoalResponse {
	return GoalResponse{
		ID:            goal.ID,
		Description:   goal.Description,
		TargetScore:   goal.TargetScore,
		Deadline:      goal.Deadline.UTC(),
		UserID:        goal.UserID,
		Status:        goal.Status,
		AchievedScore: goal.AchievedScore,
		EvaluatedAt:   goal.EvaluatedAt,
	}
}

func CreateGoal(ctx *gin.Context) {
	log := utils.Log(ctx)
	log.Info("Creating goal")

	var body CreateGoalRequest

	if err := bindJSON(ctx, &body); err != nil {
		log.WithError(err).Warn("Invalid goal request")
		respondError(ctx, err)
		return
	}

	invalid := map[string]string{}

	description := strings.TrimSpace(body.Description)
	if description == "" {
		invalid["description"] = "this field is required"
	}

	target, err := parseScoreValue(body.TargetScore.String())
	if err != nil {
		invalid["targetScore"] = err.Error()
	}

	deadline, err := utils.ParseDate(body.Deadline.String())
	if err != nil {
		invalid["deadline"] = err.Error()
	}

	if len(invalid) > 0 {
		log.WithField("fields", invalid).Warn("Invalid goal fields")
		respondError(ctx, apperrors.Validation("Invalid fields", invalid))
		return
	}

	userID, err := utils.RequireOwner(ctx, body.UserID.String())

	if err != nil {
		log.WithError(err).Warn("Goal owner rejected")
		respondError(ctx, err)
		return
	}

	goal := models.Goal{
		Description: description,
		TargetScore: target,
		Deadline:    deadline.UTC(),
		UserID:      userID,
		Status:      types.GoalStatusActive,
	}

	if err := store.CreateGoal(ctx.Request.Context(), &goal); err != nil {
		log.WithError(err).Error("Failed to create goal")
		respondError(ctx, apperrors.Persistence("Failed to create goal", http.StatusBadRequest, err))
		return
	}

	metrics.RecordWrite("goal", "create")
	realtime.BroadcastRefresh(userID, "goals")

	ctx.JSON(http.StatusOK, goalResponse(goal))
}

// ListGoals serves GET /goals/:userId; the id must be the caller's.
func ListGoals(ctx *gin.Context) {
	listGoals(ctx, ctx.Param("userId"))
}

// ListMyGoals serves GET /goals.
func ListMyGoals(ctx *gin.Context) {
	listGoals(ctx, "")
}

func listGoals(ctx *gin.Context, claimed string) {
	log := utils.Log(ctx)
	log.WithField("claimed_user_id", claimed).Info("Listing goals")

	userID, err := utils.RequireOwner(ctx, claimed)

	if err != nil {
		log.WithError(err).Warn("Goal listing rejected")
		respondError(ctx, err)
		return
	}

	goals, err := store.ListGoals(ctx.Request.Context(), userID)

	if err != nil {
		log.WithError(err).Error("Failed to fetch goals")
		respondError(ctx, apperrors.Persistence("Failed to fetch goals", http.StatusInternalServerError, err))
		return
	}

	response := make([]GoalResponse, 0, len(goals))

	for _, goal := range goals {
		response = append(response, goalResponse(goal))
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteGoal(ctx *gin.Context) {
	log := utils.Log(ctx).WithField("goal_id", ctx.Param("id"))
	log.Info("Deleting goal")

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, apperrors.Unauthorized("User not authenticated"))
		return
	}

	goalID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondError(ctx, apperrors.Validation("Invalid goal id", map[string]string{"id": err.Error()}))
		return
	}

	if err := store.DeleteGoal(ctx.Request.Context(), goalID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(ctx, apperrors.NotFound("Goal not found"))
			return
		}
		log.WithError(err).Error("Failed to delete goal")
		respondError(ctx, apperrors.Persistence("Failed to delete goal", http.StatusInternalServerError, err))
		return
	}

	metrics.RecordWrite("goal", "delete")
	realtime.BroadcastRefresh(userID, "goals")

	ctx.Status(http.StatusNoContent)
}
