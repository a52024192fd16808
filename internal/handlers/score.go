package handlers

import (
	"fmt"
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
	"gorm.io/datatypes"
)

const (
	minScore = 0
	maxScore = 100
)

type CreateScoreRequest struct {
	Value          types.FlexString `json:"value" binding:"required"`
	AssignmentName string           `json:"assignmentName" binding:"required"`
	Date           types.FlexString `json:"date" binding:"required"`
	SubjectID      types.FlexString `json:"subjectId" binding:"required"`
	UserID         types.FlexString `json:"userId"`
}

type ScoreResponse struct {
	ID             uint            `json:"id"`
	Value          float64         `json:"value"`
	AssignmentName string          `json:"assignmentName"`
	Date           time.Time       `json:"date"`
	SubjectID      uint            `json:"subjectId"`
	UserID         uint            `json:"userId"`
	Subject        SubjectResponse `json:"subject"`
}

func scoreResponse(score models.Score) ScoreResponse {
	return ScoreResponse{
		ID:             score.ID,
		Value:          score.Value,
		AssignmentName: score.AssignmentName,
		Date:           time.Time(score.Date).UTC(),
		SubjectID:      score.SubjectID,
		UserID:         score.UserID,
		Subject:        subjectResponse(score.Subject),
	}
}

// parseScoreValue parses a 0-100 score.
func parseScoreValue(raw string) (float64, error) {
	value, err := utils.ParseNumber(raw)

	if err != nil {
		return 0, err
	}

	if value < minScore || value > maxScore {
		return 0, fmt.Errorf("must be between %d and %d", minScore, maxScore)
	}

	return value, nil
}

func CreateScore(ctx *gin.Context) {
	log := utils.Log(ctx)
	log.Info("Creating score")

	var body CreateScoreRequest

	if err := bindJSON(ctx, &body); err != nil {
		log.WithError(err).Warn("Invalid score request")
		respondError(ctx, err)
		return
	}

	invalid := map[string]string{}

	value, err := parseScoreValue(body.Value.String())
	if err != nil {
		invalid["value"] = err.Error()
	}

	date, err := utils.ParseDate(body.Date.String())
	if err != nil {
		invalid["date"] = err.Error()
	}

	subjectID, err := utils.ParseID(body.SubjectID.String())
	if err != nil {
		invalid["subjectId"] = err.Error()
	}

	assignmentName := strings.TrimSpace(body.AssignmentName)
	if assignmentName == "" {
		invalid["assignmentName"] = "this field is required"
	}

	if len(invalid) > 0 {
		log.WithField("fields", invalid).Warn("Invalid score fields")
		respondError(ctx, apperrors.Validation("Invalid fields", invalid))
		return
	}

	userID, err := utils.RequireOwner(ctx, body.UserID.String())

	if err != nil {
		log.WithError(err).Warn("Score owner rejected")
		respondError(ctx, err)
		return
	}

	if _, err := store.FindSubject(ctx.Request.Context(), subjectID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(ctx, apperrors.Validation("Invalid fields", map[string]string{"subjectId": "subject does not exist"}))
			return
		}
		log.WithError(err).Error("Failed to look up subject")
		respondError(ctx, apperrors.Persistence("Failed to create score", http.StatusBadRequest, err))
		return
	}

	score := models.Score{
		Value:          value,
		AssignmentName: assignmentName,
		Date:           datatypes.Date(utils.TruncateToDate(date)),
		SubjectID:      subjectID,
		UserID:         userID,
	}

	if err := store.CreateScore(ctx.Request.Context(), &score); err != nil {
		log.WithError(err).Error("Failed to create score")
		respondError(ctx, apperrors.Persistence("Failed to create score", http.StatusBadRequest, err))
		return
	}

	metrics.RecordWrite("score", "create")
	realtime.BroadcastRefresh(userID, "scores")

	ctx.JSON(http.StatusOK, scoreResponse(score))
}

// ListScores serves GET /scores/:userId; the id must be the caller's.
func ListScores(ctx *gin.Context) {
	listScores(ctx, ctx.Param("userId"))
}

// ListMyScores serves GET /scores.
func ListMyScores(ctx *gin.Context) {
	listScores(ctx, "")
}

func listScores(ctx *gin.Context, claimed string) {
	log := utils.Log(ctx)
	log.WithField("claimed_user_id", claimed).Info("Listing scores")

	userID, err := utils.RequireOwner(ctx, claimed)

	if err != nil {
		log.WithError(err).Warn("Score listing rejected")
		respondError(ctx, err)
		return
	}

	scores, err := store.ListScores(ctx.Request.Context(), userID)

	if err != nil {
		log.WithError(err).Error("Failed to fetch scores")
		respondError(ctx, apperrors.Persistence("Failed to fetch scores", http.StatusInternalServerError, err))
		return
	}

	response := make([]ScoreResponse, 0, len(scores))

	for _, score := range scores {
		response = append(response, scoreResponse(score))
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteScore(ctx *gin.Context) {
	log := utils.Log(ctx).WithField("score_id", ctx.Param("id"))
	log.Info("Deleting score")

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, apperrors.Unauthorized("User not authenticated"))
		return
	}

	scoreID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondError(ctx, apperrors.Validation("Invalid score id", map[string]string{"id": err.Error()}))
		return
	}

	if err := store.DeleteScore(ctx.Request.Context(), scoreID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(ctx, apperrors.NotFound("Score not found"))
			return
		}
		log.WithError(err).Error("Failed to delete score")
		respondError(ctx, apperrors.Persistence("Failed to delete score", http.StatusInternalServerError, err))
		return
	}

	metrics.RecordWrite("score", "delete")
	realtime.BroadcastRefresh(userID, "scores")

	ctx.Status(http.StatusNoContent)
}
