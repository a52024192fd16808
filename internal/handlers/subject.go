package handlers

import (
	"net/http"
	"strings"

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

type CreateSubjectRequest struct {
	Name   string           `json:"name" binding:"required"`
	UserID types.FlexString `json:"userId"`
}

type SubjectResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	UserID uint   `json:"userId"`
}

func subjectResponse(subject models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:     subject.ID,
		Name:   subject.Name,
		UserID: subject.UserID,
	}
}

func CreateSubject(ctx *gin.Context) {
	log := utils.Log(ctx)
	log.Info("Creating subject")

	var body CreateSubjectRequest

	if err := bindJSON(ctx, &body); err != nil {
		log.WithError(err).Warn("Invalid subject request")
		respondError(ctx, err)
		return
	}

	name := strings.TrimSpace(body.Name)

	if name == "" {
		respondError(ctx, apperrors.Validation("Missing required fields: name", map[string]string{"name": "this field is required"}))
		return
	}

	userID, err := utils.RequireOwner(ctx, body.UserID.String())

	if err != nil {
		log.WithError(err).Warn("Subject owner rejected")
		respondError(ctx, err)
		return
	}

	subject := models.Subject{
		Name:   name,
		UserID: userID,
	}

	if err := store.CreateSubject(ctx.Request.Context(), &subject); err != nil {
		log.WithError(err).Error("Failed to create subject")
		respondError(ctx, apperrors.Persistence("Failed to create subject", http.StatusBadRequest, err))
		return
	}

	metrics.RecordWrite("subject", "create")
	realtime.BroadcastRefresh(userID, "subjects")

	ctx.JSON(http.StatusOK, subjectResponse(subject))
}

// ListSubjects serves GET /subjects/:userId; the id must be the caller's.
func ListSubjects(ctx *gin.Context) {
	listSubjects(ctx, ctx.Param("userId"))
}

// ListMySubjects serves GET /subjects.
func ListMySubjects(ctx *gin.Context) {
	listSubjects(ctx, "")
}

func listSubjects(ctx *gin.Context, claimed string) {
	log := utils.Log(ctx)
	log.WithField("claimed_user_id", claimed).Info("Listing subjects")

	userID, err := utils.RequireOwner(ctx, claimed)

	if err != nil {
		log.WithError(err).Warn("Subject listing rejected")
		respondError(ctx, err)
		return
	}

	subjects, err := store.ListSubjects(ctx.Request.Context(), userID)

	if err != nil {
		log.WithError(err).Error("Failed to fetch subjects")
		respondError(ctx, apperrors.Persistence("Failed to fetch subjects", http.StatusInternalServerError, err))
		return
	}

	response := make([]SubjectResponse, 0, len(subjects))

	for _, subject := range subjects {
		response = append(response, subjectResponse(subject))
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteSubject(ctx *gin.Context) {
	log := utils.Log(ctx).WithField("subject_id", ctx.Param("id"))
	log.Info("Deleting subject")

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, apperrors.Unauthorized("User not authenticated"))
		return
	}

	subjectID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		respondError(ctx, apperrors.Validation("Invalid subject id", map[string]string{"id": err.Error()}))
		return
	}

	if err := store.DeleteSubject(ctx.Request.Context(), subjectID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(ctx, apperrors.NotFound("Subject not found"))
			return
		}
		log.WithError(err).Error("Failed to delete subject")
		respondError(ctx, apperrors.Persistence("Failed to delete subject", http.StatusInternalServerError, err))
		return
	}

	metrics.RecordWrite("subject", "delete")
	realtime.BroadcastRefresh(userID, "subjects")

	ctx.Status(http.StatusNoContent)
}
