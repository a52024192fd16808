package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/apperrors"
	"github.com/gradewise-dev/gradewise/internal/validation"
)

// respondError writes err as {"error", "details", "fields"} with the matching status.
func respondError(ctx *gin.Context, err error) {
	appErr := apperrors.As(err)
	body := gin.H{"error": appErr.Message}

	if details := appErr.Details(); details != "" && appErr.Kind != apperrors.KindInternal {
		body["details"] = details
	}

	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}

	ctx.AbortWithStatusJSON(appErr.HTTPStatus(), body)
}

// bindJSON decodes the body into req and reports missing or malformed fields.
func bindJSON(ctx *gin.Context, req interface{}) error {
	err := ctx.ShouldBindJSON(req)

	if err == nil {
		return nil
	}

	if fields := validation.FieldErrors(err); fields != nil {
		if missing := validation.MissingFields(err); len(missing) > 0 {
			return apperrors.Validation("Missing required fields: "+strings.Join(missing, ", "), fields)
		}
		return apperrors.Validation("Invalid fields", fields)
	}

	if validation.IsSyntaxError(err) {
		return &apperrors.Error{Kind: apperrors.KindValidation, Message: "Malformed JSON body", Err: err}
	}

	return &apperrors.Error{Kind: apperrors.KindValidation, Message: "Invalid request", Err: err}
}
