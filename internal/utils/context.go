package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/apperrors"
	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/middleware"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/sirupsen/logrus"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// RequireOwner returns the token identity, rejecting a client-supplied user id that
// names somebody else. An empty claimed id is accepted.
func RequireOwner(ctx *gin.Context, claimed string) (uint, error) {
	userID, err := GetCurrentUserID(ctx)

	if err != nil {
		return 0, apperrors.Unauthorized("User not authenticated")
	}

	if claimed == "" {
		return userID, nil
	}

	claimedID, err := ParseID(claimed)

	if err != nil {
		return 0, apperrors.Validation("Invalid userId", map[string]string{"userId": err.Error()})
	}

	if claimedID != userID {
		return 0, apperrors.Forbidden("userId does not match the authenticated user")
	}

	return userID, nil
}

// Log returns an entry tagged with the request id and, when known, the caller.
func Log(ctx *gin.Context) *logrus.Entry {
	fields := logrus.Fields{
		"request_id": ctx.GetString(types.ContextRequestIDKey),
	}

	if userID, err := GetCurrentUserID(ctx); err == nil {
		fields["user_id"] = userID
	}

	return logger.WithFields(fields)
}
