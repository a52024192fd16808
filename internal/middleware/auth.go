package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/db"
	"github.com/gradewise-dev/gradewise/internal/auth"
	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// bearerToken reads the Authorization header. Browsers cannot set headers on websocket
// upgrades, so a token query parameter is accepted when allowQuery is set.
func bearerToken(ctx *gin.Context, allowQuery bool) (string, string) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		if token := ctx.Query("token"); allowQuery && token != "" {
			return token, ""
		}
		return "", "Authorization token is required"
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "Authorization header format must be Bearer {token}"
	}

	return strings.TrimSpace(parts[1]), ""
}

func authenticate(allowQuery bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, problem := bearerToken(ctx, allowQuery)

		if problem != "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": problem})
			return
		}

		claims, err := auth.VerifyJWT(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var user models.User

		if err := db.DB.WithContext(ctx.Request.Context()).Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			logger.Log.WithField("user_id", claims.UserID).WithError(err).Warn("Token refers to an unknown user")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		ctx.Next()
	}
}

// AuthMiddleware requires a valid bearer token in the Authorization header.
func AuthMiddleware() gin.HandlerFunc {
	return authenticate(false)
}

// WebSocketAuthMiddleware also accepts the token as a query parameter.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return authenticate(true)
}
