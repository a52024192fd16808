package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/apperrors"
	"github.com/gradewise-dev/gradewise/internal/auth"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/store"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/gradewise-dev/gradewise/internal/utils"
	"github.com/pkg/errors"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  types.UserResponse `json:"user"`
	Token string             `json:"token"`
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func issueToken(user *models.User) (AuthResponse, error) {
	token, err := auth.GenerateJWT(user.ID, user.Name, user.Email)

	if err != nil {
		return AuthResponse{}, errors.Wrap(err, "generate token")
	}

	return AuthResponse{User: userResponse(user), Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := bindJSON(ctx, &req); err != nil {
		utils.Log(ctx).WithError(err).Info("Rejected registration")
		respondError(ctx, err)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		respondError(ctx, apperrors.Validation("Missing required fields: name", map[string]string{"name": "this field is required"}))
		return
	}

	email := normalizeEmail(req.Email)
	log := utils.Log(ctx).WithField("email", email)
	log.Info("Registering user")

	_, err := store.FindUserByEmail(ctx.Request.Context(), email)

	if err == nil {
		log.Warn("Registration with an email already in use")
		respondError(ctx, apperrors.Conflict("User registration failed", errors.New("email already registered")))
		return
	}

	if !errors.Is(err, store.ErrNotFound) {
		log.WithError(err).Error("Database error when checking existing user")
		respondError(ctx, apperrors.Internal(err))
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)

	if errors.Is(err, auth.ErrPasswordTooLong) {
		respondError(ctx, apperrors.Validation("Invalid fields", map[string]string{
			"password": "password must be at most 72 bytes",
		}))
		return
	}

	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		respondError(ctx, apperrors.Internal(err))
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := store.CreateUser(ctx.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Warn("Registration lost a race on the same email")
			respondError(ctx, apperrors.Conflict("User registration failed", errors.New("email already registered")))
			return
		}
		log.WithError(err).Error("Failed to create user")
		respondError(ctx, apperrors.Persistence("User registration failed", http.StatusBadRequest, err))
		return
	}

	resp, err := issueToken(&user)

	if err != nil {
		log.WithError(err).Error("Failed to generate JWT")
		respondError(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := bindJSON(ctx, &req); err != nil {
		respondError(ctx, err)
		return
	}

	email := normalizeEmail(req.Email)
	log := utils.Log(ctx).WithField("email", email)
	log.Info("Login attempt")

	user, err := store.FindUserByEmail(ctx.Request.Context(), email)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("Login for unknown email")
			respondError(ctx, apperrors.Auth("Invalid credentials"))
			return
		}
		log.WithError(err).Error("Database error when fetching user")
		respondError(ctx, apperrors.Internal(err))
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		log.Info("Login with wrong password")
		respondError(ctx, apperrors.Auth("Invalid credentials"))
		return
	}

	resp, err := issueToken(user)

	if err != nil {
		log.WithError(err).Error("Failed to generate JWT")
		respondError(ctx, apperrors.Internal(err))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, apperrors.Unauthorized("User not authenticated"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    currentUser.ID,
			Name:  currentUser.Name,
			Email: currentUser.Email,
		},
	})
}
