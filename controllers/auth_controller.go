package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devlinkhq/devlink/config"
	"github.com/devlinkhq/devlink/middleware"
	"github.com/devlinkhq/devlink/models"
	"github.com/devlinkhq/devlink/utils"
)

// AuthController handles identity lookup and credential checks.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Me returns the caller's user record, hash excluded.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Login verifies credentials and issues a token. An unknown email and a wrong
// password produce the same generic body so account existence never leaks.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, err)
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Errors(ctx, http.StatusBadRequest, "Invalid credentials")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Errors(ctx, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, tokenTTL())
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func tokenTTL() time.Duration {
	return time.Duration(config.Get().TokenTTLHours) * time.Hour
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
