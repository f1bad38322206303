package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devlinkhq/devlink/models"
	"github.com/devlinkhq/devlink/utils"
)

// UserController handles account registration.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// Register creates a new account with a bcrypt hashed password and a
// gravatar-derived avatar, then issues a token for the fresh identity.
func (u *UserController) Register(ctx *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := u.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.Errors(ctx, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ServerError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Avatar:       utils.GravatarURL(email),
	}

	if err := u.db.Create(&user).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, tokenTTL())
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
