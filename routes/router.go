package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devlinkhq/devlink/config"
	"github.com/devlinkhq/devlink/controllers"
	"github.com/devlinkhq/devlink/middleware"
	"github.com/devlinkhq/devlink/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.AuthHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userController := controllers.NewUserController(db)
	authController := controllers.NewAuthController(db)
	profileController := controllers.NewProfileController(db)
	postController := controllers.NewPostController(db)

	api := r.Group("/api")

	users := api.Group("/users")
	users.Use(middleware.RateLimitMiddleware())
	users.POST("", userController.Register)

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware())
	auth.GET("", middleware.AuthRequired(), authController.Me)
	auth.POST("", authController.Login)

	profile := api.Group("/profile")
	profile.GET("", profileController.ListProfiles)
	profile.GET("/user/:user_id", profileController.GetProfileByUser)
	profile.GET("/me", middleware.AuthRequired(), profileController.GetMyProfile)
	profile.POST("", middleware.AuthRequired(), profileController.UpsertProfile)
	profile.DELETE("", middleware.AuthRequired(), profileController.DeleteAccount)
	profile.PUT("/experience", middleware.AuthRequired(), profileController.AddExperience)
	profile.DELETE("/experience/:exp_id", middleware.AuthRequired(), profileController.DeleteExperience)
	profile.PUT("/education", middleware.AuthRequired(), profileController.AddEducation)
	profile.DELETE("/education/:edu_id", middleware.AuthRequired(), profileController.DeleteEducation)

	post := api.Group("/post")
	post.Use(middleware.AuthRequired())
	post.POST("", postController.CreatePost)
	post.GET("", postController.ListPosts)
	post.GET("/:id", postController.GetPost)
	post.DELETE("/:id", postController.DeletePost)
	post.PUT("/like/:id", postController.LikePost)
	post.PUT("/comment/:id", postController.CreateComment)
	post.DELETE("/comment/:id/:comment_id", postController.DeleteComment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.ErrorMessage(ctx, http.StatusNotFound, "Route not found")
	})

	return r
}
