package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"friendapp-api/config"
	"friendapp-api/controllers"
	"friendapp-api/middleware"
	"friendapp-api/repositories"
	"friendapp-api/services"
)

func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	relationshipRepo := repositories.NewRelationshipRepository(db)

	// Services
	firebaseVerifier := services.NewFirebaseVerifier(cfg.FirebaseProjectID)
	var googleVerifier services.TokenVerifier
	if cfg.GoogleAuthEnabled {
		googleVerifier = services.NewGoogleVerifier(cfg.GoogleClientID)
	}
	identityService := services.NewIdentityService(userRepo, firebaseVerifier, googleVerifier)
	friendService := services.NewFriendService(userRepo, relationshipRepo)

	// Controllers
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authController := controllers.NewAuthController(identityService, cfg.JWTSecret, sessionTTL)
	userController := controllers.NewUserController(userRepo)
	friendController := controllers.NewFriendController(friendService)
	adminController := controllers.NewAdminController(userRepo, friendService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "status": "healthy"})
	})

	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/firebase-login", authController.FirebaseLogin)
		if cfg.GoogleAuthEnabled {
			auth.POST("/google-login", authController.GoogleLogin)
		}
		auth.POST("/logout", authController.Logout)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	{
		users := protected.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.GET("/search", userController.SearchUsers)
		}

		friends := protected.Group("/friends")
		{
			friends.POST("/requests", friendController.SendFriendRequest)
			friends.GET("", friendController.GetFriends)
			friends.POST("/block", friendController.BlockUser)
			friends.DELETE("/block/:id", friendController.UnblockUser)
			friends.GET("/blocked", friendController.GetBlockedUsers)
		}

		admin := protected.Group("/")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.GET("/users", adminController.ListUsers)
			admin.PUT("/users/:id/toggle-admin", adminController.ToggleAdmin)
			admin.GET("/friends/requests/pending", adminController.GetPendingRequests)
			admin.POST("/friends/requests/:id/approve", adminController.ApproveRequest)
			admin.POST("/friends/requests/:id/reject", adminController.RejectRequest)
		}
	}
}
