package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"friendapp-api/middleware"
	"friendapp-api/services"
	"friendapp-api/utils"
)

type AuthController struct {
	identity   *services.IdentityService
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthController(identity *services.IdentityService, jwtSecret string, sessionTTL time.Duration) *AuthController {
	return &AuthController{
		identity:   identity,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// FirebaseLogin resolves a Firebase identity token to a local user and
// starts a session for it.
func (ac *AuthController) FirebaseLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, isNewUser, err := ac.identity.ResolveFirebase(req.IDToken)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	ac.respondWithSession(c, user.ID, isNewUser, user)
}

// GoogleLogin is the legacy sign-in path; only routed when enabled.
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, isNewUser, err := ac.identity.ResolveGoogle(req.IDToken)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	ac.respondWithSession(c, user.ID, isNewUser, user)
}

func (ac *AuthController) Logout(c *gin.Context) {
	// Sessions are stateless JWTs; logout is handled client-side.
	utils.SendSuccess(c, "Logged out", nil)
}

func (ac *AuthController) respondWithSession(c *gin.Context, userID string, isNewUser bool, user interface{}) {
	token, err := middleware.GenerateToken(userID, ac.jwtSecret, ac.sessionTTL)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"token":       token,
		"user":        user,
		"is_new_user": isNewUser,
	})
}
