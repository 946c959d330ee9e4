package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"friendapp-api/apperr"
	"friendapp-api/middleware"
	"friendapp-api/repositories"
	"friendapp-api/services"
	"friendapp-api/utils"
)

// AdminController exposes the moderation surface: deciding friend
// requests, listing users and toggling the admin flag. Every route is
// behind the RequireAdmin gate.
type AdminController struct {
	users   *repositories.UserRepository
	friends *services.FriendService
}

func NewAdminController(users *repositories.UserRepository, friends *services.FriendService) *AdminController {
	return &AdminController{users: users, friends: friends}
}

// GetPendingRequests lists every request awaiting a decision.
func (ac *AdminController) GetPendingRequests(c *gin.Context) {
	requests, err := ac.friends.ListPending()
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.JSON(200, gin.H{"requests": requests})
}

// ApproveRequest approves a pending request and creates the friendship.
func (ac *AdminController) ApproveRequest(c *gin.Context) {
	ac.decide(c, services.OutcomeApprove, "Friend request approved")
}

// RejectRequest rejects a pending request.
func (ac *AdminController) RejectRequest(c *gin.Context) {
	ac.decide(c, services.OutcomeReject, "Friend request rejected")
}

func (ac *AdminController) decide(c *gin.Context, outcome, message string) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "invalid request id")
		return
	}

	request, svcErr := ac.friends.Decide(uint(requestID), outcome)
	if svcErr != nil {
		utils.SendError(c, svcErr)
		return
	}

	utils.SendSuccess(c, message, gin.H{"request": request})
}

// ListUsers returns every user, newest first.
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.users.ListAll()
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.JSON(200, gin.H{"users": users})
}

// ToggleAdmin flips another user's admin flag. Admins cannot change
// their own flag through this path.
func (ac *AdminController) ToggleAdmin(c *gin.Context) {
	actorID := c.GetString(middleware.UserIDKey)
	targetID := c.Param("id")

	if actorID == targetID {
		utils.SendError(c, apperr.New(apperr.CodeConflict, "cannot change your own admin flag"))
		return
	}

	target, err := ac.users.GetByID(targetID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	target.IsAdmin = !target.IsAdmin
	if err := ac.users.Save(target); err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendSuccess(c, "Admin flag updated", gin.H{
		"user_id":  target.ID,
		"is_admin": target.IsAdmin,
	})
}
