package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"friendapp-api/middleware"
	"friendapp-api/services"
	"friendapp-api/utils"
)

type FriendController struct {
	friends *services.FriendService
}

func NewFriendController(friends *services.FriendService) *FriendController {
	return &FriendController{friends: friends}
}

type SendFriendRequestBody struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Note       string `json:"note"`
}

// SendFriendRequest submits a request; it stays pending until an admin
// decides it.
func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	senderID := c.GetString(middleware.UserIDKey)

	var body SendFriendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	request, err := fc.friends.Submit(senderID, body.ReceiverID, body.Note)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendCreated(c, "Friend request submitted for approval", gin.H{"request": request})
}

// GetFriends lists the caller's confirmed friends.
func (fc *FriendController) GetFriends(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	friends, err := fc.friends.ListFriends(userID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.JSON(200, gin.H{"friends": friends})
}

type BlockUserBody struct {
	UserID string `json:"user_id" binding:"required"`
}

// BlockUser blocks the target, dropping any friendship between the pair.
func (fc *FriendController) BlockUser(c *gin.Context) {
	blockerID := c.GetString(middleware.UserIDKey)

	var body BlockUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	block, err := fc.friends.Block(blockerID, body.UserID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendCreated(c, "User blocked", gin.H{"blocked_user": block})
}

// UnblockUser removes one of the caller's own blocks.
func (fc *FriendController) UnblockUser(c *gin.Context) {
	blockerID := c.GetString(middleware.UserIDKey)

	blockID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "invalid block id")
		return
	}

	if err := fc.friends.Unblock(blockerID, uint(blockID)); err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendSuccess(c, "Block removed", nil)
}

// GetBlockedUsers lists the caller's blocks.
func (fc *FriendController) GetBlockedUsers(c *gin.Context) {
	blockerID := c.GetString(middleware.UserIDKey)

	blocks, err := fc.friends.ListBlocked(blockerID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.JSON(200, gin.H{"blocked_users": blocks})
}
