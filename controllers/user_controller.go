package controllers

import (
	"github.com/gin-gonic/gin"

	"friendapp-api/middleware"
	"friendapp-api/repositories"
	"friendapp-api/utils"
)

type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

// GetProfile returns the authenticated user.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	user, err := uc.users.GetByID(userID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.JSON(200, gin.H{"user": user})
}

// SearchUsers matches first name, last name or handle, case-insensitive.
// Queries shorter than the minimum return an empty list.
func (uc *UserController) SearchUsers(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	query := c.Query("q")

	users, err := uc.users.Search(query, userID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.JSON(200, gin.H{"users": users})
}
