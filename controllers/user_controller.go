package controllers

import (
	"net/http"
	"strconv"

	"cakeshop-service/repository"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userRepo repository.UserRepository
}

func NewUserController(userRepo repository.UserRepository) *UserController {
	return &UserController{userRepo: userRepo}
}

type registerUserRequest struct {
	ID       int64  `json:"id" binding:"required"`
	Username string `json:"username" binding:"max=64"`
}

type updateUsernameRequest struct {
	Username string `json:"username" binding:"required,max=64"`
}

// Register creates a user with a caller-supplied id.
func (uc *UserController) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := uc.userRepo.Create(c.Request.Context(), req.ID, req.Username)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser returns a single user by id.
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := uc.userRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUsername changes the user's display name.
func (uc *UserController) UpdateUsername(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req updateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := uc.userRepo.Update(c.Request.Context(), id, req.Username); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Username updated"})
}

// DeleteUser hard-deletes a user.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := uc.userRepo.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ListUsers returns every registered user.
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.userRepo.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return id, true
}
