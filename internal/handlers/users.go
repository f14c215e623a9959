package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-service/internal/repositories"
)

// UserHandler serves public profile lookups.
type UserHandler struct {
	users repositories.UserRepository
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(users repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// GetByUsername returns the public view of a user's profile. The password
// hash is never serialized.
func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.users.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
