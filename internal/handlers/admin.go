package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"whisper-service/internal/repositories"
	"whisper-service/internal/telemetry"
)

// AdminHandler serves admin-only user management and dashboard rollups.
type AdminHandler struct {
	users   repositories.UserRepository
	stats   repositories.StatsRepository
	emitter *telemetry.AuditEmitter
}

// NewAdminHandler builds an AdminHandler.
func NewAdminHandler(users repositories.UserRepository, stats repositories.StatsRepository, emitter *telemetry.AuditEmitter) *AdminHandler {
	return &AdminHandler{users: users, stats: stats, emitter: emitter}
}

// GetStats recomputes the dashboard counts on every call.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.GetAdminStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get admin stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListUsers returns all registered users, newest first.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser removes an account. Inbox and chat messages cascade; reports
// keep their rows with nulled references.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "WARN", "user deleted", requestIDFromContext(c), auditUser(c))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
