package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"whisper-service/internal/middleware"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

// auditUser returns the username pointer for audit envelopes, nil for
// anonymous callers.
func auditUser(c *gin.Context) *string {
	identity := middleware.IdentityFromContext(c)
	if !identity.Authenticated() {
		return nil
	}
	username := identity.Username
	return &username
}
