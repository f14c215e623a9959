package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-service/internal/auth"
	"whisper-service/internal/session"
)

const identityContextKey = "identity"

// ResolveIdentity resolves the session cookie once per request into an
// explicit identity value for downstream handlers.
func ResolveIdentity(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityContextKey, store.Current(c.Request))
		c.Next()
	}
}

// IdentityFromContext returns the resolved identity, or anonymous when the
// resolver did not run.
func IdentityFromContext(c *gin.Context) auth.Identity {
	if val, ok := c.Get(identityContextKey); ok {
		if identity, ok := val.(auth.Identity); ok {
			return identity
		}
	}
	return auth.Anonymous()
}

// SetIdentity binds an identity to the request context. Used by login
// handlers and tests.
func SetIdentity(c *gin.Context, identity auth.Identity) {
	c.Set(identityContextKey, identity)
}

// RequireAuth rejects unauthenticated callers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFromContext(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers whose session lacks the admin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFromContext(c)
		if !identity.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		if !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}
