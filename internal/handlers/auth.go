package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"whisper-service/internal/auth"
	"whisper-service/internal/middleware"
	"whisper-service/internal/repositories"
	"whisper-service/internal/session"
	"whisper-service/internal/telemetry"
)

// AdminCredentials is the static credential pair that yields the synthetic
// administrator session. It is matched before any user lookup.
type AdminCredentials struct {
	Username string
	Password string
}

// AuthHandler manages registration, login, logout and session inspection.
type AuthHandler struct {
	users   repositories.UserRepository
	store   *session.Store
	admin   AdminCredentials
	emitter *telemetry.AuditEmitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(users repositories.UserRepository, store *session.Store, admin AdminCredentials, emitter *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{users: users, store: store, admin: admin, emitter: emitter}
}

// Register creates a user with unique username and email and establishes a
// session bound to the new identity.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Registration failed"})
		return
	}

	if _, err := h.users.GetUserByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	if _, err := h.users.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Username, req.Email, hash)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("create user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	identity := auth.ForUser(user)
	if err := h.store.Save(c.Writer, c.Request, identity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "INFO", "user registered", requestIDFromContext(c), &user.Username)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Login authenticates either the static admin credential pair or a registered
// user. The admin pair short-circuits before the user lookup and never
// touches the users table.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Login failed"})
		return
	}

	if req.Username == h.admin.Username && req.Password == h.admin.Password {
		identity := auth.SyntheticAdmin()
		if err := h.store.Save(c.Writer, c.Request, identity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
			return
		}
		h.emitter.Emit(c.Request.Context(), "INFO", "admin login", requestIDFromContext(c), &identity.Username)
		c.JSON(http.StatusOK, gin.H{"user": identity})
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	if !auth.VerifyPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := h.store.Save(c.Writer, c.Request, auth.ForUser(user)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "INFO", "user login", requestIDFromContext(c), &user.Username)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout destroys the session unconditionally; logging out twice is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.store.Clear(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the identity bound to the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if !identity.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": identity})
}
