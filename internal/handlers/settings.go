package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-service/internal/models"
	"whisper-service/internal/repositories"
)

// SettingsHandler manages the site settings singleton.
type SettingsHandler struct {
	settings repositories.SettingsRepository
}

// NewSettingsHandler builds a SettingsHandler.
func NewSettingsHandler(settings repositories.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the site settings, falling back to defaults before the first
// write.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.GetSiteSettings(c.Request.Context())
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			c.JSON(http.StatusOK, gin.H{"settings": models.DefaultSiteSettings()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get site settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Update upserts the singleton row.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		SiteName   string  `json:"site_name" binding:"required"`
		FooterText string  `json:"footer_text" binding:"required"`
		LogoURL    *string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update site settings"})
		return
	}

	settings, err := h.settings.UpdateSiteSettings(c.Request.Context(), req.SiteName, req.FooterText, req.LogoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update site settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
