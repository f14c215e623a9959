package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"whisper-service/internal/auth"
	"whisper-service/internal/middleware"
	"whisper-service/internal/models"
	"whisper-service/internal/repositories"
	"whisper-service/internal/telemetry"
)

// ReportHandler manages the moderation report lifecycle.
type ReportHandler struct {
	reports repositories.ReportRepository
	emitter *telemetry.AuditEmitter
}

// NewReportHandler builds a ReportHandler.
func NewReportHandler(reports repositories.ReportRepository, emitter *telemetry.AuditEmitter) *ReportHandler {
	return &ReportHandler{reports: reports, emitter: emitter}
}

// Create files a report against a message or chat message. The reporter is
// always the session identity; exactly one target must be referenced.
func (h *ReportHandler) Create(c *gin.Context) {
	var req struct {
		MessageID     *int   `json:"message_id"`
		ChatMessageID *int   `json:"chat_message_id"`
		Reason        string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create report"})
		return
	}
	if (req.MessageID == nil) == (req.ChatMessageID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Report must reference exactly one target"})
		return
	}

	identity := middleware.IdentityFromContext(c)
	// The synthetic admin has no user row to reference.
	var reporterID *int
	if identity.Kind == auth.KindUser {
		id := identity.ID
		reporterID = &id
	}

	report, err := h.reports.CreateReport(c.Request.Context(), reporterID, req.MessageID, req.ChatMessageID, req.Reason)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create report"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "INFO", "report created", requestIDFromContext(c), auditUser(c))
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// List returns reports joined with reporter identity and target content,
// newest first.
func (h *ReportHandler) List(c *gin.Context) {
	details, err := h.reports.ListReportsWithDetails(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": details})
}

// UpdateStatus overwrites a report's status. Re-setting a terminal status to
// the same value succeeds.
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid report id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update report status"})
		return
	}
	if !models.ValidReportStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid report status"})
		return
	}

	if err := h.reports.UpdateReportStatus(c.Request.Context(), reportID, req.Status); err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update report status"})
		return
	}

	h.emitter.Emit(c.Request.Context(), "INFO", "report status updated", requestIDFromContext(c), auditUser(c))
	c.JSON(http.StatusOK, gin.H{"message": "Report status updated"})
}
