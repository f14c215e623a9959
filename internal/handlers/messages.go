package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"whisper-service/internal/middleware"
	"whisper-service/internal/repositories"
)

// MessageHandler manages the anonymous inbox.
type MessageHandler struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages repositories.MessageRepository, users repositories.UserRepository) *MessageHandler {
	return &MessageHandler{messages: messages, users: users}
}

// Create stores an anonymous message. No session is required; the recipient
// must exist.
func (h *MessageHandler) Create(c *gin.Context) {
	var req struct {
		RecipientID int     `json:"recipient_id" binding:"required"`
		Content     string  `json:"content" binding:"required"`
		SenderInfo  *string `json:"sender_info"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create message"})
		return
	}

	if _, err := h.users.GetUser(c.Request.Context(), req.RecipientID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Recipient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create message"})
		return
	}

	msg, err := h.messages.CreateMessage(c.Request.Context(), req.RecipientID, req.Content, req.SenderInfo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// List returns the caller's inbox, newest first.
func (h *MessageHandler) List(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	msgs, err := h.messages.ListMessagesForRecipient(c.Request.Context(), identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// Delete removes a message from the caller's inbox.
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid message id"})
		return
	}

	identity := middleware.IdentityFromContext(c)
	if err := h.messages.DeleteMessage(c.Request.Context(), messageID, identity.ID); err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

// MarkRead flags a message in the caller's inbox as read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid message id"})
		return
	}

	identity := middleware.IdentityFromContext(c)
	if err := h.messages.MarkMessageRead(c.Request.Context(), messageID, identity.ID); err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark message as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}
