package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-service/internal/repositories"
)

const recentChatMessageLimit = 50

// ChatHandler serves the chat room backfill.
type ChatHandler struct {
	chatMessages repositories.ChatMessageRepository
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chatMessages repositories.ChatMessageRepository) *ChatHandler {
	return &ChatHandler{chatMessages: chatMessages}
}

// ListRecent returns the latest chat messages so a joining client can render
// history before live events arrive.
func (h *ChatHandler) ListRecent(c *gin.Context) {
	msgs, err := h.chatMessages.ListRecentChatMessages(c.Request.Context(), recentChatMessageLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get chat messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
