package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"whisper-service/internal/models"
)

// ChatMessageRepository defines interactions for public chat room messages.
type ChatMessageRepository interface {
	CreateChatMessage(ctx context.Context, userID int, content string) (models.ChatMessage, error)
	ListRecentChatMessages(ctx context.Context, limit int) ([]models.ChatMessage, error)
}

// ChatMessageRepo is a sqlx-backed repository.
type ChatMessageRepo struct {
	db *sqlx.DB
}

// NewChatMessageRepo constructs ChatMessageRepo.
func NewChatMessageRepo(db *sqlx.DB) *ChatMessageRepo {
	return &ChatMessageRepo{db: db}
}

// CreateChatMessage stores a chat room message authored by userID.
func (r *ChatMessageRepo) CreateChatMessage(ctx context.Context, userID int, content string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO chat_messages (user_id, content) VALUES ($1, $2) RETURNING id, user_id, content, created_at`,
		userID, content).StructScan(&msg)
	return msg, err
}

// ListRecentChatMessages returns the latest chat messages, newest first.
func (r *ChatMessageRepo) ListRecentChatMessages(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT cm.id, cm.user_id, u.username, cm.content, cm.created_at
		 FROM chat_messages cm
		 JOIN users u ON u.id = cm.user_id
		 ORDER BY cm.created_at DESC LIMIT $1`, limit)
	return msgs, err
}
