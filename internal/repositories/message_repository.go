package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"whisper-service/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines interactions for anonymous inbox messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, recipientID int, content string, senderInfo *string) (models.Message, error)
	ListMessagesForRecipient(ctx context.Context, recipientID int) ([]models.Message, error)
	DeleteMessage(ctx context.Context, messageID, recipientID int) error
	MarkMessageRead(ctx context.Context, messageID, recipientID int) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = `id, recipient_id, content, sender_info, is_read, created_at`

// CreateMessage stores an anonymous message for a recipient.
func (r *MessageRepo) CreateMessage(ctx context.Context, recipientID int, content string, senderInfo *string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (recipient_id, content, sender_info) VALUES ($1, $2, $3) RETURNING `+messageColumns,
		recipientID, content, senderInfo).StructScan(&msg)
	return msg, err
}

// ListMessagesForRecipient returns the recipient's inbox, newest first.
func (r *MessageRepo) ListMessagesForRecipient(ctx context.Context, recipientID int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages WHERE recipient_id=$1 ORDER BY created_at DESC`, recipientID)
	return msgs, err
}

// DeleteMessage removes a message. Only the recipient may delete it.
func (r *MessageRepo) DeleteMessage(ctx context.Context, messageID, recipientID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id=$1 AND recipient_id=$2`, messageID, recipientID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// MarkMessageRead flags a message as read. Only the recipient may do so.
func (r *MessageRepo) MarkMessageRead(ctx context.Context, messageID, recipientID int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE id=$1 AND recipient_id=$2`, messageID, recipientID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}
