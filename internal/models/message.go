package models

import "time"

// Message is an anonymous message sent to a user's profile. SenderInfo is a
// free-form pseudonym chosen by the sender, not an identity.
type Message struct {
	ID          int       `db:"id" json:"id"`
	RecipientID int       `db:"recipient_id" json:"recipient_id"`
	Content     string    `db:"content" json:"content"`
	SenderInfo  *string   `db:"sender_info" json:"sender_info"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
