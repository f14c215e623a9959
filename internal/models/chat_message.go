package models

import "time"

// ChatMessage is a message posted to the public chat room. Username is only
// populated on reads that join the author.
type ChatMessage struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
