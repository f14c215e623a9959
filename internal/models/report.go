package models

import "time"

// Report statuses. Pending is the initial state; approved and rejected are
// terminal.
const (
	ReportStatusPending  = "pending"
	ReportStatusApproved = "approved"
	ReportStatusRejected = "rejected"
)

// ValidReportStatus reports whether s is one of the recognized statuses.
func ValidReportStatus(s string) bool {
	return s == ReportStatusPending || s == ReportStatusApproved || s == ReportStatusRejected
}

// Report is a moderation flag against a message or a chat message. Exactly one
// of MessageID and ChatMessageID is set.
type Report struct {
	ID            int       `db:"id" json:"id"`
	ReporterID    *int      `db:"reporter_id" json:"reporter_id"`
	MessageID     *int      `db:"message_id" json:"message_id"`
	ChatMessageID *int      `db:"chat_message_id" json:"chat_message_id"`
	Reason        string    `db:"reason" json:"reason"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ReportDetails is a report joined with its reporter and target content for
// the admin review screen. Joined fields are nil when the referenced row is
// gone or was never set.
type ReportDetails struct {
	ID                 int       `db:"id" json:"id"`
	Reason             string    `db:"reason" json:"reason"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	ReporterUsername   *string   `db:"reporter_username" json:"reporter_username"`
	ReporterEmail      *string   `db:"reporter_email" json:"reporter_email"`
	MessageContent     *string   `db:"message_content" json:"message_content"`
	ChatMessageContent *string   `db:"chat_message_content" json:"chat_message_content"`
}
