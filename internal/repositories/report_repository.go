package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"whisper-service/internal/models"
)

var ErrReportNotFound = errors.New("report not found")

// ReportRepository defines interactions for moderation reports.
type ReportRepository interface {
	CreateReport(ctx context.Context, reporterID, messageID, chatMessageID *int, reason string) (models.Report, error)
	ListReportsWithDetails(ctx context.Context) ([]models.ReportDetails, error)
	UpdateReportStatus(ctx context.Context, reportID int, status string) error
}

// ReportRepo is a sqlx-backed repository.
type ReportRepo struct {
	db *sqlx.DB
}

// NewReportRepo constructs ReportRepo.
func NewReportRepo(db *sqlx.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// CreateReport stores a report with status pending.
func (r *ReportRepo) CreateReport(ctx context.Context, reporterID, messageID, chatMessageID *int, reason string) (models.Report, error) {
	var report models.Report
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO reports (reporter_id, message_id, chat_message_id, reason)
         VALUES ($1, $2, $3, $4)
         RETURNING id, reporter_id, message_id, chat_message_id, reason, status, created_at`,
		reporterID, messageID, chatMessageID, reason).StructScan(&report)
	return report, err
}

// ListReportsWithDetails returns reports joined with reporter identity and the
// content of whichever target each report references, newest first.
func (r *ReportRepo) ListReportsWithDetails(ctx context.Context) ([]models.ReportDetails, error) {
	query := `SELECT r.id, r.reason, r.status, r.created_at,
            u.username AS reporter_username,
            u.email AS reporter_email,
            m.content AS message_content,
            cm.content AS chat_message_content
        FROM reports r
        LEFT JOIN users u ON u.id = r.reporter_id
        LEFT JOIN messages m ON m.id = r.message_id
        LEFT JOIN chat_messages cm ON cm.id = r.chat_message_id
        ORDER BY r.created_at DESC`
	var details []models.ReportDetails
	err := r.db.SelectContext(ctx, &details, query)
	return details, err
}

// UpdateReportStatus overwrites a report's status unconditionally, so setting
// the same terminal status twice is idempotent.
func (r *ReportRepo) UpdateReportStatus(ctx context.Context, reportID int, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reports SET status=$1 WHERE id=$2`, status, reportID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrReportNotFound
	}
	return nil
}
