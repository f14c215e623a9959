package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"whisper-service/internal/models"
)

// StatsRepository computes the admin dashboard rollups.
type StatsRepository interface {
	GetAdminStats(ctx context.Context) (models.AdminStats, error)
}

// StatsRepo is a sqlx-backed repository.
type StatsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo constructs StatsRepo.
func NewStatsRepo(db *sqlx.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetAdminStats recomputes the counts on every call; nothing is cached.
// Active users is simply the total user count for now.
func (r *StatsRepo) GetAdminStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats

	var totalUsers int
	if err := r.db.GetContext(ctx, &totalUsers, `SELECT COUNT(*) FROM users`); err != nil {
		return stats, err
	}

	var totalMessages int
	if err := r.db.GetContext(ctx, &totalMessages, `SELECT COUNT(*) FROM messages`); err != nil {
		return stats, err
	}

	var totalChatMessages int
	if err := r.db.GetContext(ctx, &totalChatMessages, `SELECT COUNT(*) FROM chat_messages`); err != nil {
		return stats, err
	}

	stats.TotalUsers = totalUsers
	stats.ActiveUsers = totalUsers
	stats.TotalMessages = totalMessages + totalChatMessages
	return stats, nil
}
