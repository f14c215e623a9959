package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"whisper-service/internal/models"
)

var ErrSettingsNotFound = errors.New("site settings not found")

// SettingsRepository manages the site settings singleton.
type SettingsRepository interface {
	GetSiteSettings(ctx context.Context) (models.SiteSettings, error)
	UpdateSiteSettings(ctx context.Context, siteName, footerText string, logoURL *string) (models.SiteSettings, error)
}

// SettingsRepo is a sqlx-backed repository.
type SettingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo constructs SettingsRepo.
func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

const settingsColumns = `id, site_name, footer_text, logo_url, updated_at`

// GetSiteSettings returns the singleton row, or ErrSettingsNotFound before the
// first write.
func (r *SettingsRepo) GetSiteSettings(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.GetContext(ctx, &settings, `SELECT `+settingsColumns+` FROM site_settings LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SiteSettings{}, ErrSettingsNotFound
	}
	return settings, err
}

// UpdateSiteSettings updates the singleton in place, creating it lazily on the
// first write.
func (r *SettingsRepo) UpdateSiteSettings(ctx context.Context, siteName, footerText string, logoURL *string) (models.SiteSettings, error) {
	existing, err := r.GetSiteSettings(ctx)
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			return models.SiteSettings{}, err
		}
		var created models.SiteSettings
		err := r.db.QueryRowxContext(ctx,
			`INSERT INTO site_settings (site_name, footer_text, logo_url) VALUES ($1, $2, $3) RETURNING `+settingsColumns,
			siteName, footerText, logoURL).StructScan(&created)
		return created, err
	}

	var updated models.SiteSettings
	err = r.db.QueryRowxContext(ctx,
		`UPDATE site_settings SET site_name=$1, footer_text=$2, logo_url=$3, updated_at=NOW() WHERE id=$4 RETURNING `+settingsColumns,
		siteName, footerText, logoURL, existing.ID).StructScan(&updated)
	return updated, err
}
