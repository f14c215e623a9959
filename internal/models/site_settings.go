package models

import "time"

// SiteSettings is a singleton record; at most one row ever exists.
type SiteSettings struct {
	ID         int       `db:"id" json:"id"`
	SiteName   string    `db:"site_name" json:"site_name"`
	FooterText string    `db:"footer_text" json:"footer_text"`
	LogoURL    *string   `db:"logo_url" json:"logo_url"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSiteSettings is returned before the first write creates the row.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:   "My Site",
		FooterText: "© 2024 My Site. All rights reserved.",
		UpdatedAt:  time.Now(),
	}
}
