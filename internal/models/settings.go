package models

import "time"

// SiteSettings is the single site-wide settings document.
type SiteSettings struct {
	ServicesPageEnabled bool      `json:"servicesPageEnabled" bson:"servicesPageEnabled"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DefaultSiteSettings are served when no settings document exists yet.
// The services page ships disabled until an admin turns it on.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{ServicesPageEnabled: false}
}
