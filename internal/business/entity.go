// Mohamedbadhey | 2026
// entity.go

package business

import (
	"time"
)

// Business is the root of tenant scoping. Rows are never deleted, only
// status-flagged; every tenant-owned table hangs off its id.
type Business struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Status      string    `db:"status"`
	Tier        string    `db:"tier"`
	OwnerUserID *string   `db:"owner_user_id"`
	LogoURL     *string   `db:"logo_url"`
	ThemeColor  *string   `db:"theme_color"`
	ContactInfo *string   `db:"contact_info"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

const (
	TierBasic      = "basic"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

func (b *Business) IsActive() bool {
	return b.Status == StatusActive
}
