// Mohamedbadhey | 2026
// entity.go

package user

import (
	"time"

	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	BusinessID   int64      `db:"business_id"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsSuperadmin() bool {
	return u.Role == tenant.RoleSuperadmin
}

func ValidRole(role string) bool {
	switch role {
	case tenant.RoleSuperadmin, tenant.RoleAdmin, tenant.RoleCashier:
		return true
	}
	return false
}
