// Mohamedbadhey | 2026
// principal.go

package tenant

import (
	"fmt"
	"log/slog"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
)

const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleCashier    = "cashier"
)

// NoBusiness is the sentinel business id carried by superadmin principals,
// meaning "all businesses".
const NoBusiness int64 = 0

// Principal is the authenticated caller as derived from verified token
// claims. A zero-value Principal is unauthenticated.
type Principal struct {
	UserID     string
	Role       string
	BusinessID int64
}

func (p Principal) IsSuperadmin() bool {
	return p.Role == RoleSuperadmin
}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != ""
}

// Resolve derives the active scope for a request. requestedBusinessID is the
// optional explicit business id from the request path; nil means none was
// supplied.
//
// Superadmins get the requested business, or ALL when none is named. Regular
// principals always get their own business; naming a foreign business is an
// authorization failure, never silently corrected.
func Resolve(p Principal, requestedBusinessID *int64) (Scope, error) {
	if !p.IsAuthenticated() {
		return Scope{}, fmt.Errorf("resolve scope: %w", core.ErrUnauthorized)
	}

	if p.IsSuperadmin() {
		if requestedBusinessID != nil {
			return ForBusiness(*requestedBusinessID), nil
		}
		return All(), nil
	}

	if p.BusinessID == NoBusiness {
		return Scope{}, fmt.Errorf(
			"resolve scope: principal %s has no business: %w",
			p.UserID,
			core.ErrUnauthorized,
		)
	}

	if requestedBusinessID != nil && *requestedBusinessID != p.BusinessID {
		return Scope{}, fmt.Errorf(
			"resolve scope: business %d requested by principal of business %d: %w",
			*requestedBusinessID,
			p.BusinessID,
			core.ErrForbidden,
		)
	}

	return ForBusiness(p.BusinessID), nil
}

// Authorize gates an operation against a requested scope. It is pure and
// stateless apart from audit-logging every deny decision.
func Authorize(p Principal, requested Scope, operation string) error {
	if !p.IsAuthenticated() {
		denied(p, requested, operation, "no principal")
		return fmt.Errorf("authorize %s: %w", operation, core.ErrUnauthorized)
	}

	if p.IsSuperadmin() {
		return nil
	}

	if requested.IsAll() {
		denied(p, requested, operation, "cross-tenant scope")
		return fmt.Errorf("authorize %s: %w", operation, core.ErrForbidden)
	}

	if id, _ := requested.BusinessID(); id != p.BusinessID {
		denied(p, requested, operation, "foreign scope")
		return fmt.Errorf("authorize %s: %w", operation, core.ErrForbidden)
	}

	return nil
}

func denied(p Principal, requested Scope, operation, reason string) {
	slog.Warn("scope authorization denied",
		"principal_id", p.UserID,
		"principal_role", p.Role,
		"requested_scope", requested.String(),
		"operation", operation,
		"reason", reason,
	)
}
