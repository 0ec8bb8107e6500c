// Mohamedbadhey | 2026
// scope_test.go

package tenant

import (
	"errors"
	"testing"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
)

func TestScopePredicate(t *testing.T) {
	t.Run("single business emits placeholder", func(t *testing.T) {
		clause, args, next := ForBusiness(7).Predicate("business_id", 3)

		if clause != "business_id = $3" {
			t.Errorf("unexpected clause: %q", clause)
		}
		if len(args) != 1 || args[0].(int64) != 7 {
			t.Errorf("unexpected args: %v", args)
		}
		if next != 4 {
			t.Errorf("expected next index 4, got %d", next)
		}
	})

	t.Run("all scope degenerates to TRUE", func(t *testing.T) {
		clause, args, next := All().Predicate("business_id", 1)

		if clause != "TRUE" {
			t.Errorf("unexpected clause: %q", clause)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
		if next != 1 {
			t.Errorf("expected index unchanged, got %d", next)
		}
	})
}

func TestScopeMustBusinessID(t *testing.T) {
	if _, err := All().MustBusinessID(); !errors.Is(err, core.ErrInvalidScope) {
		t.Errorf("expected ErrInvalidScope, got %v", err)
	}

	id, err := ForBusiness(42).MustBusinessID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestResolve(t *testing.T) {
	superadmin := Principal{UserID: "u-super", Role: RoleSuperadmin}
	cashier := Principal{UserID: "u-cash", Role: RoleCashier, BusinessID: 2}

	two := int64(2)
	five := int64(5)

	tests := []struct {
		name      string
		principal Principal
		requested *int64
		wantScope Scope
		wantErr   error
	}{
		{
			name:      "superadmin with explicit business",
			principal: superadmin,
			requested: &five,
			wantScope: ForBusiness(5),
		},
		{
			name:      "superadmin without business gets ALL",
			principal: superadmin,
			wantScope: All(),
		},
		{
			name:      "regular without business gets own",
			principal: cashier,
			wantScope: ForBusiness(2),
		},
		{
			name:      "regular naming own business gets own",
			principal: cashier,
			requested: &two,
			wantScope: ForBusiness(2),
		},
		{
			name:      "regular naming foreign business is forbidden",
			principal: cashier,
			requested: &five,
			wantErr:   core.ErrForbidden,
		},
		{
			name:    "unauthenticated is unauthorized",
			wantErr: core.ErrUnauthorized,
		},
		{
			name:      "regular without business claim is unauthorized",
			principal: Principal{UserID: "u-x", Role: RoleAdmin},
			wantErr:   core.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := Resolve(tt.principal, tt.requested)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scope != tt.wantScope {
				t.Errorf("expected scope %v, got %v", tt.wantScope, scope)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	superadmin := Principal{UserID: "u-super", Role: RoleSuperadmin}
	admin := Principal{UserID: "u-admin", Role: RoleAdmin, BusinessID: 1}

	tests := []struct {
		name      string
		principal Principal
		requested Scope
		wantErr   error
	}{
		{"regular own scope allowed", admin, ForBusiness(1), nil},
		{"regular foreign scope denied", admin, ForBusiness(2), core.ErrForbidden},
		{"regular ALL scope denied", admin, All(), core.ErrForbidden},
		{"superadmin any scope allowed", superadmin, ForBusiness(9), nil},
		{"superadmin ALL allowed", superadmin, All(), nil},
		{"unauthenticated denied", Principal{}, ForBusiness(1), core.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, tt.requested, "test.op")

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
