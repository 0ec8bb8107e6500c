// Mohamedbadhey | 2026
// scope_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

func TestGetScopeUnboundContext(t *testing.T) {
	if _, ok := GetScope(context.Background()); ok {
		t.Error("GetScope() ok = true on a context without a bound scope")
	}
}

func TestMustScopeFailsLoudlyWhenUnbound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)

	_, ok := MustScope(rec, req)
	if ok {
		t.Fatal("MustScope() ok = true without RequireScope on the route")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code,
			http.StatusInternalServerError)
	}
}

func TestRequireScopeBindsResolvedScope(t *testing.T) {
	tests := []struct {
		name   string
		claims *AccessTokenClaims
		want   tenant.Scope
	}{
		{
			name: "admin gets own business",
			claims: &AccessTokenClaims{
				UserID:     "u-1",
				Role:       tenant.RoleAdmin,
				BusinessID: 7,
			},
			want: tenant.ForBusiness(7),
		},
		{
			name: "cashier gets own business",
			claims: &AccessTokenClaims{
				UserID:     "u-2",
				Role:       tenant.RoleCashier,
				BusinessID: 3,
			},
			want: tenant.ForBusiness(3),
		},
		{
			name: "superadmin defaults to all businesses",
			claims: &AccessTokenClaims{
				UserID: "u-3",
				Role:   tenant.RoleSuperadmin,
			},
			want: tenant.All(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got tenant.Scope
			var bound bool

			handler := RequireScope("")(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					got, bound = GetScope(r.Context())
				}))

			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			ctx := context.WithValue(req.Context(), ClaimsKey, tt.claims)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if !bound {
				t.Fatal("scope was not bound into the request context")
			}
			if got != tt.want {
				t.Errorf("scope = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequireScopeRejectsUnauthenticated(t *testing.T) {
	called := false
	handler := RequireScope("")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler ran without an authenticated principal")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
