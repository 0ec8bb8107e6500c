// Mohamedbadhey | 2026
// scope.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

const ScopeKey contextKey = "tenant_scope"

// RequireScope resolves the tenant scope for the request and binds it into
// the context before any handler runs. paramName is the chi URL parameter
// carrying an explicit business id; pass "" for routes without one.
//
// Resolution failures surface here as 401/403 and never reach a repository.
func RequireScope(paramName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())

			var requested *int64
			if paramName != "" {
				raw := chi.URLParam(r, paramName)
				if raw != "" {
					id, err := strconv.ParseInt(raw, 10, 64)
					if err != nil {
						core.BadRequest(w, "invalid business id")
						return
					}
					requested = &id
				}
			}

			scope, err := tenant.Resolve(principal, requested)
			if err != nil {
				writeScopeError(w, err)
				return
			}

			if err := tenant.Authorize(
				principal,
				scope,
				r.Method+" "+r.URL.Path,
			); err != nil {
				writeScopeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ScopeKey, scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetScope reports whether RequireScope bound a scope for this request.
// Callers must treat ok=false as a wiring error, never as a default scope.
func GetScope(ctx context.Context) (tenant.Scope, bool) {
	scope, ok := ctx.Value(ScopeKey).(tenant.Scope)
	return scope, ok
}

// MustScope fetches the bound scope and writes a 500 when a route was
// registered without RequireScope, so the omission fails loudly instead of
// querying as a nonexistent tenant.
func MustScope(w http.ResponseWriter, r *http.Request) (tenant.Scope, bool) {
	scope, ok := GetScope(r.Context())
	if !ok {
		core.InternalServerError(w, errScopeNotBound)
	}
	return scope, ok
}

var errScopeNotBound = errors.New("tenant scope not resolved for route")

func writeScopeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "business scope not permitted")
	default:
		core.InternalServerError(w, err)
	}
}
