// Mohamedbadhey | 2026
// handler.go

package business

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, superadminOnly, scoped func(http.Handler) http.Handler,
) {
	r.Route("/businesses", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(superadminOnly)
		r.Use(scoped)

		r.Get("/", h.ListBusinesses)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, superadminOnly func(http.Handler) http.Handler,
	scopedByID func(http.Handler) http.Handler,
) {
	r.Route("/admin/businesses/{businessID}", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(superadminOnly)
		r.Use(scopedByID)

		r.Get("/details", h.GetDetails)
		r.Put("/", h.UpdateBusiness)
	})
}

func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	params := ListBusinessesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}

	businesses, total, err := h.service.ListBusinesses(
		r.Context(),
		scope,
		params,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cross-tenant listing requires superadmin")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToBusinessResponseList(businesses),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseBusinessID(r)
	if err != nil {
		core.BadRequest(w, "invalid business id")
		return
	}

	details, err := h.service.GetDetails(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "business")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, details)
}

func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseBusinessID(r)
	if err != nil {
		core.BadRequest(w, "invalid business id")
		return
	}

	var req UpdateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.UpdateBusiness(r.Context(), scope, id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "business")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBusinessResponse(b))
}

func parseBusinessID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
