// Mohamedbadhey | 2026
// handler.go

package customer

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
	authenticator, scoped func(http.Handler) http.Handler,
) {
	r.Route("/customers", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(scoped)

		r.Post("/", h.CreateCustomer)
		r.Get("/", h.ListCustomers)
		r.Get("/{customerID}", h.GetCustomer)
		r.Put("/{customerID}", h.UpdateCustomer)
		r.Delete("/{customerID}", h.DeleteCustomer)
	})
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.CreateCustomer(r.Context(), scope, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidScope) {
			core.JSONError(w, core.InvalidScopeError("create customer"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCustomerResponse(c))
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseCustomerID(r)
	if err != nil {
		core.BadRequest(w, "invalid customer id")
		return
	}

	c, err := h.service.GetCustomer(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "customer")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCustomerResponse(c))
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	params := ListCustomersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
	}

	customers, total, err := h.service.ListCustomers(r.Context(), scope, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToCustomerResponseList(customers),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseCustomerID(r)
	if err != nil {
		core.BadRequest(w, "invalid customer id")
		return
	}

	var req UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.UpdateCustomer(r.Context(), scope, id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "customer")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCustomerResponse(c))
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseCustomerID(r)
	if err != nil {
		core.BadRequest(w, "invalid customer id")
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), scope, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "customer")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseCustomerID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
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
