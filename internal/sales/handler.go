// Mohamedbadhey | 2026
// handler.go

package sales

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
	r.Route("/sales", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(scoped)

		r.Post("/", h.CreateSale)
		r.Get("/", h.ListSales)
		r.Get("/{saleID}", h.GetSale)
		r.Post("/{saleID}/payments", h.RecordPayment)
	})
}

func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}
	cashierID := middleware.GetUserID(r.Context())

	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sale, err := h.service.CreateSale(r.Context(), scope, cashierID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidScope):
			core.JSONError(w, core.InvalidScopeError("create sale"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "product or customer")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, sale)
}

func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseSaleID(r)
	if err != nil {
		core.BadRequest(w, "invalid sale id")
		return
	}

	sale, err := h.service.GetSale(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "sale")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sale)
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	params := ListSalesParams{
		Page:          parseIntQuery(r, "page", 1),
		PageSize:      parseIntQuery(r, "page_size", 20),
		PaymentMethod: r.URL.Query().Get("payment_method"),
		CashierUserID: r.URL.Query().Get("cashier_id"),
	}

	sales, total, err := h.service.ListSales(r.Context(), scope, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToSaleResponseList(sales),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseSaleID(r)
	if err != nil {
		core.BadRequest(w, "invalid sale id")
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sale, err := h.service.RecordPayment(r.Context(), scope, id, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidScope):
			core.JSONError(w, core.InvalidScopeError("record payment"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "sale")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, sale)
}

func parseSaleID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "saleID"), 10, 64)
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
