// Mohamedbadhey | 2026
// handler.go

package billing

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
	authenticator, adminOnly, superadminOnly, scoped func(http.Handler) http.Handler,
) {
	r.Route("/billing", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(scoped)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/bills", h.ListBills)
			r.Get("/bills/{billID}", h.GetBill)
			r.Post("/bills/{billID}/payments", h.PayBill)
			r.Get("/bills/{billID}/payments", h.ListPayments)
		})

		r.Group(func(r chi.Router) {
			r.Use(superadminOnly)
			r.Post("/bills", h.CreateBill)
			r.Post("/bills/sweep-overdue", h.SweepOverdue)
		})
	})
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.CreateBill(r.Context(), scope, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "billing requires platform scope")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid due date")
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("bill"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToBillResponse(b))
}

func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseBillID(r)
	if err != nil {
		core.BadRequest(w, "invalid bill id")
		return
	}

	b, err := h.service.GetBill(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "bill")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBillResponse(b))
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	params := ListBillsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}

	bills, total, err := h.service.ListBills(r.Context(), scope, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToBillResponseList(bills),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseBillID(r)
	if err != nil {
		core.BadRequest(w, "invalid bill id")
		return
	}

	var req PayBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.PayBill(r.Context(), scope, id, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidScope):
			core.JSONError(w, core.InvalidScopeError("pay bill"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "bill")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToPaymentResponse(p))
}

// SweepOverdue flips every unpaid bill past its due date to overdue and
// reports how many were flipped.
func (h *Handler) SweepOverdue(w http.ResponseWriter, r *http.Request) {
	flipped, err := h.service.SweepOverdue(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SweepOverdueResponse{MarkedOverdue: flipped})
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseBillID(r)
	if err != nil {
		core.BadRequest(w, "invalid bill id")
		return
	}

	payments, err := h.service.ListPayments(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "bill")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPaymentResponseList(payments))
}

func parseBillID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "billID"), 10, 64)
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
