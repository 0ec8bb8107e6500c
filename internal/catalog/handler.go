// Mohamedbadhey | 2026
// handler.go

package catalog

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
	authenticator, adminOnly, scoped func(http.Handler) http.Handler,
) {
	r.Route("/categories", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(scoped)

		r.Get("/", h.ListCategories)
		r.Get("/{categoryID}", h.GetCategory)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateCategory)
			r.Put("/{categoryID}", h.UpdateCategory)
			r.Delete("/{categoryID}", h.DeleteCategory)
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(scoped)

		r.Get("/", h.ListProducts)
		r.Get("/{productID}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateProduct)
			r.Put("/{productID}", h.UpdateProduct)
			r.Delete("/{productID}", h.DeleteProduct)
		})
	})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.CreateCategory(r.Context(), scope, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidScope):
			core.JSONError(w, core.InvalidScopeError("create category"))
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("category"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToCategoryResponse(c))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "categoryID")
	if err != nil {
		core.BadRequest(w, "invalid category id")
		return
	}

	c, err := h.service.GetCategory(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCategoryResponse(c))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	categories, err := h.service.ListCategories(r.Context(), scope)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCategoryResponseList(categories))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "categoryID")
	if err != nil {
		core.BadRequest(w, "invalid category id")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.UpdateCategory(r.Context(), scope, id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCategoryResponse(c))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "categoryID")
	if err != nil {
		core.BadRequest(w, "invalid category id")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), scope, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.CreateProduct(r.Context(), scope, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidScope):
			core.JSONError(w, core.InvalidScopeError("create product"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "category")
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("product"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToProductResponse(p))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "productID")
	if err != nil {
		core.BadRequest(w, "invalid product id")
		return
	}

	p, err := h.service.GetProduct(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProductResponse(p))
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
	}

	products, total, err := h.service.ListProducts(r.Context(), scope, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToProductResponseList(products),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "productID")
	if err != nil {
		core.BadRequest(w, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), scope, id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProductResponse(p))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.MustScope(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "productID")
	if err != nil {
		core.BadRequest(w, "invalid product id")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), scope, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "product")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
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
