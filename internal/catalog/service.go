// Mohamedbadhey | 2026
// service.go

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateCategory stamps the row with the scope's business. An ALL scope
// has no single business to write into, so creation is rejected there.
func (s *Service) CreateCategory(
	ctx context.Context,
	scope tenant.Scope,
	req CreateCategoryRequest,
) (*Category, error) {
	businessID, err := scope.MustBusinessID()
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	c := &Category{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		slog.Int64("category_id", c.ID),
		slog.Int64("business_id", businessID),
	)

	return c, nil
}

func (s *Service) GetCategory(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Category, error) {
	return s.repo.GetCategory(ctx, scope, id)
}

func (s *Service) ListCategories(
	ctx context.Context,
	scope tenant.Scope,
) ([]Category, error) {
	return s.repo.ListCategories(ctx, scope)
}

func (s *Service) UpdateCategory(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
	req UpdateCategoryRequest,
) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if err := s.repo.UpdateCategory(ctx, scope, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) DeleteCategory(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) error {
	return s.repo.DeleteCategory(ctx, scope, id)
}

func (s *Service) CreateProduct(
	ctx context.Context,
	scope tenant.Scope,
	req CreateProductRequest,
) (*Product, error) {
	businessID, err := scope.MustBusinessID()
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if req.CategoryID != nil {
		// The category must live in the same business; a foreign
		// category id reads as nonexistent.
		if _, err := s.repo.GetCategory(ctx, scope, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("create product: %w", core.ErrNotFound)
		}
	}

	p := &Product{
		BusinessID:     businessID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		SKU:            req.SKU,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
		StockQuantity:  req.StockQuantity,
		LowStockLevel:  req.LowStockLevel,
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		slog.Int64("product_id", p.ID),
		slog.Int64("business_id", businessID),
	)

	return p, nil
}

func (s *Service) GetProduct(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Product, error) {
	return s.repo.GetProduct(ctx, scope, id)
}

func (s *Service) ListProducts(
	ctx context.Context,
	scope tenant.Scope,
	params ListParams,
) ([]Product, int, error) {
	return s.repo.ListProducts(ctx, scope, params)
}

func (s *Service) UpdateProduct(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
	req UpdateProductRequest,
) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, scope, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("update product: %w", core.ErrNotFound)
		}
		p.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SKU != nil {
		p.SKU = req.SKU
	}
	if req.RetailPrice != nil {
		p.RetailPrice = *req.RetailPrice
	}
	if req.WholesalePrice != nil {
		p.WholesalePrice = *req.WholesalePrice
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.LowStockLevel != nil {
		p.LowStockLevel = *req.LowStockLevel
	}

	if err := s.repo.UpdateProduct(ctx, scope, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) DeleteProduct(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) error {
	return s.repo.DeleteProduct(ctx, scope, id)
}
