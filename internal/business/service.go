// Mohamedbadhey | 2026
// service.go

package business

import (
	"context"
	"fmt"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListBusinesses is a cross-tenant enumeration and therefore requires the
// ALL scope; a single-business scope never gets to see its neighbors.
func (s *Service) ListBusinesses(
	ctx context.Context,
	scope tenant.Scope,
	params ListBusinessesParams,
) ([]Business, int, error) {
	if !scope.IsAll() {
		return nil, 0, fmt.Errorf("list businesses: %w", core.ErrForbidden)
	}

	return s.repo.List(ctx, params)
}

func (s *Service) GetBusiness(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Business, error) {
	if businessID, ok := scope.BusinessID(); ok && businessID != id {
		return nil, fmt.Errorf("get business: %w", core.ErrNotFound)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetDetails(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*BusinessDetails, error) {
	if businessID, ok := scope.BusinessID(); ok && businessID != id {
		return nil, fmt.Errorf("business details: %w", core.ErrNotFound)
	}

	return s.repo.GetDetails(ctx, id)
}

func (s *Service) UpdateBusiness(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
	req UpdateBusinessRequest,
) (*Business, error) {
	if businessID, ok := scope.BusinessID(); ok && businessID != id {
		return nil, fmt.Errorf("update business: %w", core.ErrNotFound)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
	if req.Tier != nil {
		b.Tier = *req.Tier
	}
	if req.LogoURL != nil {
		b.LogoURL = req.LogoURL
	}
	if req.ThemeColor != nil {
		b.ThemeColor = req.ThemeColor
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}
