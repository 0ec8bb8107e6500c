// Mohamedbadhey | 2026
// service.go

package customer

import (
	"context"
	"fmt"

	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCustomer(
	ctx context.Context,
	scope tenant.Scope,
	req CreateCustomerRequest,
) (*Customer, error) {
	businessID, err := scope.MustBusinessID()
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	c := &Customer{
		BusinessID: businessID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) GetCustomer(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Customer, error) {
	return s.repo.GetByID(ctx, scope, id)
}

func (s *Service) ListCustomers(
	ctx context.Context,
	scope tenant.Scope,
	params ListCustomersParams,
) ([]Customer, int, error) {
	return s.repo.List(ctx, scope, params)
}

func (s *Service) UpdateCustomer(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
	req UpdateCustomerRequest,
) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}

	if err := s.repo.Update(ctx, scope, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) DeleteCustomer(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) error {
	return s.repo.Delete(ctx, scope, id)
}
