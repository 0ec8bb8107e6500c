// Mohamedbadhey | 2026
// service_test.go

package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type mockRepository struct {
	categories map[int64]*Category
	products   map[int64]*Product
	nextID     int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		categories: make(map[int64]*Category),
		products:   make(map[int64]*Product),
		nextID:     1,
	}
}

func (m *mockRepository) visible(scope tenant.Scope, businessID int64) bool {
	if scope.IsAll() {
		return true
	}
	id, _ := scope.BusinessID()
	return id == businessID
}

func (m *mockRepository) CreateCategory(_ context.Context, c *Category) error {
	c.ID = m.nextID
	m.nextID++
	stored := *c
	m.categories[c.ID] = &stored
	return nil
}

func (m *mockRepository) GetCategory(
	_ context.Context,
	scope tenant.Scope,
	id int64,
) (*Category, error) {
	c, ok := m.categories[id]
	if !ok || !m.visible(scope, c.BusinessID) {
		return nil, core.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) ListCategories(
	_ context.Context,
	scope tenant.Scope,
) ([]Category, error) {
	var out []Category
	for _, c := range m.categories {
		if m.visible(scope, c.BusinessID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockRepository) UpdateCategory(
	_ context.Context,
	scope tenant.Scope,
	c *Category,
) error {
	existing, ok := m.categories[c.ID]
	if !ok || !m.visible(scope, existing.BusinessID) {
		return core.ErrNotFound
	}
	stored := *c
	m.categories[c.ID] = &stored
	return nil
}

func (m *mockRepository) DeleteCategory(
	_ context.Context,
	scope tenant.Scope,
	id int64,
) error {
	c, ok := m.categories[id]
	if !ok || !m.visible(scope, c.BusinessID) {
		return core.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockRepository) CreateProduct(_ context.Context, p *Product) error {
	p.ID = m.nextID
	m.nextID++
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *mockRepository) GetProduct(
	_ context.Context,
	scope tenant.Scope,
	id int64,
) (*Product, error) {
	p, ok := m.products[id]
	if !ok || !m.visible(scope, p.BusinessID) {
		return nil, core.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockRepository) ListProducts(
	_ context.Context,
	scope tenant.Scope,
	_ ListParams,
) ([]Product, int, error) {
	var out []Product
	for _, p := range m.products {
		if m.visible(scope, p.BusinessID) {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (m *mockRepository) UpdateProduct(
	_ context.Context,
	scope tenant.Scope,
	p *Product,
) error {
	existing, ok := m.products[p.ID]
	if !ok || !m.visible(scope, existing.BusinessID) {
		return core.ErrNotFound
	}
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *mockRepository) DeleteProduct(
	_ context.Context,
	scope tenant.Scope,
	id int64,
) error {
	p, ok := m.products[id]
	if !ok || !m.visible(scope, p.BusinessID) {
		return core.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockRepository) GetProductForUpdate(
	ctx context.Context,
	_ core.DBTX,
	scope tenant.Scope,
	id int64,
) (*Product, error) {
	return m.GetProduct(ctx, scope, id)
}

func (m *mockRepository) AdjustStock(
	_ context.Context,
	_ core.DBTX,
	scope tenant.Scope,
	id int64,
	delta int,
) error {
	p, ok := m.products[id]
	if !ok || !m.visible(scope, p.BusinessID) {
		return core.ErrNotFound
	}
	if p.StockQuantity+delta < 0 {
		return core.ErrInvalidInput
	}
	p.StockQuantity += delta
	return nil
}

func newTestService(repo Repository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger)
}

func TestCreateProductStampsScopeBusiness(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	p, err := svc.CreateProduct(
		context.Background(),
		tenant.ForBusiness(7),
		CreateProductRequest{Name: "Espresso Beans", RetailPrice: 12.5},
	)
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}

	if p.BusinessID != 7 {
		t.Errorf("BusinessID = %d, want 7", p.BusinessID)
	}
}

func TestCreateProductRejectsAllScope(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	_, err := svc.CreateProduct(
		context.Background(),
		tenant.All(),
		CreateProductRequest{Name: "Espresso Beans"},
	)
	if !errors.Is(err, core.ErrInvalidScope) {
		t.Errorf("CreateProduct() error = %v, want ErrInvalidScope", err)
	}
}

func TestListProductsIsolation(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	for range 5 {
		if _, err := svc.CreateProduct(ctx, tenant.ForBusiness(1),
			CreateProductRequest{Name: "a"}); err != nil {
			t.Fatalf("seed business 1: %v", err)
		}
	}
	for range 3 {
		if _, err := svc.CreateProduct(ctx, tenant.ForBusiness(2),
			CreateProductRequest{Name: "b"}); err != nil {
			t.Fatalf("seed business 2: %v", err)
		}
	}

	tests := []struct {
		name  string
		scope tenant.Scope
		want  int
	}{
		{"business 1 sees only its own", tenant.ForBusiness(1), 5},
		{"business 2 sees only its own", tenant.ForBusiness(2), 3},
		{"all scope sees everything", tenant.All(), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := svc.ListProducts(ctx, tt.scope, ListParams{})
			if err != nil {
				t.Fatalf("ListProducts() error = %v", err)
			}
			if len(products) != tt.want || total != tt.want {
				t.Errorf("got %d products (total %d), want %d",
					len(products), total, tt.want)
			}
		})
	}
}

func TestGetProductCrossTenantIsNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, tenant.ForBusiness(1),
		CreateProductRequest{Name: "hidden"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = svc.GetProduct(ctx, tenant.ForBusiness(2), p.ID)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-tenant get error = %v, want ErrNotFound", err)
	}

	// Identical to a genuinely missing id from the caller's viewpoint.
	_, missErr := svc.GetProduct(ctx, tenant.ForBusiness(2), 99999)
	if !errors.Is(missErr, core.ErrNotFound) {
		t.Errorf("missing get error = %v, want ErrNotFound", missErr)
	}
}

func TestCreateProductRejectsForeignCategory(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, tenant.ForBusiness(1),
		CreateCategoryRequest{Name: "Drinks"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	_, err = svc.CreateProduct(ctx, tenant.ForBusiness(2),
		CreateProductRequest{Name: "Cola", CategoryID: &c.ID})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign category error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()
	scope := tenant.ForBusiness(1)

	p, err := svc.CreateProduct(ctx, scope, CreateProductRequest{
		Name:        "Beans",
		RetailPrice: 10,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	newPrice := 15.0
	updated, err := svc.UpdateProduct(ctx, scope, p.ID, UpdateProductRequest{
		RetailPrice: &newPrice,
	})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}

	if updated.RetailPrice != 15 {
		t.Errorf("RetailPrice = %v, want 15", updated.RetailPrice)
	}
	if updated.Name != "Beans" {
		t.Errorf("Name = %q, want unchanged", updated.Name)
	}
}
