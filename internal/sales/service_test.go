// Mohamedbadhey | 2026
// service_test.go

package sales

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/Mohamedbadhey/rtailed-core/internal/catalog"
	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/customer"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type mockProductStore struct {
	products map[int64]*catalog.Product
}

func (m *mockProductStore) visible(scope tenant.Scope, businessID int64) bool {
	if scope.IsAll() {
		return true
	}
	id, _ := scope.BusinessID()
	return id == businessID
}

func (m *mockProductStore) GetProductForUpdate(
	_ context.Context,
	_ core.DBTX,
	scope tenant.Scope,
	id int64,
) (*catalog.Product, error) {
	p, ok := m.products[id]
	if !ok || !m.visible(scope, p.BusinessID) {
		return nil, core.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProductStore) AdjustStock(
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

type mockCustomerStore struct {
	customers map[int64]*customer.Customer
}

func (m *mockCustomerStore) GetByID(
	_ context.Context,
	scope tenant.Scope,
	id int64,
) (*customer.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if !scope.IsAll() {
		if bid, _ := scope.BusinessID(); bid != c.BusinessID {
			return nil, core.ErrNotFound
		}
	}
	return c, nil
}

type mockSaleRepository struct {
	sales  map[int64]*Sale
	items  map[int64][]SaleItem
	nextID int64
}

func newMockSaleRepository() *mockSaleRepository {
	return &mockSaleRepository{
		sales:  make(map[int64]*Sale),
		items:  make(map[int64][]SaleItem),
		nextID: 1,
	}
}

func (m *mockSaleRepository) InsertSale(
	_ context.Context,
	_ core.DBTX,
	s *Sale,
) error {
	s.ID = m.nextID
	m.nextID++
	stored := *s
	m.sales[s.ID] = &stored
	return nil
}

func (m *mockSaleRepository) InsertSaleItems(
	_ context.Context,
	_ core.DBTX,
	saleID int64,
	items []SaleItem,
) error {
	m.items[saleID] = append([]SaleItem(nil), items...)
	return nil
}

func (m *mockSaleRepository) scopedSale(
	scope tenant.Scope,
	id int64,
) (*Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if !scope.IsAll() {
		if bid, _ := scope.BusinessID(); bid != s.BusinessID {
			return nil, core.ErrNotFound
		}
	}
	copied := *s
	return &copied, nil
}

func (m *mockSaleRepository) GetSaleForUpdate(
	_ context.Context,
	_ core.DBTX,
	scope tenant.Scope,
	id int64,
) (*Sale, error) {
	return m.scopedSale(scope, id)
}

func (m *mockSaleRepository) RecordPayment(
	_ context.Context,
	_ core.DBTX,
	scope tenant.Scope,
	saleID int64,
	amount float64,
) error {
	if _, err := m.scopedSale(scope, saleID); err != nil {
		return err
	}
	m.sales[saleID].AmountPaid += amount
	return nil
}

func (m *mockSaleRepository) GetSale(
	_ context.Context,
	scope tenant.Scope,
	id int64,
) (*Sale, error) {
	return m.scopedSale(scope, id)
}

func (m *mockSaleRepository) GetSaleItems(
	_ context.Context,
	saleID int64,
) ([]SaleItem, error) {
	return m.items[saleID], nil
}

func (m *mockSaleRepository) ListSales(
	_ context.Context,
	scope tenant.Scope,
	_ ListSalesParams,
) ([]Sale, int, error) {
	var out []Sale
	for _, s := range m.sales {
		if _, err := m.scopedSale(scope, s.ID); err == nil {
			out = append(out, *s)
		}
	}
	return out, len(out), nil
}

type fixture struct {
	svc      *Service
	repo     *mockSaleRepository
	products *mockProductStore
}

func newFixture() *fixture {
	repo := newMockSaleRepository()
	products := &mockProductStore{products: map[int64]*catalog.Product{
		1: {
			ID: 1, BusinessID: 1, Name: "Beans",
			RetailPrice: 10, WholesalePrice: 8, StockQuantity: 20,
		},
		2: {
			ID: 2, BusinessID: 1, Name: "Milk",
			RetailPrice: 4, WholesalePrice: 3, StockQuantity: 5,
		},
		3: {
			ID: 3, BusinessID: 2, Name: "Foreign",
			RetailPrice: 99, WholesalePrice: 80, StockQuantity: 50,
		},
	}}
	customers := &mockCustomerStore{customers: map[int64]*customer.Customer{
		10: {ID: 10, BusinessID: 1, Name: "Amina"},
	}}

	svc := &Service{
		repo:      repo,
		products:  products,
		customers: customers,
		runTx: func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return &fixture{svc: svc, repo: repo, products: products}
}

func TestCreateSaleComputesTotalsAndDecrementsStock(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateSale(
		context.Background(),
		tenant.ForBusiness(1),
		"cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCash,
			Items: []SaleItemRequest{
				{ProductID: 1, Quantity: 2},
				{ProductID: 2, Quantity: 1, Mode: catalog.ModeWholesale},
			},
		},
	)
	if err != nil {
		t.Fatalf("CreateSale() error = %v", err)
	}

	// 2*10 retail + 1*3 wholesale
	if resp.TotalAmount != 23 {
		t.Errorf("TotalAmount = %v, want 23", resp.TotalAmount)
	}
	if resp.AmountPaid != 23 {
		t.Errorf("AmountPaid = %v, want full settlement on cash", resp.AmountPaid)
	}
	if resp.SaleMode != catalog.ModeRetail {
		t.Errorf("SaleMode = %q, want retail for mixed items", resp.SaleMode)
	}
	if resp.BusinessID != 1 {
		t.Errorf("BusinessID = %d, want 1", resp.BusinessID)
	}

	if got := f.products.products[1].StockQuantity; got != 18 {
		t.Errorf("product 1 stock = %d, want 18", got)
	}
	if got := f.products.products[2].StockQuantity; got != 4 {
		t.Errorf("product 2 stock = %d, want 4", got)
	}
}

func TestCreateSaleAllWholesaleMode(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateSale(
		context.Background(),
		tenant.ForBusiness(1),
		"cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCash,
			Items: []SaleItemRequest{
				{ProductID: 1, Quantity: 1, Mode: catalog.ModeWholesale},
			},
		},
	)
	if err != nil {
		t.Fatalf("CreateSale() error = %v", err)
	}

	if resp.SaleMode != catalog.ModeWholesale {
		t.Errorf("SaleMode = %q, want wholesale", resp.SaleMode)
	}
	if resp.TotalAmount != 8 {
		t.Errorf("TotalAmount = %v, want wholesale price", resp.TotalAmount)
	}
}

func TestCreateSaleRejectsAllScope(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateSale(
		context.Background(),
		tenant.All(),
		"cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCash,
			Items:         []SaleItemRequest{{ProductID: 1, Quantity: 1}},
		},
	)
	if !errors.Is(err, core.ErrInvalidScope) {
		t.Errorf("CreateSale() error = %v, want ErrInvalidScope", err)
	}
}

func TestCreateSaleForeignProductIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateSale(
		context.Background(),
		tenant.ForBusiness(1),
		"cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCash,
			Items:         []SaleItemRequest{{ProductID: 3, Quantity: 1}},
		},
	)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("CreateSale() error = %v, want ErrNotFound", err)
	}
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateSale(
		context.Background(),
		tenant.ForBusiness(1),
		"cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCash,
			Items:         []SaleItemRequest{{ProductID: 2, Quantity: 6}},
		},
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("CreateSale() error = %v, want ErrInvalidInput", err)
	}
}

func TestCreateSaleCreditOverpaymentRejected(t *testing.T) {
	f := newFixture()

	paid := 100.0
	_, err := f.svc.CreateSale(
		context.Background(),
		tenant.ForBusiness(1),
		"cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCredit,
			AmountPaid:    &paid,
			Items:         []SaleItemRequest{{ProductID: 1, Quantity: 1}},
		},
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("CreateSale() error = %v, want ErrInvalidInput", err)
	}
}

func TestRecordPaymentOnCreditSale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	scope := tenant.ForBusiness(1)

	deposit := 5.0
	created, err := f.svc.CreateSale(ctx, scope, "cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCredit,
			AmountPaid:    &deposit,
			Items:         []SaleItemRequest{{ProductID: 1, Quantity: 2}},
		})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	resp, err := f.svc.RecordPayment(ctx, scope, created.ID,
		RecordPaymentRequest{Amount: 10})
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}

	if resp.AmountPaid != 15 {
		t.Errorf("AmountPaid = %v, want 15", resp.AmountPaid)
	}
	if resp.Outstanding != 5 {
		t.Errorf("Outstanding = %v, want 5", resp.Outstanding)
	}
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	scope := tenant.ForBusiness(1)

	created, err := f.svc.CreateSale(ctx, scope, "cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCredit,
			Items:         []SaleItemRequest{{ProductID: 1, Quantity: 1}},
		})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	_, err = f.svc.RecordPayment(ctx, scope, created.ID,
		RecordPaymentRequest{Amount: 11})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("RecordPayment() error = %v, want ErrInvalidInput", err)
	}
}

func TestRecordPaymentRejectsNonCreditSale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	scope := tenant.ForBusiness(1)

	created, err := f.svc.CreateSale(ctx, scope, "cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCash,
			Items:         []SaleItemRequest{{ProductID: 1, Quantity: 1}},
		})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	_, err = f.svc.RecordPayment(ctx, scope, created.ID,
		RecordPaymentRequest{Amount: 1})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("RecordPayment() error = %v, want ErrInvalidInput", err)
	}
}

func TestGetSaleCrossTenantIsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.CreateSale(ctx, tenant.ForBusiness(1), "cashier-1",
		CreateSaleRequest{
			PaymentMethod: PaymentCash,
			Items:         []SaleItemRequest{{ProductID: 1, Quantity: 1}},
		})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	_, err = f.svc.GetSale(ctx, tenant.ForBusiness(2), created.ID)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-tenant GetSale() error = %v, want ErrNotFound", err)
	}
}
