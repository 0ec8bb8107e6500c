// Mohamedbadhey | 2026
// service_test.go

package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type tenantData struct {
	saleItems    int64
	sales        int64
	payments     int64
	monthlyBills int64
	products     int64
	categories   int64
	customers    int64
	users        int64
}

type mockAdminRepository struct {
	businesses map[int64]*tenantData
	revenue    []BusinessRevenue
	bills      BillStatusCounts
	deleteErr  error
}

func (m *mockAdminRepository) BusinessExists(
	_ context.Context,
	businessID int64,
) (bool, error) {
	_, ok := m.businesses[businessID]
	return ok, nil
}

func (m *mockAdminRepository) DeleteBusinessData(
	_ context.Context,
	_ *sqlx.Tx,
	businessID int64,
) (ResetCounts, error) {
	if m.deleteErr != nil {
		return ResetCounts{}, m.deleteErr
	}

	data := m.businesses[businessID]
	counts := ResetCounts{
		SaleItems:    data.saleItems,
		Sales:        data.sales,
		Payments:     data.payments,
		MonthlyBills: data.monthlyBills,
		Products:     data.products,
		Categories:   data.categories,
		Customers:    data.customers,
		Users:        data.users,
	}
	m.businesses[businessID] = &tenantData{}
	return counts, nil
}

func (m *mockAdminRepository) CountBusinessData(
	_ context.Context,
	businessID int64,
) (*DataCounts, error) {
	data := m.businesses[businessID]
	return &DataCounts{
		BusinessID:   businessID,
		Users:        data.users,
		Categories:   data.categories,
		Products:     data.products,
		Customers:    data.customers,
		Sales:        data.sales,
		SaleItems:    data.saleItems,
		MonthlyBills: data.monthlyBills,
		Payments:     data.payments,
	}, nil
}

func (m *mockAdminRepository) RevenueByBusiness(
	_ context.Context,
	_ DateRange,
) ([]BusinessRevenue, error) {
	out := make([]BusinessRevenue, len(m.revenue))
	copy(out, m.revenue)
	return out, nil
}

func (m *mockAdminRepository) BillStatusCounts(
	_ context.Context,
	_ DateRange,
) (BillStatusCounts, error) {
	return m.bills, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestService(repo Repository) *Service {
	return &Service{
		repo: repo,
		runTx: func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestResetBusinessReportsCountsAndSparesOthers(t *testing.T) {
	repo := &mockAdminRepository{businesses: map[int64]*tenantData{
		1: {sales: 4, saleItems: 9, products: 5, users: 2, customers: 3},
		2: {sales: 7, products: 3},
	}}
	svc := newTestService(repo)

	resp, err := svc.ResetBusiness(context.Background(), tenant.All(), 1)
	if err != nil {
		t.Fatalf("ResetBusiness() error = %v", err)
	}

	if resp.Deleted.Sales != 4 || resp.Deleted.SaleItems != 9 {
		t.Errorf("Deleted = %+v, want sales=4 sale_items=9", resp.Deleted)
	}
	if resp.Total != 23 {
		t.Errorf("Total = %d, want 23", resp.Total)
	}

	// Neighbor tenant untouched.
	if repo.businesses[2].sales != 7 {
		t.Errorf("business 2 sales = %d, want 7", repo.businesses[2].sales)
	}
}

func TestResetBusinessIdempotentOnEmpty(t *testing.T) {
	repo := &mockAdminRepository{businesses: map[int64]*tenantData{
		1: {sales: 2},
	}}
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.ResetBusiness(ctx, tenant.All(), 1); err != nil {
		t.Fatalf("first reset: %v", err)
	}

	resp, err := svc.ResetBusiness(ctx, tenant.All(), 1)
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("second reset Total = %d, want 0", resp.Total)
	}
}

func TestResetBusinessRequiresAllScope(t *testing.T) {
	repo := &mockAdminRepository{businesses: map[int64]*tenantData{1: {}}}
	svc := newTestService(repo)

	_, err := svc.ResetBusiness(context.Background(), tenant.ForBusiness(1), 1)
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("ResetBusiness() error = %v, want ErrForbidden", err)
	}
}

func TestResetBusinessUnknownBusiness(t *testing.T) {
	repo := &mockAdminRepository{businesses: map[int64]*tenantData{}}
	svc := newTestService(repo)

	_, err := svc.ResetBusiness(context.Background(), tenant.All(), 42)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("ResetBusiness() error = %v, want ErrNotFound", err)
	}
}

func TestResetBusinessFailureIsConsistencyError(t *testing.T) {
	repo := &mockAdminRepository{
		businesses: map[int64]*tenantData{1: {sales: 3}},
		deleteErr:  errors.New("deadlock detected"),
	}
	svc := newTestService(repo)

	_, err := svc.ResetBusiness(context.Background(), tenant.All(), 1)
	if !errors.Is(err, core.ErrConsistency) {
		t.Errorf("ResetBusiness() error = %v, want ErrConsistency", err)
	}
}

func TestRevenueAnalyticsTotalsReconcile(t *testing.T) {
	repo := &mockAdminRepository{
		businesses: map[int64]*tenantData{},
		revenue: []BusinessRevenue{
			{BusinessID: 1, Name: "Alpha", Tier: "basic",
				SalesRevenue: 100, BillingRevenue: 20},
			{BusinessID: 2, Name: "Beta", Tier: "premium",
				SalesRevenue: 250, BillingRevenue: 50},
			{BusinessID: 3, Name: "Gamma", Tier: "basic",
				SalesRevenue: 40, BillingRevenue: 0},
		},
		bills: BillStatusCounts{Current: 2, Overdue: 1, Paid: 4},
	}
	svc := newTestService(repo)

	resp, err := svc.RevenueAnalytics(
		context.Background(), tenant.All(), AllTime())
	if err != nil {
		t.Fatalf("RevenueAnalytics() error = %v", err)
	}

	if !almostEqual(resp.TotalSales, 390) {
		t.Errorf("TotalSales = %v, want 390", resp.TotalSales)
	}
	if !almostEqual(resp.TotalBilling, 70) {
		t.Errorf("TotalBilling = %v, want 70", resp.TotalBilling)
	}
	if !almostEqual(resp.GrandTotal, 460) {
		t.Errorf("GrandTotal = %v, want 460", resp.GrandTotal)
	}

	var perBusiness float64
	for _, b := range resp.Businesses {
		perBusiness += b.Total
	}
	if !almostEqual(perBusiness, resp.GrandTotal) {
		t.Errorf("sum of per-business totals = %v, want %v",
			perBusiness, resp.GrandTotal)
	}

	if len(resp.Tiers) != 2 {
		t.Fatalf("len(Tiers) = %d, want 2", len(resp.Tiers))
	}
	if resp.Tiers[0].Tier != "basic" || !almostEqual(resp.Tiers[0].Revenue, 160) {
		t.Errorf("basic tier = %+v, want revenue 160", resp.Tiers[0])
	}
	if resp.Tiers[1].Tier != "premium" || resp.Tiers[1].Businesses != 1 {
		t.Errorf("premium tier = %+v, want 1 business", resp.Tiers[1])
	}

	if resp.Bills.Overdue != 1 {
		t.Errorf("Bills.Overdue = %d, want 1", resp.Bills.Overdue)
	}
}

func TestRevenueAnalyticsRequiresAllScope(t *testing.T) {
	repo := &mockAdminRepository{businesses: map[int64]*tenantData{}}
	svc := newTestService(repo)

	_, err := svc.RevenueAnalytics(
		context.Background(), tenant.ForBusiness(1), AllTime())
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("RevenueAnalytics() error = %v, want ErrForbidden", err)
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
		bounded bool
	}{
		{"both empty is all time", "", "", false, false},
		{"valid pair", "2026-01-01", "2026-01-31", false, true},
		{"start only", "2026-01-01", "", true, false},
		{"end only", "", "2026-01-31", true, false},
		{"garbage start", "yesterday", "2026-01-31", true, false},
		{"inverted", "2026-02-01", "2026-01-01", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidInput) {
					t.Errorf("error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, _, ok := r.Bounds(); ok != tt.bounded {
				t.Errorf("bounded = %v, want %v", ok, tt.bounded)
			}
		})
	}
}

func TestDateRangeInclusiveBounds(t *testing.T) {
	r, err := ParseDateRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("ParseDateRange() error = %v", err)
	}

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	before := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	after := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	if !r.Contains(first) {
		t.Error("start day should be inside the range")
	}
	if !r.Contains(lastDay) {
		t.Error("end day should be inside the range")
	}
	if r.Contains(before) || r.Contains(after) {
		t.Error("out-of-range instants should be excluded")
	}
}
