// Mohamedbadhey | 2026
// service_test.go

package billing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type mockBillingRepository struct {
	bills    map[int64]*MonthlyBill
	payments map[int64][]Payment
	nextBill int64
	nextPay  int64
}

func newMockBillingRepository() *mockBillingRepository {
	return &mockBillingRepository{
		bills:    make(map[int64]*MonthlyBill),
		payments: make(map[int64][]Payment),
	}
}

func (m *mockBillingRepository) addBill(b MonthlyBill) *MonthlyBill {
	m.nextBill++
	b.ID = m.nextBill
	m.bills[b.ID] = &b
	return &b
}

func (m *mockBillingRepository) visible(
	b *MonthlyBill,
	scope tenant.Scope,
) bool {
	id, bounded := scope.BusinessID()
	return !bounded || b.BusinessID == id
}

func (m *mockBillingRepository) CreateBill(
	_ context.Context,
	b *MonthlyBill,
) error {
	m.nextBill++
	b.ID = m.nextBill
	b.CreatedAt = time.Now()
	stored := *b
	m.bills[b.ID] = &stored
	return nil
}

func (m *mockBillingRepository) GetBill(
	_ context.Context,
	scope tenant.Scope,
	id int64,
) (*MonthlyBill, error) {
	b, ok := m.bills[id]
	if !ok || !m.visible(b, scope) {
		return nil, fmt.Errorf("get bill: %w", core.ErrNotFound)
	}
	out := *b
	return &out, nil
}

func (m *mockBillingRepository) ListBills(
	_ context.Context,
	scope tenant.Scope,
	params ListBillsParams,
) ([]MonthlyBill, int, error) {
	var out []MonthlyBill
	for _, b := range m.bills {
		if !m.visible(b, scope) {
			continue
		}
		if params.Status != "" && b.Status != params.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (m *mockBillingRepository) MarkOverdueBills(
	_ context.Context,
	scope tenant.Scope,
) (int64, error) {
	now := time.Now()
	var flipped int64
	for _, b := range m.bills {
		if !m.visible(b, scope) {
			continue
		}
		if b.Status == StatusCurrent && b.DueDate.Before(now) {
			b.Status = StatusOverdue
			flipped++
		}
	}
	return flipped, nil
}

func (m *mockBillingRepository) PayBill(
	_ context.Context,
	_ *sqlx.Tx,
	scope tenant.Scope,
	billID int64,
	p *Payment,
) error {
	b, ok := m.bills[billID]
	if !ok || !m.visible(b, scope) {
		return fmt.Errorf("pay bill: %w", core.ErrNotFound)
	}

	if b.Status == StatusPaid {
		return fmt.Errorf("bill already paid: %w", core.ErrInvalidInput)
	}

	m.nextPay++
	p.ID = m.nextPay
	p.BusinessID = b.BusinessID
	p.BillID = billID
	p.PaidAt = time.Now()
	m.payments[billID] = append(m.payments[billID], *p)

	var paidTotal float64
	for _, pay := range m.payments[billID] {
		paidTotal += pay.Amount
	}
	if paidTotal >= b.Amount {
		b.Status = StatusPaid
	}

	return nil
}

func (m *mockBillingRepository) ListPayments(
	_ context.Context,
	scope tenant.Scope,
	billID int64,
) ([]Payment, error) {
	b, ok := m.bills[billID]
	if !ok || !m.visible(b, scope) {
		return nil, nil
	}
	out := make([]Payment, len(m.payments[billID]))
	copy(out, m.payments[billID])
	return out, nil
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

func TestCreateBillRequiresAllScope(t *testing.T) {
	svc := newTestService(newMockBillingRepository())

	req := CreateBillRequest{
		BusinessID: 1,
		Period:     "2026-08",
		Tier:       "basic",
		Amount:     50,
		DueDate:    "2026-09-10",
	}

	_, err := svc.CreateBill(context.Background(), tenant.ForBusiness(1), req)
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("CreateBill() error = %v, want ErrForbidden", err)
	}
}

func TestCreateBillIssuesCurrentBill(t *testing.T) {
	repo := newMockBillingRepository()
	svc := newTestService(repo)

	req := CreateBillRequest{
		BusinessID: 3,
		Period:     "2026-08",
		Tier:       "premium",
		Amount:     120,
		DueDate:    "2026-09-10",
	}

	b, err := svc.CreateBill(context.Background(), tenant.All(), req)
	if err != nil {
		t.Fatalf("CreateBill() error = %v", err)
	}

	if b.Status != StatusCurrent {
		t.Errorf("Status = %q, want %q", b.Status, StatusCurrent)
	}
	want := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if !b.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", b.DueDate, want)
	}
	if b.BusinessID != 3 {
		t.Errorf("BusinessID = %d, want 3", b.BusinessID)
	}
}

func TestCreateBillRejectsBadDueDate(t *testing.T) {
	svc := newTestService(newMockBillingRepository())

	req := CreateBillRequest{
		BusinessID: 1,
		Period:     "2026-08",
		Tier:       "basic",
		Amount:     50,
		DueDate:    "2026-13-45",
	}

	_, err := svc.CreateBill(context.Background(), tenant.All(), req)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("CreateBill() error = %v, want ErrInvalidInput", err)
	}
}

func TestPayBillSettlesOnFullPayment(t *testing.T) {
	repo := newMockBillingRepository()
	bill := repo.addBill(MonthlyBill{
		BusinessID: 1,
		Period:     "2026-08",
		Amount:     100,
		Status:     StatusCurrent,
		DueDate:    time.Now().Add(24 * time.Hour),
	})
	svc := newTestService(repo)
	ctx := context.Background()
	scope := tenant.ForBusiness(1)

	p, err := svc.PayBill(ctx, scope, bill.ID,
		PayBillRequest{Amount: 40, Method: "cash"})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if p.BusinessID != 1 || p.BillID != bill.ID {
		t.Errorf("payment stamped = %+v, want business 1 bill %d", p, bill.ID)
	}
	if repo.bills[bill.ID].Status != StatusCurrent {
		t.Errorf("status after partial payment = %q, want %q",
			repo.bills[bill.ID].Status, StatusCurrent)
	}

	if _, err := svc.PayBill(ctx, scope, bill.ID,
		PayBillRequest{Amount: 60, Method: "mobile"}); err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if repo.bills[bill.ID].Status != StatusPaid {
		t.Errorf("status after full payment = %q, want %q",
			repo.bills[bill.ID].Status, StatusPaid)
	}
}

func TestPayBillRejectsAlreadyPaid(t *testing.T) {
	repo := newMockBillingRepository()
	bill := repo.addBill(MonthlyBill{
		BusinessID: 1,
		Amount:     100,
		Status:     StatusPaid,
	})
	svc := newTestService(repo)

	_, err := svc.PayBill(context.Background(), tenant.ForBusiness(1),
		bill.ID, PayBillRequest{Amount: 10, Method: "cash"})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("PayBill() error = %v, want ErrInvalidInput", err)
	}
}

func TestPayBillRequiresBusinessScope(t *testing.T) {
	repo := newMockBillingRepository()
	bill := repo.addBill(MonthlyBill{
		BusinessID: 1,
		Amount:     100,
		Status:     StatusCurrent,
	})
	svc := newTestService(repo)

	_, err := svc.PayBill(context.Background(), tenant.All(), bill.ID,
		PayBillRequest{Amount: 10, Method: "cash"})
	if !errors.Is(err, core.ErrInvalidScope) {
		t.Errorf("PayBill() error = %v, want ErrInvalidScope", err)
	}
}

func TestPayBillCrossTenantIsNotFound(t *testing.T) {
	repo := newMockBillingRepository()
	bill := repo.addBill(MonthlyBill{
		BusinessID: 2,
		Amount:     100,
		Status:     StatusCurrent,
	})
	svc := newTestService(repo)

	_, err := svc.PayBill(context.Background(), tenant.ForBusiness(1),
		bill.ID, PayBillRequest{Amount: 10, Method: "cash"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("PayBill() error = %v, want ErrNotFound", err)
	}
}

func TestSweepOverdueFlipsOnlyPastDueCurrentBills(t *testing.T) {
	repo := newMockBillingRepository()
	past := repo.addBill(MonthlyBill{
		BusinessID: 1,
		Status:     StatusCurrent,
		DueDate:    time.Now().Add(-48 * time.Hour),
	})
	future := repo.addBill(MonthlyBill{
		BusinessID: 1,
		Status:     StatusCurrent,
		DueDate:    time.Now().Add(48 * time.Hour),
	})
	settled := repo.addBill(MonthlyBill{
		BusinessID: 2,
		Status:     StatusPaid,
		DueDate:    time.Now().Add(-48 * time.Hour),
	})
	svc := newTestService(repo)

	flipped, err := svc.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue() error = %v", err)
	}

	if flipped != 1 {
		t.Errorf("flipped = %d, want 1", flipped)
	}
	if repo.bills[past.ID].Status != StatusOverdue {
		t.Errorf("past-due bill status = %q, want %q",
			repo.bills[past.ID].Status, StatusOverdue)
	}
	if repo.bills[future.ID].Status != StatusCurrent {
		t.Errorf("future bill status = %q, want %q",
			repo.bills[future.ID].Status, StatusCurrent)
	}
	if repo.bills[settled.ID].Status != StatusPaid {
		t.Errorf("paid bill status = %q, want %q",
			repo.bills[settled.ID].Status, StatusPaid)
	}
}
