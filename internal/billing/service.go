// Mohamedbadhey | 2026
// service.go

package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type txRunner func(ctx context.Context, fn func(tx *sqlx.Tx) error) error

type Service struct {
	repo   Repository
	runTx  txRunner
	logger *slog.Logger
}

func NewService(db *sqlx.DB, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo: repo,
		runTx: func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return core.InTx(ctx, db, fn)
		},
		logger: logger,
	}
}

// CreateBill issues a platform bill against a business. Only the ALL scope
// may bill: tenants never write their own invoices.
func (s *Service) CreateBill(
	ctx context.Context,
	scope tenant.Scope,
	req CreateBillRequest,
) (*MonthlyBill, error) {
	if !scope.IsAll() {
		return nil, fmt.Errorf("create bill: %w", core.ErrForbidden)
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", core.ErrInvalidInput)
	}

	b := &MonthlyBill{
		BusinessID: req.BusinessID,
		Period:     req.Period,
		Tier:       req.Tier,
		Amount:     req.Amount,
		Status:     StatusCurrent,
		DueDate:    dueDate,
	}

	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("bill issued",
		slog.Int64("bill_id", b.ID),
		slog.Int64("business_id", b.BusinessID),
		slog.String("period", b.Period),
	)

	return b, nil
}

func (s *Service) GetBill(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*MonthlyBill, error) {
	return s.repo.GetBill(ctx, scope, id)
}

func (s *Service) ListBills(
	ctx context.Context,
	scope tenant.Scope,
	params ListBillsParams,
) ([]MonthlyBill, int, error) {
	return s.repo.ListBills(ctx, scope, params)
}

func (s *Service) PayBill(
	ctx context.Context,
	scope tenant.Scope,
	billID int64,
	req PayBillRequest,
) (*Payment, error) {
	if _, err := scope.MustBusinessID(); err != nil {
		return nil, fmt.Errorf("pay bill: %w", err)
	}

	p := &Payment{
		Amount: req.Amount,
		Method: req.Method,
	}

	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		return s.repo.PayBill(ctx, tx, scope, billID, p)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bill payment recorded",
		slog.Int64("bill_id", billID),
		slog.Float64("amount", req.Amount),
	)

	return p, nil
}

func (s *Service) ListPayments(
	ctx context.Context,
	scope tenant.Scope,
	billID int64,
) ([]Payment, error) {
	if _, err := s.repo.GetBill(ctx, scope, billID); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, scope, billID)
}

// SweepOverdue flips every unpaid bill past its due date to overdue. It is
// triggered explicitly from the superadmin billing routes rather than by a
// background timer, so the flip always runs under a request context.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	flipped, err := s.repo.MarkOverdueBills(ctx, tenant.All())
	if err != nil {
		return 0, err
	}

	if flipped > 0 {
		s.logger.Info("bills marked overdue", slog.Int64("count", flipped))
	}

	return flipped, nil
}
