// Mohamedbadhey | 2026
// service.go

package sales

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/Mohamedbadhey/rtailed-core/internal/catalog"
	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/customer"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

// ProductStore is the slice of the catalog repository a sale needs:
// row-locked reads and stock adjustments inside the sale transaction.
type ProductStore interface {
	GetProductForUpdate(
		ctx context.Context,
		tx core.DBTX,
		scope tenant.Scope,
		id int64,
	) (*catalog.Product, error)
	AdjustStock(
		ctx context.Context,
		tx core.DBTX,
		scope tenant.Scope,
		id int64,
		delta int,
	) error
}

type CustomerStore interface {
	GetByID(
		ctx context.Context,
		scope tenant.Scope,
		id int64,
	) (*customer.Customer, error)
}

type txRunner func(ctx context.Context, fn func(tx *sqlx.Tx) error) error

type Service struct {
	repo      Repository
	products  ProductStore
	customers CustomerStore
	runTx     txRunner
	logger    *slog.Logger
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	products ProductStore,
	customers CustomerStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		customers: customers,
		runTx: func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return core.InTx(ctx, db, fn)
		},
		logger: logger,
	}
}

// CreateSale writes the sale, its line items, and the stock decrements in
// one transaction. Every row is stamped with the scope's business and every
// referenced product must resolve inside that same scope.
func (s *Service) CreateSale(
	ctx context.Context,
	scope tenant.Scope,
	cashierUserID string,
	req CreateSaleRequest,
) (*SaleResponse, error) {
	businessID, err := scope.MustBusinessID()
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	if req.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, scope, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("create sale: %w", core.ErrNotFound)
		}
	}

	sale := &Sale{
		BusinessID:    businessID,
		CashierUserID: cashierUserID,
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
	}

	var items []SaleItem

	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		var total float64
		wholesaleOnly := len(req.Items) > 0

		for _, line := range req.Items {
			mode := line.Mode
			if mode == "" {
				mode = catalog.ModeRetail
			}
			if mode != catalog.ModeWholesale {
				wholesaleOnly = false
			}

			p, err := s.products.GetProductForUpdate(
				ctx, tx, scope, line.ProductID)
			if err != nil {
				return err
			}

			if p.StockQuantity < line.Quantity {
				return fmt.Errorf(
					"insufficient stock for product %d: %w",
					p.ID, core.ErrInvalidInput)
			}

			if err := s.products.AdjustStock(
				ctx, tx, scope, p.ID, -line.Quantity); err != nil {
				return err
			}

			unitPrice := p.PriceFor(mode)
			subtotal := unitPrice * float64(line.Quantity)
			total += subtotal

			items = append(items, SaleItem{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				Mode:      mode,
				UnitPrice: unitPrice,
				Subtotal:  subtotal,
			})
		}

		sale.TotalAmount = total
		sale.SaleMode = catalog.ModeRetail
		if wholesaleOnly {
			sale.SaleMode = catalog.ModeWholesale
		}

		switch req.PaymentMethod {
		case PaymentCredit:
			paid := 0.0
			if req.AmountPaid != nil {
				paid = *req.AmountPaid
			}
			if paid > total {
				return fmt.Errorf(
					"amount paid exceeds total: %w", core.ErrInvalidInput)
			}
			sale.AmountPaid = paid
		default:
			// Cash and mobile settle in full at checkout.
			sale.AmountPaid = total
		}

		if err := s.repo.InsertSale(ctx, tx, sale); err != nil {
			return err
		}

		return s.repo.InsertSaleItems(ctx, tx, sale.ID, items)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		slog.Int64("sale_id", sale.ID),
		slog.Int64("business_id", businessID),
		slog.String("payment_method", sale.PaymentMethod),
		slog.Float64("total", sale.TotalAmount),
	)

	resp := ToSaleResponse(sale, items)
	return &resp, nil
}

func (s *Service) GetSale(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*SaleResponse, error) {
	sale, err := s.repo.GetSale(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetSaleItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale, items)
	return &resp, nil
}

func (s *Service) ListSales(
	ctx context.Context,
	scope tenant.Scope,
	params ListSalesParams,
) ([]Sale, int, error) {
	return s.repo.ListSales(ctx, scope, params)
}

// RecordPayment applies a partial payment against a credit sale. The sale
// is locked for the duration so concurrent payments cannot overshoot the
// outstanding balance.
func (s *Service) RecordPayment(
	ctx context.Context,
	scope tenant.Scope,
	saleID int64,
	req RecordPaymentRequest,
) (*SaleResponse, error) {
	if _, err := scope.MustBusinessID(); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	var sale *Sale
	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.repo.GetSaleForUpdate(ctx, tx, scope, saleID)
		if err != nil {
			return err
		}

		if locked.PaymentMethod != PaymentCredit {
			return fmt.Errorf(
				"payments only apply to credit sales: %w",
				core.ErrInvalidInput)
		}

		if req.Amount > locked.Outstanding() {
			return fmt.Errorf(
				"payment exceeds outstanding balance: %w",
				core.ErrInvalidInput)
		}

		if err := s.repo.RecordPayment(
			ctx, tx, scope, saleID, req.Amount); err != nil {
			return err
		}

		locked.AmountPaid += req.Amount
		sale = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("credit payment recorded",
		slog.Int64("sale_id", sale.ID),
		slog.Float64("amount", req.Amount),
		slog.Float64("outstanding", sale.Outstanding()),
	)

	resp := ToSaleResponse(sale, nil)
	return &resp, nil
}
