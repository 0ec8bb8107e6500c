// Mohamedbadhey | 2026
// repository.go

package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type Repository interface {
	// Writes run inside the sale transaction and take the tx handle.
	InsertSale(ctx context.Context, tx core.DBTX, s *Sale) error
	InsertSaleItems(
		ctx context.Context,
		tx core.DBTX,
		saleID int64,
		items []SaleItem,
	) error
	RecordPayment(
		ctx context.Context,
		tx core.DBTX,
		scope tenant.Scope,
		saleID int64,
		amount float64,
	) error
	GetSaleForUpdate(
		ctx context.Context,
		tx core.DBTX,
		scope tenant.Scope,
		id int64,
	) (*Sale, error)

	GetSale(ctx context.Context, scope tenant.Scope, id int64) (*Sale, error)
	GetSaleItems(ctx context.Context, saleID int64) ([]SaleItem, error)
	ListSales(
		ctx context.Context,
		scope tenant.Scope,
		params ListSalesParams,
	) ([]Sale, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) InsertSale(
	ctx context.Context,
	tx core.DBTX,
	s *Sale,
) error {
	query := `
		INSERT INTO sales (business_id, cashier_user_id, customer_id,
		                   sale_mode, payment_method, total_amount, amount_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := tx.GetContext(ctx, s, query,
		s.BusinessID,
		s.CashierUserID,
		s.CustomerID,
		s.SaleMode,
		s.PaymentMethod,
		s.TotalAmount,
		s.AmountPaid,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	return nil
}

func (r *repository) InsertSaleItems(
	ctx context.Context,
	tx core.DBTX,
	saleID int64,
	items []SaleItem,
) error {
	query := `
		INSERT INTO sale_items (sale_id, product_id, quantity, mode,
		                        unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range items {
		items[i].SaleID = saleID
		err := tx.GetContext(ctx, &items[i].ID, query,
			saleID,
			items[i].ProductID,
			items[i].Quantity,
			items[i].Mode,
			items[i].UnitPrice,
			items[i].Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}

	return nil
}

func (r *repository) GetSaleForUpdate(
	ctx context.Context,
	tx core.DBTX,
	scope tenant.Scope,
	id int64,
) (*Sale, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, cashier_user_id, customer_id, sale_mode,
		       payment_method, total_amount, amount_paid, created_at
		FROM sales
		WHERE id = $1 AND %s
		FOR UPDATE`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	var s Sale
	err := tx.GetContext(ctx, &s, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock sale: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock sale: %w", err)
	}

	return &s, nil
}

func (r *repository) RecordPayment(
	ctx context.Context,
	tx core.DBTX,
	scope tenant.Scope,
	saleID int64,
	amount float64,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 3)

	query := fmt.Sprintf(`
		UPDATE sales
		SET amount_paid = amount_paid + $2
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{saleID, amount}, scopeArgs...)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("record payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record payment: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("record payment: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) GetSale(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Sale, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, cashier_user_id, customer_id, sale_mode,
		       payment_method, total_amount, amount_paid, created_at
		FROM sales
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	var s Sale
	err := r.db.GetContext(ctx, &s, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get sale: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}

	return &s, nil
}

func (r *repository) GetSaleItems(
	ctx context.Context,
	saleID int64,
) ([]SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, mode, unit_price, subtotal
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id ASC`

	var items []SaleItem
	if err := r.db.SelectContext(ctx, &items, query, saleID); err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}

	return items, nil
}

func (r *repository) ListSales(
	ctx context.Context,
	scope tenant.Scope,
	params ListSalesParams,
) ([]Sale, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	scopeClause, scopeArgs, next := scope.Predicate("business_id", argIdx)
	conditions = append(conditions, scopeClause)
	args = append(args, scopeArgs...)
	argIdx = next

	if params.PaymentMethod != "" {
		conditions = append(conditions, fmt.Sprintf(
			"payment_method = $%d", argIdx))
		args = append(args, params.PaymentMethod)
		argIdx++
	}

	if params.CashierUserID != "" {
		conditions = append(conditions, fmt.Sprintf(
			"cashier_user_id = $%d", argIdx))
		args = append(args, params.CashierUserID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM sales WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, business_id, cashier_user_id, customer_id, sale_mode,
		       payment_method, total_amount, amount_paid, created_at
		FROM sales
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var sales []Sale
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}

	return sales, total, nil
}
