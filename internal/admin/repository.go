// Mohamedbadhey | 2026
// repository.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
)

type Repository interface {
	BusinessExists(ctx context.Context, businessID int64) (bool, error)
	// DeleteBusinessData runs the ordered deletes inside the caller's
	// transaction. The business row and its owner account survive.
	DeleteBusinessData(
		ctx context.Context,
		tx *sqlx.Tx,
		businessID int64,
	) (ResetCounts, error)
	CountBusinessData(
		ctx context.Context,
		businessID int64,
	) (*DataCounts, error)
	RevenueByBusiness(
		ctx context.Context,
		dateRange DateRange,
	) ([]BusinessRevenue, error)
	BillStatusCounts(
		ctx context.Context,
		dateRange DateRange,
	) (BillStatusCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) BusinessExists(
	ctx context.Context,
	businessID int64,
) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, businessID); err != nil {
		return false, fmt.Errorf("check business exists: %w", err)
	}
	return exists, nil
}

func (r *repository) DeleteBusinessData(
	ctx context.Context,
	tx *sqlx.Tx,
	businessID int64,
) (ResetCounts, error) {
	var counts ResetCounts

	// Children before parents; the order matters for the FK graph.
	steps := []struct {
		dest  *int64
		query string
	}{
		{&counts.SaleItems, `
			DELETE FROM sale_items
			WHERE sale_id IN (SELECT id FROM sales WHERE business_id = $1)`},
		{&counts.Sales, `
			DELETE FROM sales WHERE business_id = $1`},
		{&counts.Payments, `
			DELETE FROM payments WHERE business_id = $1`},
		{&counts.MonthlyBills, `
			DELETE FROM monthly_bills WHERE business_id = $1`},
		{&counts.Products, `
			DELETE FROM products WHERE business_id = $1`},
		{&counts.Categories, `
			DELETE FROM categories WHERE business_id = $1`},
		{&counts.Customers, `
			DELETE FROM customers WHERE business_id = $1`},
		{&counts.Users, `
			DELETE FROM users
			WHERE business_id = $1
			  AND id <> COALESCE(
			      (SELECT owner_user_id FROM businesses WHERE id = $1), '')`},
	}

	for _, step := range steps {
		result, err := tx.ExecContext(ctx, step.query, businessID)
		if err != nil {
			return ResetCounts{}, fmt.Errorf("reset business data: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return ResetCounts{}, fmt.Errorf("reset business data: %w", err)
		}

		*step.dest = rows
	}

	return counts, nil
}

func (r *repository) CountBusinessData(
	ctx context.Context,
	businessID int64,
) (*DataCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users
			 WHERE business_id = $1 AND deleted_at IS NULL)  AS users,
			(SELECT COUNT(*) FROM categories
			 WHERE business_id = $1)                         AS categories,
			(SELECT COUNT(*) FROM products
			 WHERE business_id = $1)                         AS products,
			(SELECT COUNT(*) FROM customers
			 WHERE business_id = $1)                         AS customers,
			(SELECT COUNT(*) FROM sales
			 WHERE business_id = $1)                         AS sales,
			(SELECT COUNT(*) FROM sale_items
			 WHERE sale_id IN
			     (SELECT id FROM sales WHERE business_id = $1)) AS sale_items,
			(SELECT COUNT(*) FROM monthly_bills
			 WHERE business_id = $1)                         AS monthly_bills,
			(SELECT COUNT(*) FROM payments
			 WHERE business_id = $1)                         AS payments`

	var row struct {
		Users        int64 `db:"users"`
		Categories   int64 `db:"categories"`
		Products     int64 `db:"products"`
		Customers    int64 `db:"customers"`
		Sales        int64 `db:"sales"`
		SaleItems    int64 `db:"sale_items"`
		MonthlyBills int64 `db:"monthly_bills"`
		Payments     int64 `db:"payments"`
	}
	if err := r.db.GetContext(ctx, &row, query, businessID); err != nil {
		return nil, fmt.Errorf("count business data: %w", err)
	}

	return &DataCounts{
		BusinessID:   businessID,
		Users:        row.Users,
		Categories:   row.Categories,
		Products:     row.Products,
		Customers:    row.Customers,
		Sales:        row.Sales,
		SaleItems:    row.SaleItems,
		MonthlyBills: row.MonthlyBills,
		Payments:     row.Payments,
	}, nil
}

func (r *repository) RevenueByBusiness(
	ctx context.Context,
	dateRange DateRange,
) ([]BusinessRevenue, error) {
	salesClause, salesArgs, next := dateRange.Predicate("created_at", 1)
	billClause, billArgs, _ := dateRange.Predicate("paid_at", next)

	query := fmt.Sprintf(`
		SELECT b.id AS business_id, b.name, b.tier,
		       COALESCE(s.revenue, 0) AS sales_revenue,
		       COALESCE(p.revenue, 0) AS billing_revenue
		FROM businesses b
		LEFT JOIN (
			SELECT business_id, SUM(total_amount) AS revenue
			FROM sales
			WHERE %s
			GROUP BY business_id
		) s ON s.business_id = b.id
		LEFT JOIN (
			SELECT business_id, SUM(amount) AS revenue
			FROM payments
			WHERE %s
			GROUP BY business_id
		) p ON p.business_id = b.id
		WHERE b.status <> 'deleted'
		ORDER BY b.id ASC`, salesClause, billClause)

	args := append(append([]any{}, salesArgs...), billArgs...)

	var rows []BusinessRevenue
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("revenue by business: %w", err)
	}

	return rows, nil
}

func (r *repository) BillStatusCounts(
	ctx context.Context,
	dateRange DateRange,
) (BillStatusCounts, error) {
	clause, args, _ := dateRange.Predicate("due_date", 1)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE status = 'current') AS current,
			COUNT(*) FILTER (WHERE status = 'overdue') AS overdue,
			COUNT(*) FILTER (WHERE status = 'paid')    AS paid
		FROM monthly_bills
		WHERE %s`, clause)

	var counts BillStatusCounts
	err := r.db.GetContext(ctx, &counts, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return BillStatusCounts{}, nil
	}
	if err != nil {
		return BillStatusCounts{}, fmt.Errorf("bill status counts: %w", err)
	}

	return counts, nil
}
