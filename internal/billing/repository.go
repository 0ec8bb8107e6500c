// Mohamedbadhey | 2026
// repository.go

package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type Repository interface {
	CreateBill(ctx context.Context, b *MonthlyBill) error
	GetBill(
		ctx context.Context,
		scope tenant.Scope,
		id int64,
	) (*MonthlyBill, error)
	ListBills(
		ctx context.Context,
		scope tenant.Scope,
		params ListBillsParams,
	) ([]MonthlyBill, int, error)
	MarkOverdueBills(ctx context.Context, scope tenant.Scope) (int64, error)

	PayBill(
		ctx context.Context,
		tx *sqlx.Tx,
		scope tenant.Scope,
		billID int64,
		p *Payment,
	) error
	ListPayments(
		ctx context.Context,
		scope tenant.Scope,
		billID int64,
	) ([]Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBill(ctx context.Context, b *MonthlyBill) error {
	query := `
		INSERT INTO monthly_bills (business_id, period, tier, amount,
		                           status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, b, query,
		b.BusinessID,
		b.Period,
		b.Tier,
		b.Amount,
		b.Status,
		b.DueDate,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create bill: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create bill: %w", err)
	}

	return nil
}

func (r *repository) GetBill(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*MonthlyBill, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, period, tier, amount, status, due_date,
		       created_at, updated_at
		FROM monthly_bills
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	var b MonthlyBill
	err := r.db.GetContext(ctx, &b, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bill: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}

	return &b, nil
}

func (r *repository) ListBills(
	ctx context.Context,
	scope tenant.Scope,
	params ListBillsParams,
) ([]MonthlyBill, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	scopeClause, scopeArgs, next := scope.Predicate("business_id", argIdx)
	conditions = append(conditions, scopeClause)
	args = append(args, scopeArgs...)
	argIdx = next

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM monthly_bills WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bills: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, business_id, period, tier, amount, status, due_date,
		       created_at, updated_at
		FROM monthly_bills
		WHERE %s
		ORDER BY due_date DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var bills []MonthlyBill
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bills: %w", err)
	}

	return bills, total, nil
}

// MarkOverdueBills flips unpaid bills past their due date to overdue.
func (r *repository) MarkOverdueBills(
	ctx context.Context,
	scope tenant.Scope,
) (int64, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 1)

	query := fmt.Sprintf(`
		UPDATE monthly_bills
		SET status = 'overdue', updated_at = NOW()
		WHERE %s AND status = 'current' AND due_date < NOW()`, scopeClause)

	result, err := r.db.ExecContext(ctx, query, scopeArgs...)
	if err != nil {
		return 0, fmt.Errorf("mark overdue bills: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark overdue bills: %w", err)
	}

	return rows, nil
}

func (r *repository) PayBill(
	ctx context.Context,
	tx *sqlx.Tx,
	scope tenant.Scope,
	billID int64,
	p *Payment,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	lockQuery := fmt.Sprintf(`
		SELECT id, business_id, period, tier, amount, status, due_date,
		       created_at, updated_at
		FROM monthly_bills
		WHERE id = $1 AND %s
		FOR UPDATE`, scopeClause)

	lockArgs := append([]any{billID}, scopeArgs...)

	var bill MonthlyBill
	err := tx.GetContext(ctx, &bill, lockQuery, lockArgs...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("pay bill: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("pay bill: %w", err)
	}

	if bill.Status == StatusPaid {
		return fmt.Errorf("bill already paid: %w", core.ErrInvalidInput)
	}

	insertQuery := `
		INSERT INTO payments (business_id, bill_id, amount, method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, paid_at`

	p.BusinessID = bill.BusinessID
	p.BillID = billID
	if err := tx.GetContext(ctx, p, insertQuery,
		p.BusinessID, p.BillID, p.Amount, p.Method); err != nil {
		return fmt.Errorf("pay bill: %w", err)
	}

	var paidTotal float64
	sumQuery := `
		SELECT COALESCE(SUM(amount), 0) FROM payments WHERE bill_id = $1`
	if err := tx.GetContext(ctx, &paidTotal, sumQuery, billID); err != nil {
		return fmt.Errorf("pay bill: %w", err)
	}

	if paidTotal >= bill.Amount {
		updateQuery := `
			UPDATE monthly_bills
			SET status = 'paid', updated_at = NOW()
			WHERE id = $1`
		if _, err := tx.ExecContext(ctx, updateQuery, billID); err != nil {
			return fmt.Errorf("pay bill: %w", err)
		}
	}

	return nil
}

func (r *repository) ListPayments(
	ctx context.Context,
	scope tenant.Scope,
	billID int64,
) ([]Payment, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, bill_id, amount, method, paid_at
		FROM payments
		WHERE bill_id = $1 AND %s
		ORDER BY paid_at DESC`, scopeClause)

	args := append([]any{billID}, scopeArgs...)

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
