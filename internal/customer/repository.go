// Mohamedbadhey | 2026
// repository.go

package customer

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
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, scope tenant.Scope, id int64) (*Customer, error)
	List(
		ctx context.Context,
		scope tenant.Scope,
		params ListCustomersParams,
	) ([]Customer, int, error)
	Update(ctx context.Context, scope tenant.Scope, c *Customer) error
	Delete(ctx context.Context, scope tenant.Scope, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (business_id, name, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, c, query,
		c.BusinessID,
		c.Name,
		c.Phone,
		c.Email,
		c.Address,
	)
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Customer, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, name, phone, email, address,
		       created_at, updated_at
		FROM customers
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	var c Customer
	err := r.db.GetContext(ctx, &c, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return &c, nil
}

func (r *repository) List(
	ctx context.Context,
	scope tenant.Scope,
	params ListCustomersParams,
) ([]Customer, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	scopeClause, scopeArgs, next := scope.Predicate("business_id", argIdx)
	conditions = append(conditions, scopeClause)
	args = append(args, scopeArgs...)
	argIdx = next

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR phone ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM customers WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, business_id, name, phone, email, address,
		       created_at, updated_at
		FROM customers
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var customers []Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}

	return customers, total, nil
}

func (r *repository) Update(
	ctx context.Context,
	scope tenant.Scope,
	c *Customer,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 6)

	query := fmt.Sprintf(`
		UPDATE customers
		SET name = $2, phone = $3, email = $4, address = $5,
		    updated_at = NOW()
		WHERE id = $1 AND %s
		RETURNING updated_at`, scopeClause)

	args := append(
		[]any{c.ID, c.Name, c.Phone, c.Email, c.Address},
		scopeArgs...,
	)

	err := r.db.GetContext(ctx, &c.UpdatedAt, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update customer: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		DELETE FROM customers
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete customer: %w", core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
