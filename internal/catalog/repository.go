// Mohamedbadhey | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

// Repository holds both categories and products; every method takes the
// caller's scope and the business_id predicate is part of every statement.
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(
		ctx context.Context,
		scope tenant.Scope,
		id int64,
	) (*Category, error)
	ListCategories(
		ctx context.Context,
		scope tenant.Scope,
	) ([]Category, error)
	UpdateCategory(ctx context.Context, scope tenant.Scope, c *Category) error
	DeleteCategory(ctx context.Context, scope tenant.Scope, id int64) error

	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(
		ctx context.Context,
		scope tenant.Scope,
		id int64,
	) (*Product, error)
	ListProducts(
		ctx context.Context,
		scope tenant.Scope,
		params ListParams,
	) ([]Product, int, error)
	UpdateProduct(ctx context.Context, scope tenant.Scope, p *Product) error
	DeleteProduct(ctx context.Context, scope tenant.Scope, id int64) error

	// GetProductForUpdate locks the row for a stock adjustment inside a
	// transaction.
	GetProductForUpdate(
		ctx context.Context,
		tx core.DBTX,
		scope tenant.Scope,
		id int64,
	) (*Product, error)
	AdjustStock(
		ctx context.Context,
		tx core.DBTX,
		scope tenant.Scope,
		id int64,
		delta int,
	) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (business_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, c, query,
		c.BusinessID,
		c.Name,
		c.Description,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) GetCategory(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Category, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	var c Category
	err := r.db.GetContext(ctx, &c, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &c, nil
}

func (r *repository) ListCategories(
	ctx context.Context,
	scope tenant.Scope,
) ([]Category, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 1)

	query := fmt.Sprintf(`
		SELECT id, business_id, name, description, created_at, updated_at
		FROM categories
		WHERE %s
		ORDER BY name ASC`, scopeClause)

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query, scopeArgs...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) UpdateCategory(
	ctx context.Context,
	scope tenant.Scope,
	c *Category,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 4)

	query := fmt.Sprintf(`
		UPDATE categories
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1 AND %s
		RETURNING updated_at`, scopeClause)

	args := append([]any{c.ID, c.Name, c.Description}, scopeArgs...)

	err := r.db.GetContext(ctx, &c.UpdatedAt, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *repository) DeleteCategory(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		DELETE FROM categories
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateProduct(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (business_id, category_id, name, sku,
		                      retail_price, wholesale_price,
		                      stock_quantity, low_stock_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, p, query,
		p.BusinessID,
		p.CategoryID,
		p.Name,
		p.SKU,
		p.RetailPrice,
		p.WholesalePrice,
		p.StockQuantity,
		p.LowStockLevel,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create product: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) GetProduct(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) (*Product, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, category_id, name, sku, retail_price,
		       wholesale_price, stock_quantity, low_stock_level,
		       created_at, updated_at
		FROM products
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	var p Product
	err := r.db.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

func (r *repository) ListProducts(
	ctx context.Context,
	scope tenant.Scope,
	params ListParams,
) ([]Product, int, error) {
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
			"(name ILIKE $%d OR sku ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM products WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, business_id, category_id, name, sku, retail_price,
		       wholesale_price, stock_quantity, low_stock_level,
		       created_at, updated_at
		FROM products
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

func (r *repository) UpdateProduct(
	ctx context.Context,
	scope tenant.Scope,
	p *Product,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 9)

	query := fmt.Sprintf(`
		UPDATE products
		SET category_id = $2, name = $3, sku = $4, retail_price = $5,
		    wholesale_price = $6, stock_quantity = $7, low_stock_level = $8,
		    updated_at = NOW()
		WHERE id = $1 AND %s
		RETURNING updated_at`, scopeClause)

	args := append([]any{
		p.ID,
		p.CategoryID,
		p.Name,
		p.SKU,
		p.RetailPrice,
		p.WholesalePrice,
		p.StockQuantity,
		p.LowStockLevel,
	}, scopeArgs...)

	err := r.db.GetContext(ctx, &p.UpdatedAt, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) DeleteProduct(
	ctx context.Context,
	scope tenant.Scope,
	id int64,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		DELETE FROM products
		WHERE id = $1 AND %s`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) GetProductForUpdate(
	ctx context.Context,
	tx core.DBTX,
	scope tenant.Scope,
	id int64,
) (*Product, error) {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 2)

	query := fmt.Sprintf(`
		SELECT id, business_id, category_id, name, sku, retail_price,
		       wholesale_price, stock_quantity, low_stock_level,
		       created_at, updated_at
		FROM products
		WHERE id = $1 AND %s
		FOR UPDATE`, scopeClause)

	args := append([]any{id}, scopeArgs...)

	var p Product
	err := tx.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock product: %w", err)
	}

	return &p, nil
}

func (r *repository) AdjustStock(
	ctx context.Context,
	tx core.DBTX,
	scope tenant.Scope,
	id int64,
	delta int,
) error {
	scopeClause, scopeArgs, _ := scope.Predicate("business_id", 3)

	query := fmt.Sprintf(`
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1 AND %s AND stock_quantity + $2 >= 0`, scopeClause)

	args := append([]any{id, delta}, scopeArgs...)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("adjust stock: %w", core.ErrInvalidInput)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
