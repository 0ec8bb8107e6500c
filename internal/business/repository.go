// Mohamedbadhey | 2026
// repository.go

package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
)

// Repository manages business rows themselves. Businesses are the scoping
// root, not a scoped table, so methods here are superadmin-only and gated
// one layer up.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Business, error)
	List(
		ctx context.Context,
		params ListBusinessesParams,
	) ([]Business, int, error)
	Update(ctx context.Context, b *Business) error
	GetDetails(ctx context.Context, id int64) (*BusinessDetails, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Business, error) {
	query := `
		SELECT id, name, status, tier, owner_user_id, logo_url, theme_color,
		       contact_info, created_at, updated_at
		FROM businesses
		WHERE id = $1`

	var b Business
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get business: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}

	return &b, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListBusinessesParams,
) ([]Business, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM businesses WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count businesses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, status, tier, owner_user_id, logo_url, theme_color,
		       contact_info, created_at, updated_at
		FROM businesses
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var businesses []Business
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list businesses: %w", err)
	}

	return businesses, total, nil
}

func (r *repository) Update(ctx context.Context, b *Business) error {
	query := `
		UPDATE businesses
		SET name = $2, status = $3, tier = $4, logo_url = $5,
		    theme_color = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &b.UpdatedAt, query,
		b.ID,
		b.Name,
		b.Status,
		b.Tier,
		b.LogoURL,
		b.ThemeColor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update business: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}

	return nil
}

func (r *repository) GetDetails(
	ctx context.Context,
	id int64,
) (*BusinessDetails, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM users
			 WHERE business_id = $1 AND deleted_at IS NULL)     AS users,
			(SELECT COUNT(*) FROM products
			 WHERE business_id = $1)                            AS products,
			(SELECT COUNT(*) FROM customers
			 WHERE business_id = $1)                            AS customers,
			(SELECT COUNT(*) FROM sales
			 WHERE business_id = $1)                            AS sales,
			(SELECT COALESCE(SUM(total_amount), 0) FROM sales
			 WHERE business_id = $1)                            AS revenue`

	var counts struct {
		Users     int     `db:"users"`
		Products  int     `db:"products"`
		Customers int     `db:"customers"`
		Sales     int     `db:"sales"`
		Revenue   float64 `db:"revenue"`
	}
	if err := r.db.GetContext(ctx, &counts, query, id); err != nil {
		return nil, fmt.Errorf("business details: %w", err)
	}

	return &BusinessDetails{
		Business:  ToBusinessResponse(b),
		Users:     counts.Users,
		Products:  counts.Products,
		Customers: counts.Customers,
		Sales:     counts.Sales,
		Revenue:   counts.Revenue,
	}, nil
}
