// Mohamedbadhey | 2026
// service.go

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

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

// ResetBusiness wipes every tenant table for one business in a single
// transaction. The business row and its owner account are kept. A failure
// anywhere rolls the whole thing back; there is no partial success.
func (s *Service) ResetBusiness(
	ctx context.Context,
	scope tenant.Scope,
	businessID int64,
) (*ResetBusinessResponse, error) {
	if !scope.IsAll() {
		return nil, fmt.Errorf("reset business: %w", core.ErrForbidden)
	}

	exists, err := s.repo.BusinessExists(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("reset business: %w", core.ErrNotFound)
	}

	var counts ResetCounts
	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		deleted, err := s.repo.DeleteBusinessData(ctx, tx, businessID)
		if err != nil {
			return err
		}
		counts = deleted
		return nil
	})
	if err != nil {
		s.logger.Error("business reset failed",
			slog.Int64("business_id", businessID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("reset business: %w", core.ErrConsistency)
	}

	s.logger.Info("business data reset",
		slog.Int64("business_id", businessID),
		slog.Int64("total_deleted", counts.Total()),
	)

	return &ResetBusinessResponse{
		BusinessID: businessID,
		Deleted:    counts,
		Total:      counts.Total(),
	}, nil
}

func (s *Service) GetBusinessDataCounts(
	ctx context.Context,
	scope tenant.Scope,
	businessID int64,
) (*DataCounts, error) {
	if !scope.IsAll() {
		return nil, fmt.Errorf("business data counts: %w", core.ErrForbidden)
	}

	exists, err := s.repo.BusinessExists(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("business data counts: %w", core.ErrNotFound)
	}

	return s.repo.CountBusinessData(ctx, businessID)
}

// RevenueAnalytics aggregates platform revenue across all tenants. Totals
// are computed from the per-business rows so the sum always reconciles.
func (s *Service) RevenueAnalytics(
	ctx context.Context,
	scope tenant.Scope,
	dateRange DateRange,
) (*RevenueAnalyticsResponse, error) {
	if !scope.IsAll() {
		return nil, fmt.Errorf("revenue analytics: %w", core.ErrForbidden)
	}

	rows, err := s.repo.RevenueByBusiness(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	bills, err := s.repo.BillStatusCounts(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	resp := &RevenueAnalyticsResponse{
		Range:      dateRange.String(),
		Businesses: rows,
		Bills:      bills,
	}

	tierRevenue := make(map[string]*TierRevenue)
	for i := range rows {
		rows[i].Total = rows[i].SalesRevenue + rows[i].BillingRevenue
		resp.TotalSales += rows[i].SalesRevenue
		resp.TotalBilling += rows[i].BillingRevenue

		tr, ok := tierRevenue[rows[i].Tier]
		if !ok {
			tr = &TierRevenue{Tier: rows[i].Tier}
			tierRevenue[rows[i].Tier] = tr
		}
		tr.Businesses++
		tr.Revenue += rows[i].Total
	}
	resp.GrandTotal = resp.TotalSales + resp.TotalBilling

	for _, tr := range tierRevenue {
		resp.Tiers = append(resp.Tiers, *tr)
	}
	sort.Slice(resp.Tiers, func(i, j int) bool {
		return resp.Tiers[i].Tier < resp.Tiers[j].Tier
	})

	return resp, nil
}
