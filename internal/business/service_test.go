// Mohamedbadhey | 2026
// service_test.go

package business

import (
	"context"
	"errors"
	"testing"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type mockRepository struct {
	businesses map[int64]*Business
	details    map[int64]*BusinessDetails
}

func (m *mockRepository) GetByID(
	_ context.Context,
	id int64,
) (*Business, error) {
	b, ok := m.businesses[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockRepository) List(
	_ context.Context,
	_ ListBusinessesParams,
) ([]Business, int, error) {
	var out []Business
	for _, b := range m.businesses {
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(_ context.Context, b *Business) error {
	existing, ok := m.businesses[b.ID]
	if !ok {
		return core.ErrNotFound
	}
	*existing = *b
	return nil
}

func (m *mockRepository) GetDetails(
	_ context.Context,
	id int64,
) (*BusinessDetails, error) {
	d, ok := m.details[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return d, nil
}

func newFixture() (*Service, *mockRepository) {
	repo := &mockRepository{
		businesses: map[int64]*Business{
			1: {ID: 1, Name: "Alpha Stores", Status: StatusActive, Tier: TierBasic},
			2: {ID: 2, Name: "Beta Traders", Status: StatusActive, Tier: TierPremium},
		},
		details: map[int64]*BusinessDetails{
			1: {
				Business:  BusinessResponse{ID: 1, Name: "Alpha Stores"},
				Users:     3,
				Products:  12,
				Customers: 40,
				Sales:     100,
				Revenue:   2500,
			},
		},
	}
	return NewService(repo), repo
}

func TestListBusinessesRequiresAllScope(t *testing.T) {
	svc, _ := newFixture()

	_, _, err := svc.ListBusinesses(
		context.Background(),
		tenant.ForBusiness(1),
		ListBusinessesParams{},
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("ListBusinesses() error = %v, want ErrForbidden", err)
	}

	businesses, total, err := svc.ListBusinesses(
		context.Background(),
		tenant.All(),
		ListBusinessesParams{},
	)
	if err != nil {
		t.Fatalf("ListBusinesses() under ALL error = %v", err)
	}
	if total != 2 || len(businesses) != 2 {
		t.Errorf("got %d businesses (total %d), want 2", len(businesses), total)
	}
}

func TestGetDetailsScopedToOwnBusiness(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	details, err := svc.GetDetails(ctx, tenant.ForBusiness(1), 1)
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if details.Users != 3 || details.Products != 12 ||
		details.Customers != 40 || details.Sales != 100 ||
		details.Revenue != 2500 {
		t.Errorf("details = %+v, want seeded counts", details)
	}

	// A foreign business id resolves to nothing, not to a 403.
	_, err = svc.GetDetails(ctx, tenant.ForBusiness(2), 1)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign GetDetails() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateBusinessAppliesPartialFields(t *testing.T) {
	svc, repo := newFixture()

	newTier := TierEnterprise
	b, err := svc.UpdateBusiness(
		context.Background(),
		tenant.All(),
		2,
		UpdateBusinessRequest{Tier: &newTier},
	)
	if err != nil {
		t.Fatalf("UpdateBusiness() error = %v", err)
	}

	if b.Tier != TierEnterprise {
		t.Errorf("Tier = %q, want enterprise", b.Tier)
	}
	if b.Name != "Beta Traders" {
		t.Errorf("Name = %q, want unchanged", b.Name)
	}
	if repo.businesses[2].Tier != TierEnterprise {
		t.Error("update not persisted")
	}
}
