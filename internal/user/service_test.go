// Mohamedbadhey | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type mockRepository struct {
	users map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) visible(scope tenant.Scope, u *User) bool {
	if u.DeletedAt != nil {
		return false
	}
	if scope.IsAll() {
		return true
	}
	id, _ := scope.BusinessID()
	return id == u.BusinessID
}

func (m *mockRepository) Create(_ context.Context, user *User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email && existing.DeletedAt == nil {
			return core.ErrDuplicateKey
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockRepository) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, u := range m.users {
		if u.Email == email && u.DeletedAt == nil {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *mockRepository) GetByIDUnscoped(
	_ context.Context,
	id string,
) (*User, error) {
	u, ok := m.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, core.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) GetByID(
	_ context.Context,
	scope tenant.Scope,
	id string,
) (*User, error) {
	u, ok := m.users[id]
	if !ok || !m.visible(scope, u) {
		return nil, core.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) Update(
	_ context.Context,
	scope tenant.Scope,
	user *User,
) error {
	existing, ok := m.users[user.ID]
	if !ok || !m.visible(scope, existing) {
		return core.ErrNotFound
	}
	existing.Username = user.Username
	existing.Email = user.Email
	return nil
}

func (m *mockRepository) UpdateRole(
	_ context.Context,
	scope tenant.Scope,
	id, role string,
) error {
	u, ok := m.users[id]
	if !ok || !m.visible(scope, u) {
		return core.ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *mockRepository) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := m.users[id]
	if !ok || u.DeletedAt != nil {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockRepository) IncrementTokenVersion(
	_ context.Context,
	id string,
) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.TokenVersion++
	return nil
}

func (m *mockRepository) SoftDelete(
	_ context.Context,
	scope tenant.Scope,
	id string,
) error {
	u, ok := m.users[id]
	if !ok || !m.visible(scope, u) {
		return core.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (m *mockRepository) List(
	_ context.Context,
	scope tenant.Scope,
	_ ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range m.users {
		if m.visible(scope, u) {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (m *mockRepository) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateUserStampsScopeBusiness(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	u, err := svc.CreateUser(
		context.Background(),
		tenant.ForBusiness(3),
		CreateUserRequest{
			Username: "hodan",
			Email:    "Hodan@Example.com",
			Password: "correct-horse-battery",
			Role:     tenant.RoleCashier,
		},
	)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if u.BusinessID != 3 {
		t.Errorf("BusinessID = %d, want 3", u.BusinessID)
	}
	if u.Email != "hodan@example.com" {
		t.Errorf("Email = %q, want lowercased", u.Email)
	}
	if u.PasswordHash == "" || u.PasswordHash == "correct-horse-battery" {
		t.Error("password must be stored hashed")
	}
}

func TestCreateUserRejectsAllScope(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.CreateUser(
		context.Background(),
		tenant.All(),
		CreateUserRequest{
			Username: "x",
			Email:    "x@example.com",
			Password: "password123",
			Role:     tenant.RoleCashier,
		},
	)
	if !errors.Is(err, core.ErrInvalidScope) {
		t.Errorf("CreateUser() error = %v, want ErrInvalidScope", err)
	}
}

func TestUpdateUserRolePersists(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()
	scope := tenant.ForBusiness(1)

	created, err := svc.CreateUser(ctx, scope, CreateUserRequest{
		Username: "warsame",
		Email:    "warsame@example.com",
		Password: "password123",
		Role:     tenant.RoleCashier,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.UpdateUserRole(
		ctx, scope, created.ID, tenant.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole() error = %v", err)
	}

	stored, err := svc.GetUser(ctx, scope, created.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if stored.Role != tenant.RoleAdmin {
		t.Errorf("Role = %q, want admin", stored.Role)
	}
}

func TestUpdateUserRoleRejectsSuperadmin(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.UpdateUserRole(
		context.Background(),
		tenant.ForBusiness(1),
		"whatever",
		tenant.RoleSuperadmin,
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("UpdateUserRole() error = %v, want ErrInvalidInput", err)
	}
}

func TestDeleteUserGuards(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()
	scope := tenant.ForBusiness(1)

	target, err := svc.CreateUser(ctx, scope, CreateUserRequest{
		Username: "cashier",
		Email:    "cashier@example.com",
		Password: "password123",
		Role:     tenant.RoleCashier,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("cannot delete self", func(t *testing.T) {
		err := svc.DeleteUser(ctx, scope, target.ID, target.ID)
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("deletes other user", func(t *testing.T) {
		if err := svc.DeleteUser(ctx, scope, "admin-1", target.ID); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}
		if _, err := svc.GetUser(ctx, scope, target.ID); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("deleted user lookup error = %v, want ErrNotFound", err)
		}
	})
}

func TestGetUserCrossTenantIsNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, tenant.ForBusiness(1),
		CreateUserRequest{
			Username: "hidden",
			Email:    "hidden@example.com",
			Password: "password123",
			Role:     tenant.RoleCashier,
		})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = svc.GetUser(ctx, tenant.ForBusiness(2), created.ID)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("cross-tenant GetUser() error = %v, want ErrNotFound", err)
	}
}
