// Mohamedbadhey | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Mohamedbadhey/rtailed-core/internal/auth"
	"github.com/Mohamedbadhey/rtailed-core/internal/core"
	"github.com/Mohamedbadhey/rtailed-core/internal/tenant"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByEmail and GetByID back the auth flow and are deliberately unscoped:
// credentials are verified before a tenant scope exists.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// CreateUser stamps the new row with the caller's business. A superadmin
// operating under the ALL scope has no unambiguous target and is rejected.
func (s *Service) CreateUser(
	ctx context.Context,
	scope tenant.Scope,
	req CreateUserRequest,
) (*User, error) {
	businessID, err := scope.MustBusinessID()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Role:         req.Role,
		BusinessID:   businessID,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUser(
	ctx context.Context,
	scope tenant.Scope,
	id string,
) (*User, error) {
	return s.repo.GetByID(ctx, scope, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	scope tenant.Scope,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}

	if err := s.repo.Update(ctx, scope, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdateUserRole(
	ctx context.Context,
	scope tenant.Scope,
	id, role string,
) (*User, error) {
	if role != tenant.RoleAdmin && role != tenant.RoleCashier {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, scope, id, role); err != nil {
		return nil, err
	}

	user.Role = role
	return user, nil
}

func (s *Service) DeleteUser(
	ctx context.Context,
	scope tenant.Scope,
	requesterID, targetID string,
) error {
	target, err := s.repo.GetByID(ctx, scope, targetID)
	if err != nil {
		return err
	}

	if target.ID == requesterID {
		return fmt.Errorf("cannot delete own account: %w", core.ErrForbidden)
	}

	if target.IsSuperadmin() {
		return fmt.Errorf("cannot delete superadmin users: %w", core.ErrForbidden)
	}

	return s.repo.SoftDelete(ctx, scope, targetID)
}

func (s *Service) ListUsers(
	ctx context.Context,
	scope tenant.Scope,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, scope, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByIDUnscoped(ctx, userID)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		BusinessID:   u.BusinessID,
		TokenVersion: u.TokenVersion,
	}
}

var _ auth.UserProvider = (*Service)(nil)
