package service

import (
	"context"
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/repository"
)

// AccountService coordinates registration and login flows. Login is by
// email lookup only; the application carries no credentials at all.
type AccountService struct {
	users repository.UserRepository
}

// NewAccountService builds the service.
func NewAccountService(users repository.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Register creates an account. The role is fixed forever at this point.
// A taken email surfaces as domain.ErrDuplicateEmail; registration does
// not authenticate the caller.
func (s *AccountService) Register(ctx context.Context, name, email string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		role = domain.RoleRegular
	}

	user := &domain.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login looks the account up by email. No credential is checked and
// nothing is written; an unknown email returns domain.ErrUserNotFound.
func (s *AccountService) Login(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
