package service

import (
	"context"

	"github.com/adventuresync/server/internal/domain"
)

// UserService handles profile operations.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// UpdateProfile applies a partial update to the caller's profile.
// Password and plan changes are not reachable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd domain.UserUpdate) (*domain.User, error) {
	upd.Plan = nil
	upd.StorageUsed = nil
	upd.EmailVerified = nil
	return s.users.Update(ctx, userID, upd)
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
