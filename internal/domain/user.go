package domain

import (
	"context"
	"time"
)

// Plan is a subscription tier gating storage and API-call quotas.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

// ValidPlan reports whether p is a known subscription tier.
func ValidPlan(p Plan) bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium:
		return true
	}
	return false
}

// User represents a registered user of the application.
// PasswordHash must never cross the API boundary; DTOs carry no hash field.
type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	Name             string
	Location         string
	Plan             Plan
	StorageUsed      int64 // bytes, monotonic non-negative
	APICallsUsed     int   // monthly counter
	TwoFactorEnabled bool
	EmailVerified    bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserUpdate enumerates the mutable user fields for partial updates.
// Nil fields are left unchanged. ID and PasswordHash are not
// representable here.
type UserUpdate struct {
	Name             *string
	Location         *string
	Plan             *Plan
	StorageUsed      *int64
	TwoFactorEnabled *bool
	EmailVerified    *bool
}

// UserRepository defines persistence operations for users.
// Lookups return ErrNotFound rather than a nil, nil pair.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*User, error)
	// IncrementAPICalls bumps the monthly usage counter by one.
	IncrementAPICalls(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
