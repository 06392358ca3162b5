package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Budget tracks a user's spending for one calendar month.
// Scoped uniquely per (userID, month, year).
type Budget struct {
	ID              string
	UserID          string
	MonthlyBudget   decimal.Decimal
	ActivitiesSpent decimal.Decimal
	EquipmentSpent  decimal.Decimal
	TransportSpent  decimal.Decimal
	Month           int // 1-12
	Year            int
	CreatedAt       time.Time
}

// TotalSpent sums the three spending categories.
func (b *Budget) TotalSpent() decimal.Decimal {
	return b.ActivitiesSpent.Add(b.EquipmentSpent).Add(b.TransportSpent)
}

// BudgetUpdate enumerates the mutable budget fields for partial updates.
type BudgetUpdate struct {
	MonthlyBudget   *decimal.Decimal
	ActivitiesSpent *decimal.Decimal
	EquipmentSpent  *decimal.Decimal
	TransportSpent  *decimal.Decimal
}

// BudgetRepository defines persistence operations for budgets.
type BudgetRepository interface {
	Create(ctx context.Context, budget *Budget) error
	// GetByPeriod returns the user's budget for the given month and year.
	GetByPeriod(ctx context.Context, userID string, month, year int) (*Budget, error)
	ListByUser(ctx context.Context, userID string) ([]Budget, error)
	Update(ctx context.Context, id string, upd BudgetUpdate) (*Budget, error)
}
