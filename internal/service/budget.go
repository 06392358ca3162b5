package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/domain"
)

// BudgetService handles per-month spending budgets.
type BudgetService struct {
	budgets domain.BudgetRepository
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgets domain.BudgetRepository) *BudgetService {
	return &BudgetService{budgets: budgets}
}

// GetForPeriod returns the caller's budget for the given month and year.
func (s *BudgetService) GetForPeriod(ctx context.Context, userID string, month, year int) (*domain.Budget, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidInput)
	}
	return s.budgets.GetByPeriod(ctx, userID, month, year)
}

// CreateBudgetParams carries a new monthly budget. Spent categories
// default to zero when omitted.
type CreateBudgetParams struct {
	MonthlyBudget   decimal.Decimal
	ActivitiesSpent decimal.Decimal
	EquipmentSpent  decimal.Decimal
	TransportSpent  decimal.Decimal
	Month           int
	Year            int
}

// Create validates and stores a budget record for the caller.
func (s *BudgetService) Create(ctx context.Context, userID string, p CreateBudgetParams) (*domain.Budget, error) {
	if p.Month < 1 || p.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidInput)
	}
	if p.Year < 2000 {
		return nil, fmt.Errorf("%w: year is out of range", domain.ErrInvalidInput)
	}
	if p.MonthlyBudget.IsNegative() || p.ActivitiesSpent.IsNegative() ||
		p.EquipmentSpent.IsNegative() || p.TransportSpent.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", domain.ErrInvalidInput)
	}

	budget := &domain.Budget{
		UserID:          userID,
		MonthlyBudget:   p.MonthlyBudget,
		ActivitiesSpent: p.ActivitiesSpent,
		EquipmentSpent:  p.EquipmentSpent,
		TransportSpent:  p.TransportSpent,
		Month:           p.Month,
		Year:            p.Year,
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return budget, nil
}
