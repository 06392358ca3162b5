package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adventuresync/server/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository on an in-memory map.
type BudgetRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Budget
}

func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	budget.CreatedAt = time.Now().UTC()
	r.byID[budget.ID] = *budget
	return nil
}

func (r *BudgetRepository) GetByPeriod(ctx context.Context, userID string, month, year int) (*domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.byID {
		if b.UserID == userID && b.Month == month && b.Year == year {
			budget := b
			return &budget, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *BudgetRepository) ListByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	budgets := make([]domain.Budget, 0)
	for _, b := range r.byID {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, id string, upd domain.BudgetUpdate) (*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	budget, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if upd.MonthlyBudget != nil {
		budget.MonthlyBudget = *upd.MonthlyBudget
	}
	if upd.ActivitiesSpent != nil {
		budget.ActivitiesSpent = *upd.ActivitiesSpent
	}
	if upd.EquipmentSpent != nil {
		budget.EquipmentSpent = *upd.EquipmentSpent
	}
	if upd.TransportSpent != nil {
		budget.TransportSpent = *upd.TransportSpent
	}

	r.byID[id] = budget
	return &budget, nil
}
