package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adventuresync/server/internal/domain"
)

// PaymentRepository implements domain.PaymentRepository on an in-memory map.
type PaymentRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Payment
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}
	payment.CreatedAt = time.Now().UTC()
	r.byID[payment.ID] = *payment
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]domain.Payment, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}

func (r *PaymentRepository) Update(ctx context.Context, id string, upd domain.PaymentUpdate) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if upd.OrderID != nil {
		payment.OrderID = *upd.OrderID
	}
	if upd.Status != nil {
		payment.Status = *upd.Status
	}

	r.byID[id] = payment
	return &payment, nil
}

func (r *PaymentRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
