package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
// Completed and cancelled are terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is a plan purchase routed through the external processor.
type Payment struct {
	ID        string
	UserID    string
	OrderID   string // external processor order id, empty until execution
	Amount    decimal.Decimal
	Currency  string
	Plan      Plan
	Status    PaymentStatus
	CreatedAt time.Time
}

// PaymentUpdate enumerates the mutable payment fields for partial updates.
type PaymentUpdate struct {
	OrderID *string
	Status  *PaymentStatus
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	// ListByUser returns the user's payments, newest first.
	ListByUser(ctx context.Context, userID string) ([]Payment, error)
	Update(ctx context.Context, id string, upd PaymentUpdate) (*Payment, error)
	Count(ctx context.Context) (int, error)
}
