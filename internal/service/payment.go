package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/domain"
)

// PaymentService handles the plan-purchase lifecycle:
// pending -> completed (capture) or pending -> cancelled. Completed and
// cancelled are terminal.
type PaymentService struct {
	payments domain.PaymentRepository
	users    domain.UserRepository
	notifier domain.Notifier
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments domain.PaymentRepository, users domain.UserRepository, notifier domain.Notifier) *PaymentService {
	return &PaymentService{payments: payments, users: users, notifier: notifier}
}

// Create records a pending payment for a plan purchase.
func (s *PaymentService) Create(ctx context.Context, userID string, plan domain.Plan, amount decimal.Decimal, currency string) (*domain.Payment, error) {
	if !domain.ValidPlan(plan) || plan == domain.PlanFree {
		return nil, fmt.Errorf("%w: invalid plan %q", domain.ErrInvalidInput, plan)
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	payment := &domain.Payment{
		UserID:   userID,
		Amount:   amount,
		Currency: currency,
		Plan:     plan,
		Status:   domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

// Execute completes a pending payment: records the external order id,
// upgrades the owner's plan, and pushes a single notification to the
// owner's live connection if one is open.
func (s *PaymentService) Execute(ctx context.Context, userID, paymentID, orderID string) (*domain.Payment, error) {
	payment, err := s.getOwned(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		return nil, fmt.Errorf("%w: payment is already %s", domain.ErrInvalidInput, payment.Status)
	}

	status := domain.PaymentCompleted
	payment, err = s.payments.Update(ctx, paymentID, domain.PaymentUpdate{
		OrderID: &orderID,
		Status:  &status,
	})
	if err != nil {
		return nil, fmt.Errorf("complete payment: %w", err)
	}

	plan := payment.Plan
	if _, err := s.users.Update(ctx, userID, domain.UserUpdate{Plan: &plan}); err != nil {
		return nil, fmt.Errorf("upgrade plan: %w", err)
	}

	s.notifier.Notify(userID, domain.Notification{
		Type:    "payment_success",
		Title:   "Payment Successful",
		Message: fmt.Sprintf("Your %s plan is now active", payment.Plan),
	})

	return payment, nil
}

// Cancel marks a pending payment cancelled.
func (s *PaymentService) Cancel(ctx context.Context, userID, paymentID string) (*domain.Payment, error) {
	payment, err := s.getOwned(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		return nil, fmt.Errorf("%w: payment is already %s", domain.ErrInvalidInput, payment.Status)
	}

	status := domain.PaymentCancelled
	payment, err = s.payments.Update(ctx, paymentID, domain.PaymentUpdate{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("cancel payment: %w", err)
	}
	return payment, nil
}

// ListByUser returns the caller's payments, newest first.
func (s *PaymentService) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

// getOwned loads a payment, reading other users' payments as not found.
func (s *PaymentService) getOwned(ctx context.Context, userID, paymentID string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}
