package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/domain"
)

// UserStats combines stored usage counters with activity aggregates.
// MilesExplored stays in the shape for the client but derives to zero
// until events carry distance data.
type UserStats struct {
	EventsJoined  int
	MilesExplored int
	TotalSaved    decimal.Decimal
	APICallsUsed  int
	StorageUsed   int64
}

// SystemMetrics aggregates counts across all tables.
type SystemMetrics struct {
	TotalUsers       int
	TotalEvents      int
	TotalPayments    int
	TotalFileStorage int64
}

// StatsService derives per-user and system-wide statistics.
type StatsService struct {
	users      domain.UserRepository
	events     domain.EventRepository
	userEvents domain.UserEventRepository
	files      domain.FileRepository
	payments   domain.PaymentRepository
	budgets    domain.BudgetRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	users domain.UserRepository,
	events domain.EventRepository,
	userEvents domain.UserEventRepository,
	files domain.FileRepository,
	payments domain.PaymentRepository,
	budgets domain.BudgetRepository,
) *StatsService {
	return &StatsService{
		users:      users,
		events:     events,
		userEvents: userEvents,
		files:      files,
		payments:   payments,
		budgets:    budgets,
	}
}

// UserStats returns the caller's usage counters and activity aggregates.
// TotalSaved sums, over each of the user's budgets, whatever remained of
// the monthly allowance after spending.
func (s *StatsService) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	joined, err := s.userEvents.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count joined events: %w", err)
	}

	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	saved := decimal.Zero
	for _, b := range budgets {
		remaining := b.MonthlyBudget.Sub(b.TotalSpent())
		if remaining.IsPositive() {
			saved = saved.Add(remaining)
		}
	}

	return &UserStats{
		EventsJoined: joined,
		TotalSaved:   saved,
		APICallsUsed: user.APICallsUsed,
		StorageUsed:  user.StorageUsed,
	}, nil
}

// SystemMetrics returns counts across all top-level tables plus the sum of
// stored file sizes.
func (s *StatsService) SystemMetrics(ctx context.Context) (*SystemMetrics, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	events, err := s.events.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	payments, err := s.payments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}
	storage, err := s.files.TotalSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum file storage: %w", err)
	}

	return &SystemMetrics{
		TotalUsers:       users,
		TotalEvents:      events,
		TotalPayments:    payments,
		TotalFileStorage: storage,
	}, nil
}
