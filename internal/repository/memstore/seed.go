package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/adventuresync/server/internal/domain"
)

// Seed loads the demo user, a handful of upcoming events, and a current
// budget. It is idempotent: if the demo user already exists it does nothing.
func (s *Store) Seed(ctx context.Context, bcryptCost int) error {
	if _, err := s.users.GetByUsername(ctx, "alexchen"); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	demo := &domain.User{
		Username:      "alexchen",
		Email:         "alex@example.com",
		PasswordHash:  string(hash),
		Name:          "Alex Chen",
		Location:      "Boulder, Colorado",
		Plan:          domain.PlanBasic,
		StorageUsed:   2048,
		APICallsUsed:  150,
		EmailVerified: true,
	}
	if err := s.users.Create(ctx, demo); err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	now := time.Now().UTC()
	events := []domain.Event{
		{
			Title:           "Mountain Biking Adventure",
			Description:     "Explore scenic mountain trails with experienced guides. Perfect for beginners and intermediate riders.",
			Category:        "cycling",
			Location:        "Boulder, CO",
			Date:            now.AddDate(0, 0, 14),
			Price:           decimal.RequireFromString("15.00"),
			MaxParticipants: 15,
			OrganizerID:     demo.ID,
		},
		{
			Title:           "Lake Kayaking Meetup",
			Description:     "Join fellow paddlers for a peaceful afternoon on Crystal Lake. Bring your own kayak or rent one there.",
			Category:        "water sports",
			Location:        "Lake Tahoe, CA",
			Date:            now.AddDate(0, 0, 17),
			Price:           decimal.Zero,
			MaxParticipants: 20,
			OrganizerID:     demo.ID,
		},
		{
			Title:           "Sunrise Hike & Photography",
			Description:     "Capture stunning sunrise views from Eagle Peak. All skill levels welcome. Camera equipment provided.",
			Category:        "hiking",
			Location:        "Denver, CO",
			Date:            now.AddDate(0, 0, 19),
			Price:           decimal.RequireFromString("10.00"),
			MaxParticipants: 12,
			OrganizerID:     demo.ID,
		},
	}
	for i := range events {
		if err := s.events.Create(ctx, &events[i]); err != nil {
			return fmt.Errorf("create demo event: %w", err)
		}
	}

	budget := &domain.Budget{
		UserID:          demo.ID,
		MonthlyBudget:   decimal.RequireFromString("200.00"),
		ActivitiesSpent: decimal.RequireFromString("85.00"),
		EquipmentSpent:  decimal.RequireFromString("25.00"),
		TransportSpent:  decimal.RequireFromString("15.00"),
		Month:           int(now.Month()),
		Year:            now.Year(),
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return fmt.Errorf("create demo budget: %w", err)
	}

	return nil
}
