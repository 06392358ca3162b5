package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/domain"
)

// EventService handles event listing, creation, and joining.
type EventService struct {
	events     domain.EventRepository
	userEvents domain.UserEventRepository
}

// NewEventService creates a new EventService.
func NewEventService(events domain.EventRepository, userEvents domain.UserEventRepository) *EventService {
	return &EventService{events: events, userEvents: userEvents}
}

// List returns events matching the filter, soonest first.
func (s *EventService) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	return s.events.List(ctx, filter)
}

// Get retrieves a single event.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// CreateEventParams carries a new event. OrganizerID is always the caller.
type CreateEventParams struct {
	Title           string
	Description     string
	Category        string
	Location        string
	Date            time.Time
	Price           decimal.Decimal
	MaxParticipants int
	ImageURL        string
}

// Create validates and stores a new event with the caller as organizer.
// Participation starts at zero.
func (s *EventService) Create(ctx context.Context, organizerID string, p CreateEventParams) (*domain.Event, error) {
	if p.Title == "" || p.Description == "" || p.Category == "" || p.Location == "" {
		return nil, fmt.Errorf("%w: title, description, category, and location are required", domain.ErrInvalidInput)
	}
	if p.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if p.MaxParticipants <= 0 {
		return nil, fmt.Errorf("%w: maxParticipants must be positive", domain.ErrInvalidInput)
	}

	event := &domain.Event{
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		Location:        p.Location,
		Date:            p.Date,
		Price:           p.Price,
		MaxParticipants: p.MaxParticipants,
		ImageURL:        p.ImageURL,
		OrganizerID:     organizerID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Join records the caller as a participant. Over-capacity and repeat joins
// are rejected.
func (s *EventService) Join(ctx context.Context, userID, eventID string) (*domain.Event, error) {
	joined, err := s.userEvents.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if joined {
		return nil, domain.ErrAlreadyJoined
	}

	event, err := s.events.AddParticipant(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.userEvents.Create(ctx, &domain.UserEvent{UserID: userID, EventID: eventID}); err != nil {
		return nil, err
	}
	return event, nil
}
