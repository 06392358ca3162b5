package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event is an outdoor activity created by an organizer.
type Event struct {
	ID                  string
	Title               string
	Description         string
	Category            string
	Location            string
	Date                time.Time
	Price               decimal.Decimal // non-negative
	MaxParticipants     int
	CurrentParticipants int
	ImageURL            string
	OrganizerID         string
	CreatedAt           time.Time
}

// EventFilter narrows event listings. Category matches exactly;
// Location and Search are case-insensitive substring matches
// (Search runs over title and description).
type EventFilter struct {
	Category string
	Location string
	Search   string
}

// EventUpdate enumerates the mutable event fields for partial updates.
type EventUpdate struct {
	Title           *string
	Description     *string
	Category        *string
	Location        *string
	Date            *time.Time
	Price           *decimal.Decimal
	MaxParticipants *int
	ImageURL        *string
}

// UserEvent records a user's membership in an event.
type UserEvent struct {
	ID       string
	UserID   string
	EventID  string
	JoinedAt time.Time
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events matching the filter, ordered by date ascending.
	List(ctx context.Context, filter EventFilter) ([]Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	// AddParticipant increments currentParticipants, failing with
	// ErrEventFull once maxParticipants is reached. The check and the
	// increment happen under the same lock.
	AddParticipant(ctx context.Context, id string) (*Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// UserEventRepository records event memberships.
type UserEventRepository interface {
	Create(ctx context.Context, ue *UserEvent) error
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
