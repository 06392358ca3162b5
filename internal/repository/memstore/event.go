package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adventuresync/server/internal/domain"
)

// EventRepository implements domain.EventRepository on an in-memory map.
type EventRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Event
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CurrentParticipants = 0
	event.CreatedAt = time.Now().UTC()
	r.byID[event.ID] = *event
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]domain.Event, 0, len(r.byID))
	for _, e := range r.byID {
		if !matchesFilter(e, filter) {
			continue
		}
		events = append(events, e)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

// matchesFilter applies the listing rules: category matches exactly,
// location and search are case-insensitive substring matches.
func matchesFilter(e domain.Event, f domain.EventFilter) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(e.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) {
			return false
		}
	}
	return true
}

func (r *EventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.Category != nil {
		event.Category = *upd.Category
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.Date != nil {
		event.Date = *upd.Date
	}
	if upd.Price != nil {
		event.Price = *upd.Price
	}
	if upd.MaxParticipants != nil {
		event.MaxParticipants = *upd.MaxParticipants
	}
	if upd.ImageURL != nil {
		event.ImageURL = *upd.ImageURL
	}

	r.byID[id] = event
	return &event, nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if event.CurrentParticipants >= event.MaxParticipants {
		return nil, domain.ErrEventFull
	}
	event.CurrentParticipants++
	r.byID[id] = event
	return &event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// UserEventRepository implements domain.UserEventRepository on an in-memory map.
type UserEventRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.UserEvent
}

func (r *UserEventRepository) Create(ctx context.Context, ue *domain.UserEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.UserID == ue.UserID && existing.EventID == ue.EventID {
			return domain.ErrAlreadyJoined
		}
	}

	if ue.ID == "" {
		ue.ID = uuid.NewString()
	}
	ue.JoinedAt = time.Now().UTC()
	r.byID[ue.ID] = *ue
	return nil
}

func (r *UserEventRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ue := range r.byID {
		if ue.UserID == userID && ue.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserEventRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, ue := range r.byID {
		if ue.UserID == userID {
			count++
		}
	}
	return count, nil
}
