package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/domain"
	"github.com/adventuresync/server/internal/repository/memstore"
	"github.com/adventuresync/server/internal/service"
)

func newTestEventService(t *testing.T) (*service.EventService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return service.NewEventService(store.Events(), store.UserEvents()), store
}

func validEventParams() service.CreateEventParams {
	return service.CreateEventParams{
		Title:           "Trail Run",
		Description:     "A scenic 10k trail run",
		Category:        "running",
		Location:        "Boulder, CO",
		Date:            time.Now().UTC().Add(48 * time.Hour),
		Price:           decimal.NewFromInt(5),
		MaxParticipants: 5,
	}
}

func TestEventService_Create(t *testing.T) {
	events, _ := newTestEventService(t)

	event, err := events.Create(context.Background(), "organizer-1", validEventParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.ID == "" {
		t.Fatal("expected event ID to be set")
	}
	if event.OrganizerID != "organizer-1" {
		t.Fatalf("expected organizer organizer-1, got %s", event.OrganizerID)
	}
	if event.CurrentParticipants != 0 {
		t.Fatalf("expected zero participants on a new event, got %d", event.CurrentParticipants)
	}
}

func TestEventService_Create_Invalid(t *testing.T) {
	events, _ := newTestEventService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*service.CreateEventParams)
	}{
		{"empty title", func(p *service.CreateEventParams) { p.Title = "" }},
		{"empty category", func(p *service.CreateEventParams) { p.Category = "" }},
		{"zero date", func(p *service.CreateEventParams) { p.Date = time.Time{} }},
		{"negative price", func(p *service.CreateEventParams) { p.Price = decimal.NewFromInt(-1) }},
		{"zero capacity", func(p *service.CreateEventParams) { p.MaxParticipants = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := validEventParams()
			tc.mutate(&params)
			if _, err := events.Create(ctx, "org", params); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEventService_List_Filters(t *testing.T) {
	events, _ := newTestEventService(t)
	ctx := context.Background()

	seed := []service.CreateEventParams{
		{Title: "Mountain Biking", Description: "Singletrack ride", Category: "cycling", Location: "Boulder, CO", Date: time.Now().Add(24 * time.Hour), MaxParticipants: 10},
		{Title: "Lake Kayaking", Description: "Paddle the lake", Category: "water sports", Location: "Lake Tahoe, CA", Date: time.Now().Add(48 * time.Hour), MaxParticipants: 10},
		{Title: "Sunrise Hike", Description: "Hike with photography stops", Category: "hiking", Location: "Denver, CO", Date: time.Now().Add(72 * time.Hour), MaxParticipants: 10},
	}
	for _, p := range seed {
		if _, err := events.Create(ctx, "org", p); err != nil {
			t.Fatalf("Create %s: %v", p.Title, err)
		}
	}

	tests := []struct {
		name   string
		filter domain.EventFilter
		want   []string
	}{
		{"no filter sorted by date", domain.EventFilter{}, []string{"Mountain Biking", "Lake Kayaking", "Sunrise Hike"}},
		{"category exact", domain.EventFilter{Category: "cycling"}, []string{"Mountain Biking"}},
		{"category partial does not match", domain.EventFilter{Category: "cycl"}, nil},
		{"location substring case-insensitive", domain.EventFilter{Location: "co"}, []string{"Mountain Biking", "Sunrise Hike"}},
		{"search matches title", domain.EventFilter{Search: "kayak"}, []string{"Lake Kayaking"}},
		{"search matches description", domain.EventFilter{Search: "photography"}, []string{"Sunrise Hike"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := events.List(ctx, tc.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d events, got %d", len(tc.want), len(got))
			}
			for i, title := range tc.want {
				if got[i].Title != title {
					t.Fatalf("position %d: expected %s, got %s", i, title, got[i].Title)
				}
			}
		})
	}
}

func TestEventService_Join(t *testing.T) {
	events, _ := newTestEventService(t)
	ctx := context.Background()

	event, err := events.Create(ctx, "org", validEventParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	joined, err := events.Join(ctx, "user-1", event.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if joined.CurrentParticipants != 1 {
		t.Fatalf("expected 1 participant, got %d", joined.CurrentParticipants)
	}
}

func TestEventService_Join_Duplicate(t *testing.T) {
	events, _ := newTestEventService(t)
	ctx := context.Background()

	event, err := events.Create(ctx, "org", validEventParams())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := events.Join(ctx, "user-1", event.ID); err != nil {
		t.Fatalf("first Join: %v", err)
	}
	if _, err := events.Join(ctx, "user-1", event.ID); !errors.Is(err, domain.ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}

	// The duplicate attempt must not consume a slot.
	got, err := events.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CurrentParticipants != 1 {
		t.Fatalf("expected 1 participant after duplicate join, got %d", got.CurrentParticipants)
	}
}

func TestEventService_Join_Full(t *testing.T) {
	events, _ := newTestEventService(t)
	ctx := context.Background()

	params := validEventParams()
	params.MaxParticipants = 2
	event, err := events.Create(ctx, "org", params)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := events.Join(ctx, fmt.Sprintf("user-%d", i), event.ID); err != nil {
			t.Fatalf("Join %d: %v", i, err)
		}
	}
	if _, err := events.Join(ctx, "user-late", event.ID); !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
}

func TestEventService_Get_NotFound(t *testing.T) {
	events, _ := newTestEventService(t)

	if _, err := events.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
