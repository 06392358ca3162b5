package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/domain"
	"github.com/adventuresync/server/internal/service"
)

// EventHandler handles event-related HTTP requests.
type EventHandler struct {
	events *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// HandleList returns events matching the optional query filters.
// GET /api/v1/events?category=&location=&search=
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		Category: q.Get("category"),
		Location: q.Get("location"),
		Search:   q.Get("search"),
	}

	events, err := h.events.List(r.Context(), filter)
	if err != nil {
		respondError(w, err, "list events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": toEventDTOs(events)})
}

// HandleGet returns a single event.
// GET /api/v1/events/{id}
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err, "get event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": toEventDTO(event)})
}

type createEventRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Location        string `json:"location" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Price           string `json:"price"`
	MaxParticipants int    `json:"maxParticipants" validate:"required,gt=0"`
	ImageURL        string `json:"imageUrl"`
}

// HandleCreate stores a new event with the caller as organizer. Any
// organizerId in the body is ignored.
// POST /api/v1/events
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createEventRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate event request")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date. Use RFC 3339 format.")
		return
	}

	price := decimal.Zero
	if req.Price != "" {
		price, err = decimal.NewFromString(req.Price)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid price.")
			return
		}
	}

	event, err := h.events.Create(r.Context(), user.ID, service.CreateEventParams{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		Date:            date,
		Price:           price,
		MaxParticipants: req.MaxParticipants,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		respondError(w, err, "create event")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"event": toEventDTO(event)})
}

// HandleJoin registers the caller as a participant.
// POST /api/v1/events/{id}/join
func (h *EventHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	event, err := h.events.Join(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err, "join event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"event": toEventDTO(event)})
}
