package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tickethub/internal/middleware"
	"tickethub/internal/models"
	"tickethub/internal/services"
)

// OrganizerHandler handles event management and the sales dashboard
type OrganizerHandler struct {
	eventService  services.EventServiceInterface
	ticketService services.TicketServiceInterface
}

// NewOrganizerHandler creates a new organizer handler
func NewOrganizerHandler(eventService services.EventServiceInterface, ticketService services.TicketServiceInterface) *OrganizerHandler {
	return &OrganizerHandler{eventService: eventService, ticketService: ticketService}
}

// Dashboard returns the organizer's per-event sales roll-up
func (h *OrganizerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	summary, err := h.eventService.Dashboard(user)
	if err != nil {
		respondError(w, err)
		return
	}

	if summary == nil {
		summary = []*models.EventSales{}
	}

	respondJSON(w, http.StatusOK, summary)
}

// ListMyEvents returns the organizer's own events
func (h *OrganizerHandler) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	events, err := h.eventService.MyEvents(user)
	if err != nil {
		respondError(w, err)
		return
	}

	if events == nil {
		events = []*models.Event{}
	}

	respondJSON(w, http.StatusOK, events)
}

// CreateEvent creates a new event owned by the organizer
func (h *OrganizerHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	event, err := h.eventService.CreateEvent(user, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// GetEvent returns one of the organizer's events
func (h *OrganizerHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.ErrInvalidInput)
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// UpdateEvent updates an event the organizer owns
func (h *OrganizerHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.ErrInvalidInput)
		return
	}

	var req models.EventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	event, err := h.eventService.UpdateEvent(user, id, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// EventTickets returns the tickets issued for an event the organizer owns
func (h *OrganizerHandler) EventTickets(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.ErrInvalidInput)
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		respondError(w, err)
		return
	}

	if event.OrganizerID != user.ID {
		respondError(w, models.ErrUnauthorized)
		return
	}

	tickets, err := h.ticketService.EventTickets(id)
	if err != nil {
		respondError(w, err)
		return
	}

	if tickets == nil {
		tickets = []*models.Ticket{}
	}

	respondJSON(w, http.StatusOK, tickets)
}

// DeleteEvent deletes an event the organizer owns
func (h *OrganizerHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.ErrInvalidInput)
		return
	}

	if err := h.eventService.DeleteEvent(user, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
