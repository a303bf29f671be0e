package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tickethub/internal/models"
	"tickethub/internal/services"
)

// PublicHandler handles unauthenticated catalog browsing
type PublicHandler struct {
	eventService services.EventServiceInterface
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(eventService services.EventServiceInterface) *PublicHandler {
	return &PublicHandler{eventService: eventService}
}

// ListEvents lists events, filtered by the optional q parameter
func (h *PublicHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListEvents(r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}

	if events == nil {
		events = []*models.Event{}
	}

	respondJSON(w, http.StatusOK, events)
}

// EventDetail returns a single event
func (h *PublicHandler) EventDetail(w http.ResponseWriter, r *http.Request) {
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
