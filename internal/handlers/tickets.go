package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tickethub/internal/middleware"
	"tickethub/internal/models"
	"tickethub/internal/services"
)

// TicketHandler handles issued-ticket views and the placeholder scan
// endpoint
type TicketHandler struct {
	ticketService services.TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService services.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// MyTickets returns the user's tickets with QR code data URLs
func (h *TicketHandler) MyTickets(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	tickets, err := h.ticketService.MyTickets(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if tickets == nil {
		tickets = []*services.TicketWithQR{}
	}

	respondJSON(w, http.StatusOK, tickets)
}

// History returns the user's tickets newest first
func (h *TicketHandler) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	tickets, err := h.ticketService.History(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if tickets == nil {
		tickets = []*models.Ticket{}
	}

	respondJSON(w, http.StatusOK, tickets)
}

// Scan looks up a ticket by code. Placeholder for the QR delivery webhook;
// it reports the ticket status without redeeming it.
func (h *TicketHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.ticketService.Scan(chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}
