package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tickethub/internal/middleware"
	"tickethub/internal/models"
	"tickethub/internal/services"
)

// CartHandler handles cart and checkout requests
type CartHandler struct {
	cartService     services.CartServiceInterface
	checkoutService services.CheckoutServiceInterface
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService services.CartServiceInterface, checkoutService services.CheckoutServiceInterface) *CartHandler {
	return &CartHandler{cartService: cartService, checkoutService: checkoutService}
}

// AddToCart adds an event to the authenticated user's cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, models.ErrInvalidInput)
		return
	}

	var req models.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	line, err := h.cartService.AddToCart(user.ID, eventID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, line)
}

// ViewCart renders the authenticated user's cart with totals
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	view, err := h.cartService.ViewCart(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// RemoveFromCart removes a cart line and returns the updated cart. Removing
// a line that is already gone succeeds.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	lineID, err := strconv.Atoi(chi.URLParam(r, "lineID"))
	if err != nil {
		respondError(w, models.ErrInvalidInput)
		return
	}

	view, err := h.cartService.RemoveFromCart(user.ID, lineID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// Checkout converts the cart into tickets and returns the receipt
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	receipt, err := h.checkoutService.Checkout(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, receipt)
}
