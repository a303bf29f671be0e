package services

import (
	"fmt"

	"tickethub/internal/models"
)

// CartService mutates and renders a user's pending cart
type CartService struct {
	cartRepo  CartRepository
	eventRepo EventRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepository, eventRepo EventRepository) *CartService {
	return &CartService{cartRepo: cartRepo, eventRepo: eventRepo}
}

// AddToCart appends a cart line for an event. The line price is locked to
// the event's current unit price x quantity; checkout will honor this
// snapshot even if the event is re-priced later.
func (s *CartService) AddToCart(userID, eventID, quantity int) (*models.CartLine, error) {
	req := &models.AddToCartRequest{Quantity: quantity}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	line, err := s.cartRepo.Add(userID, event.ID, req.Quantity, event.Price*req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	return line, nil
}

// RemoveFromCart removes a line and returns the updated cart view. Removing
// a non-existent line is a no-op.
func (s *CartService) RemoveFromCart(userID, lineID int) (*models.CartView, error) {
	if err := s.cartRepo.Remove(userID, lineID); err != nil {
		return nil, err
	}

	return s.ViewCart(userID)
}

// ViewCart returns the cart lines joined with live event data plus totals.
// It has no side effects.
func (s *CartService) ViewCart(userID int) (*models.CartView, error) {
	items, err := s.cartRepo.GetItemsByUser(userID)
	if err != nil {
		return nil, err
	}

	return models.NewCartView(items), nil
}
