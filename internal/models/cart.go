package models

import (
	"fmt"
	"time"
)

// CartLine is one pending purchase intent owned by a user. Price is the
// snapshot unit price x quantity taken when the line was added; checkout
// honors it and never re-derives it from the current event price.
type CartLine struct {
	ID       int       `json:"id" db:"id"`
	UserID   int       `json:"user_id" db:"user_id"`
	EventID  int       `json:"event_id" db:"event_id"`
	Quantity int       `json:"quantity" db:"quantity"`
	Price    int       `json:"price" db:"price"`
	AddedAt  time.Time `json:"added_at" db:"added_at"`
}

// CartItem is a cart line joined with live event data for display
type CartItem struct {
	CartLine
	EventTitle    string    `json:"event_title" db:"event_title"`
	EventImageURL string    `json:"event_image_url" db:"event_image_url"`
	EventStartsAt time.Time `json:"event_starts_at" db:"event_starts_at"`
}

// CartView is the rendered cart: items plus totals. TotalItems counts lines,
// not tickets; TotalPrice sums the snapshotted line prices.
type CartView struct {
	Items      []*CartItem `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice int         `json:"total_price"`
}

// AddToCartRequest represents a request to add an event to the cart
type AddToCartRequest struct {
	Quantity int `json:"quantity"`
}

// Validate validates the request. A zero quantity defaults to 1.
func (req *AddToCartRequest) Validate() error {
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	if req.Quantity > 100 {
		return fmt.Errorf("%w: quantity cannot exceed 100 per line", ErrInvalidInput)
	}

	return nil
}

// NewCartView builds a view from items, computing the totals
func NewCartView(items []*CartItem) *CartView {
	view := &CartView{Items: items, TotalItems: len(items)}
	if view.Items == nil {
		view.Items = []*CartItem{}
	}

	for _, item := range items {
		view.TotalPrice += item.Price
	}

	return view
}
