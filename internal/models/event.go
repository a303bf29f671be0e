package models

import (
	"fmt"
	"strings"
	"time"
)

// Event represents an event listed in the catalog. Price is in cents.
// AvailableTickets counts down from Capacity as checkouts complete and never
// goes negative.
type Event struct {
	ID               int       `json:"id" db:"id"`
	OrganizerID      int       `json:"organizer_id" db:"organizer_id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Location         string    `json:"location" db:"location"`
	Category         string    `json:"category" db:"category"`
	ImageURL         string    `json:"image_url" db:"image_url"`
	Price            int       `json:"price" db:"price"`
	Capacity         int       `json:"capacity" db:"capacity"`
	AvailableTickets int       `json:"available_tickets" db:"available_tickets"`
	StartsAt         time.Time `json:"starts_at" db:"starts_at"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	Category         string    `json:"category"`
	ImageURL         string    `json:"image_url"`
	Price            int       `json:"price"`
	AvailableTickets int       `json:"available_tickets"`
	StartsAt         time.Time `json:"starts_at"`
}

// EventUpdateRequest represents the fields an organizer may change
type EventUpdateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Price       int       `json:"price"`
	StartsAt    time.Time `json:"starts_at"`
}

// EventSales is the per-event roll-up shown on the organizer dashboard
type EventSales struct {
	Event       *Event `json:"event"`
	TicketsSold int    `json:"tickets_sold"`
	Revenue     int    `json:"revenue"`
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if err := validateEventTitle(req.Title); err != nil {
		return err
	}

	if err := validateEventPrice(req.Price); err != nil {
		return err
	}

	if req.AvailableTickets <= 0 {
		return fmt.Errorf("%w: available tickets must be greater than 0", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}

	return nil
}

// Validate validates event update data
func (req *EventUpdateRequest) Validate() error {
	if err := validateEventTitle(req.Title); err != nil {
		return err
	}

	return validateEventPrice(req.Price)
}

func validateEventTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}

	if len(title) > 200 {
		return fmt.Errorf("%w: event title must be less than 200 characters", ErrInvalidInput)
	}

	return nil
}

func validateEventPrice(price int) error {
	if price < 0 {
		return fmt.Errorf("%w: event price cannot be negative", ErrInvalidInput)
	}

	return nil
}

// IsSoldOut returns true if no tickets remain
func (e *Event) IsSoldOut() bool {
	return e.AvailableTickets <= 0
}

// PriceInCurrency returns the price in the main currency unit
func (e *Event) PriceInCurrency() float64 {
	return float64(e.Price) / 100.0
}
