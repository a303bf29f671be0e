package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// TicketStatus represents the status of an issued ticket
type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

// Ticket represents one issued ticket. The ticket code is globally unique,
// immutable once issued, and is the only identifier presented externally.
type Ticket struct {
	ID           int          `json:"id" db:"id"`
	EventID      int          `json:"event_id" db:"event_id"`
	UserID       int          `json:"user_id" db:"user_id"`
	TicketCode   string       `json:"ticket_code" db:"ticket_code"`
	Status       TicketStatus `json:"status" db:"status"`
	Quantity     int          `json:"quantity" db:"quantity"`
	PurchaseDate time.Time    `json:"purchase_date" db:"purchase_date"`
}

// TicketWithEvent is a ticket joined with its event for display
type TicketWithEvent struct {
	Ticket
	EventTitle    string    `json:"event_title" db:"event_title"`
	EventLocation string    `json:"event_location" db:"event_location"`
	EventStartsAt time.Time `json:"event_starts_at" db:"event_starts_at"`
}

// CodeGenerator produces candidate ticket codes. The checkout engine checks
// each candidate against the ledger and retries a bounded number of times.
type CodeGenerator func() (string, error)

// GenerateTicketCode generates a candidate ticket code with a millisecond
// timestamp component and a random suffix
func GenerateTicketCode() (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate code suffix: %w", err)
	}

	return fmt.Sprintf("TKT-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix)), nil
}

// Validate validates the ticket data
func (t *Ticket) Validate() error {
	if t.TicketCode == "" {
		return fmt.Errorf("%w: ticket code is required", ErrInvalidInput)
	}

	if t.Quantity < 1 {
		return fmt.Errorf("%w: ticket quantity must be at least 1", ErrInvalidInput)
	}

	return t.validateStatus()
}

func (t *Ticket) validateStatus() error {
	switch t.Status {
	case TicketActive, TicketUsed, TicketCancelled:
		return nil
	default:
		return fmt.Errorf("%w: invalid ticket status", ErrInvalidInput)
	}
}

// IsActive returns true if the ticket has not been used or cancelled
func (t *Ticket) IsActive() bool {
	return t.Status == TicketActive
}
