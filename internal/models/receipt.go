package models

import "time"

// Receipt enumerates the outcome of a successful checkout. TicketCodes are in
// cart order.
type Receipt struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	TicketCodes []string  `json:"ticket_codes"`
	TotalAmount int       `json:"total_amount"`
	IssuedAt    time.Time `json:"issued_at"`
}
