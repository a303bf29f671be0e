package repositories

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"tickethub/internal/models"
)

// CheckoutRepository converts a user's cart into ledger entries inside a
// single transaction
type CheckoutRepository struct {
	db *sql.DB
}

// NewCheckoutRepository creates a new checkout repository
func NewCheckoutRepository(db *sql.DB) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

// codeAttempts bounds suffix regeneration on ticket-code collision
const codeAttempts = 5

// CheckoutResult is the durable outcome of a committed checkout
type CheckoutResult struct {
	Tickets     []*models.Ticket
	TotalAmount int
}

// Checkout atomically converts the user's cart into tickets: it re-reads the
// cart and every event, verifies availability for all lines before writing
// anything, issues one ticket per line in cart order, decrements the
// availability counters, appends the purchased-ticket references and clears
// the cart. Any failure rolls the whole transaction back, so no partial
// tickets ever become visible.
func (r *CheckoutRepository) Checkout(userID int, gen models.CodeGenerator) (*CheckoutResult, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lines, err := checkoutLines(tx, userID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	// Pre-validate every line so a sold-out event aborts the checkout before
	// any ticket is issued.
	for _, line := range lines {
		var available int
		err := tx.QueryRow(`SELECT available_tickets FROM events WHERE id = $1`, line.EventID).Scan(&available)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, models.ErrEventNotFound
			}
			return nil, fmt.Errorf("failed to read event availability: %w", err)
		}

		if available < line.Quantity {
			return nil, models.ErrInsufficientInventory
		}
	}

	now := time.Now()
	result := &CheckoutResult{}

	for _, line := range lines {
		code, err := uniqueTicketCode(tx, gen)
		if err != nil {
			return nil, err
		}

		ticket := &models.Ticket{
			EventID:      line.EventID,
			UserID:       userID,
			TicketCode:   code,
			Status:       models.TicketActive,
			Quantity:     line.Quantity,
			PurchaseDate: now,
		}

		err = tx.QueryRow(`
			INSERT INTO tickets (event_id, user_id, ticket_code, status, quantity, purchase_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			ticket.EventID, ticket.UserID, ticket.TicketCode, ticket.Status, ticket.Quantity, ticket.PurchaseDate,
		).Scan(&ticket.ID)

		if err != nil {
			if isUniqueViolation(err) {
				return nil, models.ErrDuplicateCode
			}
			return nil, fmt.Errorf("failed to insert ticket: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO purchased_tickets (user_id, ticket_id) VALUES ($1, $2)`,
			userID, ticket.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to record purchased ticket: %w", err)
		}

		result.Tickets = append(result.Tickets, ticket)
		result.TotalAmount += line.Price
	}

	// Decrement in ascending event id order so concurrent multi-event carts
	// take row locks in a stable order.
	decrements := make([]*models.CartLine, len(lines))
	copy(decrements, lines)
	sort.Slice(decrements, func(i, j int) bool { return decrements[i].EventID < decrements[j].EventID })

	for _, line := range decrements {
		if err := decrementAvailability(tx, line.EventID, line.Quantity); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return result, nil
}

// checkoutLines reads and locks the user's cart lines in add order
func checkoutLines(tx *sql.Tx, userID int) ([]*models.CartLine, error) {
	rows, err := tx.Query(`
		SELECT id, user_id, event_id, quantity, price, added_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at ASC, id ASC
		FOR UPDATE`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	defer rows.Close()

	var lines []*models.CartLine
	for rows.Next() {
		line := &models.CartLine{}
		err := rows.Scan(&line.ID, &line.UserID, &line.EventID, &line.Quantity, &line.Price, &line.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// uniqueTicketCode draws candidate codes from gen until one is absent from
// the ledger, retrying up to codeAttempts times
func uniqueTicketCode(tx *sql.Tx, gen models.CodeGenerator) (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := gen()
		if err != nil {
			return "", fmt.Errorf("failed to generate ticket code: %w", err)
		}

		var exists bool
		err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM tickets WHERE ticket_code = $1)`, code).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("failed to check ticket code uniqueness: %w", err)
		}

		if !exists {
			return code, nil
		}
	}

	return "", models.ErrCodeGenerationExhausted
}
