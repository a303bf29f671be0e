package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tickethub/internal/models"
)

// TicketRepository handles the issued-ticket ledger
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, event_id, user_id, ticket_code, status, quantity, purchase_date`

// Insert inserts a ticket into the ledger, failing with ErrDuplicateCode if
// the ticket code collides
func (r *TicketRepository) Insert(ticket *models.Ticket) (*models.Ticket, error) {
	if err := ticket.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tickets (event_id, user_id, ticket_code, status, quantity, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + ticketColumns

	purchaseDate := ticket.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	inserted := &models.Ticket{}
	err := r.db.QueryRow(
		query,
		ticket.EventID,
		ticket.UserID,
		ticket.TicketCode,
		ticket.Status,
		ticket.Quantity,
		purchaseDate,
	).Scan(scanTicketDest(inserted)...)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to insert ticket: %w", err)
	}

	return inserted, nil
}

// CodeExists reports whether a ticket code is already present in the ledger
func (r *TicketRepository) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM tickets WHERE ticket_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check ticket code: %w", err)
	}

	return exists, nil
}

// GetByCode retrieves a ticket by its code
func (r *TicketRepository) GetByCode(code string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_code = $1`

	ticket := &models.Ticket{}
	err := r.db.QueryRow(query, code).Scan(scanTicketDest(ticket)...)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket by code: %w", err)
	}

	return ticket, nil
}

// FindByUser retrieves a user's tickets ordered by purchase date descending.
// Each call re-runs the query, so the sequence is restartable.
func (r *TicketRepository) FindByUser(userID int) ([]*models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1
		ORDER BY purchase_date DESC, id DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets by user: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// FindByEvent retrieves an event's tickets ordered by purchase date descending
func (r *TicketRepository) FindByEvent(eventID int) ([]*models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE event_id = $1
		ORDER BY purchase_date DESC, id DESC`

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets by event: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// FindByUserWithEvents retrieves a user's tickets joined with event details,
// newest first
func (r *TicketRepository) FindByUserWithEvents(userID int) ([]*models.TicketWithEvent, error) {
	query := `
		SELECT t.id, t.event_id, t.user_id, t.ticket_code, t.status, t.quantity, t.purchase_date,
			e.title, e.location, e.starts_at
		FROM tickets t
		JOIN events e ON t.event_id = e.id
		WHERE t.user_id = $1
		ORDER BY t.purchase_date DESC, t.id DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets with events: %w", err)
	}
	defer rows.Close()

	var tickets []*models.TicketWithEvent
	for rows.Next() {
		ticket := &models.TicketWithEvent{}
		err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.UserID,
			&ticket.TicketCode,
			&ticket.Status,
			&ticket.Quantity,
			&ticket.PurchaseDate,
			&ticket.EventTitle,
			&ticket.EventLocation,
			&ticket.EventStartsAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket with event: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// CountSoldByEvent returns the total ticket quantity issued for an event,
// excluding cancelled tickets
func (r *TicketRepository) CountSoldByEvent(eventID int) (int, error) {
	var sold int
	err := r.db.QueryRow(`
		SELECT COALESCE(SUM(quantity), 0)
		FROM tickets
		WHERE event_id = $1 AND status <> 'cancelled'`, eventID).Scan(&sold)

	if err != nil {
		return 0, fmt.Errorf("failed to count sold tickets: %w", err)
	}

	return sold, nil
}

func scanTicketDest(ticket *models.Ticket) []interface{} {
	return []interface{}{
		&ticket.ID,
		&ticket.EventID,
		&ticket.UserID,
		&ticket.TicketCode,
		&ticket.Status,
		&ticket.Quantity,
		&ticket.PurchaseDate,
	}
}

func scanTickets(rows *sql.Rows) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	for rows.Next() {
		ticket := &models.Ticket{}
		if err := rows.Scan(scanTicketDest(ticket)...); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}
