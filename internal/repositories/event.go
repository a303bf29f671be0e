package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tickethub/internal/models"
)

// EventRepository handles event catalog data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, organizer_id, title, description, location, category, image_url,
	price, capacity, available_tickets, starts_at, created_at, updated_at`

// Create creates a new event. The initial capacity equals the requested
// available ticket count.
func (r *EventRepository) Create(organizerID int, req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO events (organizer_id, title, description, location, category, image_url,
			price, capacity, available_tickets, starts_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + eventColumns

	now := time.Now()
	event := &models.Event{}

	err := r.db.QueryRow(
		query,
		organizerID,
		req.Title,
		req.Description,
		req.Location,
		req.Category,
		req.ImageURL,
		req.Price,
		req.AvailableTickets,
		req.AvailableTickets,
		req.StartsAt,
		now,
		now,
	).Scan(scanEventDest(event)...)

	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event := &models.Event{}
	err := r.db.QueryRow(query, id).Scan(scanEventDest(event)...)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// List retrieves events ordered by start date. When query is non-empty it is
// matched case-insensitively against title, category, location and
// description.
func (r *EventRepository) List(query string) ([]*models.Event, error) {
	var rows *sql.Rows
	var err error

	if query != "" {
		pattern := "%" + query + "%"
		rows, err = r.db.Query(`
			SELECT `+eventColumns+`
			FROM events
			WHERE title ILIKE $1 OR category ILIKE $1 OR location ILIKE $1 OR description ILIKE $1
			ORDER BY starts_at ASC`, pattern)
	} else {
		rows, err = r.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY starts_at ASC`)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByOrganizer retrieves all events owned by an organizer
func (r *EventRepository) GetByOrganizer(organizerID int) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY starts_at ASC`

	rows, err := r.db.Query(query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events by organizer: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Update updates an event's editable fields. Capacity and availability are
// only changed by the checkout engine.
func (r *EventRepository) Update(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, location = $4, category = $5, image_url = $6,
			price = $7, starts_at = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + eventColumns

	event := &models.Event{}
	err := r.db.QueryRow(
		query,
		id,
		req.Title,
		req.Description,
		req.Location,
		req.Category,
		req.ImageURL,
		req.Price,
		req.StartsAt,
		time.Now(),
	).Scan(scanEventDest(event)...)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// Delete deletes an event
func (r *EventRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

// DecrementAvailability atomically decrements the availability counter,
// failing with ErrInsufficientInventory rather than letting it go negative.
// The single conditional UPDATE is the concurrency-critical primitive the
// checkout engine relies on.
func (r *EventRepository) DecrementAvailability(eventID, amount int) error {
	return decrementAvailability(r.db, eventID, amount)
}

// IncrementAvailability restores availability, the compensating action for a
// decrement. The counter is capped at the event capacity.
func (r *EventRepository) IncrementAvailability(eventID, amount int) error {
	query := `
		UPDATE events
		SET available_tickets = LEAST(available_tickets + $2, capacity), updated_at = $3
		WHERE id = $1`

	result, err := r.db.Exec(query, eventID, amount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

// GetSalesSummary retrieves the per-event sales roll-up for an organizer's
// dashboard
func (r *EventRepository) GetSalesSummary(organizerID int) ([]*models.EventSales, error) {
	query := `
		SELECT ` + prefixedEventColumns("e") + `,
			COALESCE(SUM(t.quantity), 0) AS tickets_sold,
			COALESCE(SUM(t.quantity * e.price), 0) AS revenue
		FROM events e
		LEFT JOIN tickets t ON t.event_id = e.id AND t.status <> 'cancelled'
		WHERE e.organizer_id = $1
		GROUP BY e.id
		ORDER BY e.starts_at ASC`

	rows, err := r.db.Query(query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}
	defer rows.Close()

	var summary []*models.EventSales
	for rows.Next() {
		sales := &models.EventSales{Event: &models.Event{}}
		dest := append(scanEventDest(sales.Event), &sales.TicketsSold, &sales.Revenue)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan sales summary: %w", err)
		}
		summary = append(summary, sales)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales summary: %w", err)
	}

	return summary, nil
}

// execer covers *sql.DB and *sql.Tx so the checkout transaction can reuse the
// same decrement statement
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func decrementAvailability(e execer, eventID, amount int) error {
	query := `
		UPDATE events
		SET available_tickets = available_tickets - $2, updated_at = $3
		WHERE id = $1 AND available_tickets >= $2`

	result, err := e.Exec(query, eventID, amount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to decrement availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrInsufficientInventory
	}

	return nil
}

func prefixedEventColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.organizer_id, %[1]s.title, %[1]s.description, %[1]s.location,
		%[1]s.category, %[1]s.image_url, %[1]s.price, %[1]s.capacity, %[1]s.available_tickets,
		%[1]s.starts_at, %[1]s.created_at, %[1]s.updated_at`, alias)
}

func scanEventDest(event *models.Event) []interface{} {
	return []interface{}{
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Category,
		&event.ImageURL,
		&event.Price,
		&event.Capacity,
		&event.AvailableTickets,
		&event.StartsAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	}
}

func scanEvents(rows *sql.Rows) ([]*models.Event, error) {
	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		if err := rows.Scan(scanEventDest(event)...); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
