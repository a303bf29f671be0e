package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tickethub/internal/models"
)

// CartRepository handles cart line data operations
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Add appends a cart line. The price is the caller-computed snapshot of
// unit price x quantity at add time. At most one line may exist per
// (user, event) pair.
func (r *CartRepository) Add(userID, eventID, quantity, price int) (*models.CartLine, error) {
	query := `
		INSERT INTO cart_items (user_id, event_id, quantity, price, added_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, event_id, quantity, price, added_at`

	line := &models.CartLine{}
	err := r.db.QueryRow(query, userID, eventID, quantity, price, time.Now()).Scan(
		&line.ID,
		&line.UserID,
		&line.EventID,
		&line.Quantity,
		&line.Price,
		&line.AddedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateItem
		}
		return nil, fmt.Errorf("failed to add cart line: %w", err)
	}

	return line, nil
}

// Remove deletes a cart line. Removing a line that does not exist (or belongs
// to another user) is a no-op, not an error.
func (r *CartRepository) Remove(userID, lineID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	return nil
}

// GetByUser retrieves the user's cart lines in the order they were added
func (r *CartRepository) GetByUser(userID int) ([]*models.CartLine, error) {
	query := `
		SELECT id, user_id, event_id, quantity, price, added_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at ASC, id ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.CartLine
	for rows.Next() {
		line := &models.CartLine{}
		err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.EventID,
			&line.Quantity,
			&line.Price,
			&line.AddedAt,
		)
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

// GetItemsByUser retrieves the user's cart lines joined with live event data
// for display
func (r *CartRepository) GetItemsByUser(userID int) ([]*models.CartItem, error) {
	query := `
		SELECT c.id, c.user_id, c.event_id, c.quantity, c.price, c.added_at,
			e.title, e.image_url, e.starts_at
		FROM cart_items c
		JOIN events e ON c.event_id = e.id
		WHERE c.user_id = $1
		ORDER BY c.added_at ASC, c.id ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		item := &models.CartItem{}
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.EventID,
			&item.Quantity,
			&item.Price,
			&item.AddedAt,
			&item.EventTitle,
			&item.EventImageURL,
			&item.EventStartsAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Clear deletes all of the user's cart lines
func (r *CartRepository) Clear(userID int) error {
	if _, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
