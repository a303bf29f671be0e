package repositories

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tickethub/internal/database"
	"tickethub/internal/models"
)

// testDB opens the database named by TEST_DATABASE_URL, runs migrations and
// truncates all tables. Tests are skipped when the variable is unset.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	db, err := database.NewConnection(database.Config{URL: url})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())

	_, err = db.Exec(`TRUNCATE users, events, cart_items, tickets, purchased_tickets RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db.DB
}

func createTestUser(t *testing.T, db *sql.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user, err := NewUserRepository(db).Create(email, "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g", role)
	require.NoError(t, err)
	return user
}

func createTestEvent(t *testing.T, db *sql.DB, organizerID, price, tickets int) *models.Event {
	t.Helper()

	event, err := NewEventRepository(db).Create(organizerID, &models.EventCreateRequest{
		Title:            "Test Event",
		Description:      "A test event",
		Location:         "Test Hall",
		Category:         "test",
		Price:            price,
		AvailableTickets: tickets,
		StartsAt:         time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return event
}
