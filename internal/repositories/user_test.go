package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickethub/internal/models"
)

func TestUserRepository_Create(t *testing.T) {
	db := testDB(t)

	user := createTestUser(t, db, "alice@example.com", models.RoleAttendee)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleAttendee, user.Role)

	got, err := NewUserRepository(db).GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := testDB(t)

	createTestUser(t, db, "alice@example.com", models.RoleAttendee)

	_, err := NewUserRepository(db).Create("alice@example.com", "hash", models.RoleAttendee)
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := NewUserRepository(db).GetByID(999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := testDB(t)

	user := createTestUser(t, db, "alice@example.com", models.RoleAttendee)

	users := NewUserRepository(db)
	require.NoError(t, users.UpdatePassword(user.ID, "newhash"))

	got, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)
}

func TestUserRepository_GetPurchasedTickets(t *testing.T) {
	db := testDB(t)

	organizer := createTestUser(t, db, "org@example.com", models.RoleOrganizer)
	buyer := createTestUser(t, db, "buyer@example.com", models.RoleAttendee)
	event := createTestEvent(t, db, organizer.ID, 200, 5)

	carts := NewCartRepository(db)
	_, err := carts.Add(buyer.ID, event.ID, 1, 200)
	require.NoError(t, err)

	result, err := NewCheckoutRepository(db).Checkout(buyer.ID, models.GenerateTicketCode)
	require.NoError(t, err)

	purchased, err := NewUserRepository(db).GetPurchasedTickets(buyer.ID)
	require.NoError(t, err)
	require.Len(t, purchased, 1)
	assert.Equal(t, result.Tickets[0].TicketCode, purchased[0].TicketCode)
}
