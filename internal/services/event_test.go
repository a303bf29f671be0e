package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickethub/internal/models"
)

func organizerUser(id int) *models.User {
	return &models.User{ID: id, Email: "org@example.com", Role: models.RoleOrganizer}
}

func attendeeUser(id int) *models.User {
	return &models.User{ID: id, Email: "att@example.com", Role: models.RoleAttendee}
}

func validCreateRequest() *models.EventCreateRequest {
	return &models.EventCreateRequest{
		Title:            "Summer Festival",
		Description:      "Open air music",
		Location:         "Riverside Park",
		Category:         "music",
		Price:            2500,
		AvailableTickets: 100,
		StartsAt:         time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	repo := newMemEventRepo()
	service := NewEventService(repo)

	event, err := service.CreateEvent(organizerUser(1), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, event.OrganizerID)
	assert.Equal(t, 100, event.Capacity, "capacity starts at the initial availability")
	assert.Equal(t, 100, event.AvailableTickets)
	assert.False(t, event.IsSoldOut())
}

func TestEventService_CreateEvent_AttendeeForbidden(t *testing.T) {
	service := NewEventService(newMemEventRepo())

	_, err := service.CreateEvent(attendeeUser(1), validCreateRequest())
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestEventService_CreateEvent_InvalidInput(t *testing.T) {
	service := NewEventService(newMemEventRepo())

	req := validCreateRequest()
	req.AvailableTickets = 0

	_, err := service.CreateEvent(organizerUser(1), req)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEventService_UpdateEvent_OwnershipEnforced(t *testing.T) {
	repo := newMemEventRepo()
	service := NewEventService(repo)

	owner := organizerUser(1)
	event, err := service.CreateEvent(owner, validCreateRequest())
	require.NoError(t, err)

	update := &models.EventUpdateRequest{Title: "Renamed Festival", Price: 3000}

	// Another organizer cannot touch it
	_, err = service.UpdateEvent(organizerUser(2), event.ID, update)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	updated, err := service.UpdateEvent(owner, event.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Festival", updated.Title)
	assert.Equal(t, 3000, updated.Price)
}

func TestEventService_UpdateEvent_NotFound(t *testing.T) {
	service := NewEventService(newMemEventRepo())

	_, err := service.UpdateEvent(organizerUser(1), 999, &models.EventUpdateRequest{Title: "X", Price: 100})
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestEventService_DeleteEvent_OwnershipEnforced(t *testing.T) {
	repo := newMemEventRepo()
	service := NewEventService(repo)

	owner := organizerUser(1)
	event, err := service.CreateEvent(owner, validCreateRequest())
	require.NoError(t, err)

	err = service.DeleteEvent(organizerUser(2), event.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	err = service.DeleteEvent(attendeeUser(3), event.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	require.NoError(t, service.DeleteEvent(owner, event.ID))

	_, err = service.GetEvent(event.ID)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestEventService_MyEvents(t *testing.T) {
	repo := newMemEventRepo()
	service := NewEventService(repo)

	owner := organizerUser(1)
	_, err := service.CreateEvent(owner, validCreateRequest())
	require.NoError(t, err)

	other := validCreateRequest()
	other.Title = "Someone Else's Gig"
	_, err = service.CreateEvent(organizerUser(2), other)
	require.NoError(t, err)

	events, err := service.MyEvents(owner)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].OrganizerID)

	_, err = service.MyEvents(attendeeUser(3))
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestEventService_Dashboard(t *testing.T) {
	repo := newMemEventRepo()
	service := NewEventService(repo)

	owner := organizerUser(1)
	event, err := service.CreateEvent(owner, validCreateRequest())
	require.NoError(t, err)

	// Simulate 40 tickets sold
	require.NoError(t, repo.DecrementAvailability(event.ID, 40))

	summary, err := service.Dashboard(owner)
	require.NoError(t, err)
	require.Len(t, summary, 1)

	assert.Equal(t, 40, summary[0].TicketsSold)
	assert.Equal(t, 40*2500, summary[0].Revenue)
}

func TestEventService_Dashboard_AttendeeForbidden(t *testing.T) {
	service := NewEventService(newMemEventRepo())

	_, err := service.Dashboard(attendeeUser(1))
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
