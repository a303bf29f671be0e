package services

import (
	"tickethub/internal/models"
)

// EventService handles catalog business logic and organizer checks
type EventService struct {
	eventRepo EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEvent creates an event owned by the organizer
func (s *EventService) CreateEvent(organizer *models.User, req *models.EventCreateRequest) (*models.Event, error) {
	if !organizer.IsOrganizer() {
		return nil, models.ErrUnauthorized
	}

	return s.eventRepo.Create(organizer.ID, req)
}

// GetEvent retrieves an event by id
func (s *EventService) GetEvent(id int) (*models.Event, error) {
	return s.eventRepo.GetByID(id)
}

// ListEvents lists events, optionally filtered by a search query
func (s *EventService) ListEvents(query string) ([]*models.Event, error) {
	return s.eventRepo.List(query)
}

// MyEvents lists the events an organizer owns
func (s *EventService) MyEvents(organizer *models.User) ([]*models.Event, error) {
	if !organizer.IsOrganizer() {
		return nil, models.ErrUnauthorized
	}

	return s.eventRepo.GetByOrganizer(organizer.ID)
}

// UpdateEvent updates an event after verifying ownership
func (s *EventService) UpdateEvent(organizer *models.User, id int, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := s.checkOwnership(organizer, id); err != nil {
		return nil, err
	}

	return s.eventRepo.Update(id, req)
}

// DeleteEvent deletes an event after verifying ownership
func (s *EventService) DeleteEvent(organizer *models.User, id int) error {
	if err := s.checkOwnership(organizer, id); err != nil {
		return err
	}

	return s.eventRepo.Delete(id)
}

// Dashboard returns the organizer's per-event sales roll-up
func (s *EventService) Dashboard(organizer *models.User) ([]*models.EventSales, error) {
	if !organizer.IsOrganizer() {
		return nil, models.ErrUnauthorized
	}

	return s.eventRepo.GetSalesSummary(organizer.ID)
}

func (s *EventService) checkOwnership(organizer *models.User, eventID int) error {
	if !organizer.IsOrganizer() {
		return models.ErrUnauthorized
	}

	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}

	if event.OrganizerID != organizer.ID {
		return models.ErrUnauthorized
	}

	return nil
}
