package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

// eventDateFormat is the wire format for event dates.
const eventDateFormat = "2006-01-02"

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

// Create validates and persists a new event. Title, date, and location are
// required; description is optional. Multiple events may share a title.
func (s *eventService) Create(ctx context.Context, title, date, location, description string) (*domain.Event, error) {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	date = strings.TrimSpace(date)
	if title == "" || date == "" || location == "" {
		return nil, domain.ErrInvalidInput
	}
	parsedDate, err := time.Parse(eventDateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	event := &domain.Event{
		Title:       title,
		Description: strings.TrimSpace(description),
		Date:        parsedDate,
		Location:    location,
		CreatedAt:   time.Now(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
