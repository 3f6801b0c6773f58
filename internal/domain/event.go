package domain

import (
	"context"
	"time"
)

// Event represents a campus event. Events are created by admins and are never
// updated or deleted afterwards.
// swagger:model Event
type Event struct {
	EventID     int64     `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
}

// EventService defines the business logic for the event catalog.
type EventService interface {
	Create(ctx context.Context, title, date, location, description string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
}
