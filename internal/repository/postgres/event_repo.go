package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING event_id
	`
	err := r.DB.QueryRowContext(ctx, query, e.Title, e.Description, e.Date, e.Location, e.CreatedAt).Scan(&e.EventID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT event_id, title, description, date, location, created_at
		FROM events
		WHERE event_id = $1
	`
	e := &domain.Event{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.EventID, &e.Title, &descNull, &e.Date, &e.Location, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if descNull.Valid {
		e.Description = descNull.String
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT event_id, title, description, date, location, created_at
		FROM events
		ORDER BY date, event_id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var descNull sql.NullString
		if err := rows.Scan(&e.EventID, &e.Title, &descNull, &e.Date, &e.Location, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if descNull.Valid {
			e.Description = descNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
