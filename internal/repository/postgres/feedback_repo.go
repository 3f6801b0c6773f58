package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/domain"
)

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{DB: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO event_feedback (event_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING feedback_id
	`
	err := r.DB.QueryRowContext(ctx, query, fb.EventID, fb.UserID, fb.Rating, fb.Comment, fb.CreatedAt).Scan(&fb.FeedbackID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Feedback, error) {
	query := `
		SELECT feedback_id, event_id, user_id, rating, comment, created_at
		FROM event_feedback
		WHERE event_id = $1 AND user_id = $2
	`
	fb := &domain.Feedback{}
	var commentNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&fb.FeedbackID, &fb.EventID, &fb.UserID, &fb.Rating, &commentNull, &fb.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	if commentNull.Valid {
		fb.Comment = commentNull.String
	}
	return fb, nil
}

func (r *feedbackRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Feedback, error) {
	query := `
		SELECT feedback_id, event_id, user_id, rating, comment, created_at
		FROM event_feedback
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	fbs := make([]*domain.Feedback, 0)
	for rows.Next() {
		fb := &domain.Feedback{}
		var commentNull sql.NullString
		if err := rows.Scan(&fb.FeedbackID, &fb.EventID, &fb.UserID, &fb.Rating, &commentNull, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if commentNull.Valid {
			fb.Comment = commentNull.String
		}
		fbs = append(fbs, fb)
	}
	return fbs, rows.Err()
}
