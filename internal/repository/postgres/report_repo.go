package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"campusevents/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{DB: db}
}

// EventPopularity counts registrations per event. LEFT JOIN so events with
// zero registrations still report a row with count 0.
func (r *reportRepository) EventPopularity(ctx context.Context) ([]*domain.PopularityRow, error) {
	query := `
		SELECT e.title, COUNT(r.registration_id) AS registration_count
		FROM events e
		LEFT JOIN event_registrations r ON e.event_id = r.event_id
		GROUP BY e.event_id, e.title
		ORDER BY registration_count DESC, e.title
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("event popularity: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.PopularityRow, 0)
	for rows.Next() {
		row := &domain.PopularityRow{}
		if err := rows.Scan(&row.Title, &row.RegistrationCount); err != nil {
			return nil, fmt.Errorf("scan popularity row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// StudentParticipation counts attendance per student. Admins are excluded.
func (r *reportRepository) StudentParticipation(ctx context.Context) ([]*domain.ParticipationRow, error) {
	query := `
		SELECT u.username, COUNT(a.attendance_id) AS attendance_count
		FROM users u
		LEFT JOIN event_attendance a ON u.user_id = a.user_id
		WHERE u.role = 'student'
		GROUP BY u.user_id, u.username
		ORDER BY attendance_count DESC, u.username
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("student participation: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.ParticipationRow, 0)
	for rows.Next() {
		row := &domain.ParticipationRow{}
		if err := rows.Scan(&row.Username, &row.AttendanceCount); err != nil {
			return nil, fmt.Errorf("scan participation row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// EventFeedback averages ratings per event. Events with no feedback report a
// nil average (AVG over zero rows is NULL); callers must handle it.
func (r *reportRepository) EventFeedback(ctx context.Context) ([]*domain.FeedbackRow, error) {
	query := `
		SELECT e.title, AVG(f.rating) AS average_rating
		FROM events e
		LEFT JOIN event_feedback f ON e.event_id = f.event_id
		GROUP BY e.event_id, e.title
		ORDER BY average_rating DESC NULLS LAST, e.title
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("event feedback: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.FeedbackRow, 0)
	for rows.Next() {
		row := &domain.FeedbackRow{}
		var avg sql.NullFloat64
		if err := rows.Scan(&row.Title, &avg); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		if avg.Valid {
			row.AverageRating = &avg.Float64
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
