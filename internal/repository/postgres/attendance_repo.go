package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{DB: db}
}

func (r *attendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	query := `
		INSERT INTO event_attendance (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING attendance_id
	`
	err := r.DB.QueryRowContext(ctx, query, att.EventID, att.UserID, att.CreatedAt).Scan(&att.AttendanceID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Attendance, error) {
	query := `
		SELECT attendance_id, event_id, user_id, created_at
		FROM event_attendance
		WHERE event_id = $1 AND user_id = $2
	`
	att := &domain.Attendance{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&att.AttendanceID, &att.EventID, &att.UserID, &att.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return att, nil
}

func (r *attendanceRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Attendance, error) {
	query := `
		SELECT attendance_id, event_id, user_id, created_at
		FROM event_attendance
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	atts := make([]*domain.Attendance, 0)
	for rows.Next() {
		att := &domain.Attendance{}
		if err := rows.Scan(&att.AttendanceID, &att.EventID, &att.UserID, &att.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		atts = append(atts, att)
	}
	return atts, rows.Err()
}
