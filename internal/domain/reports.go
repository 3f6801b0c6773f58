package domain

import "context"

// PopularityRow is one row of the event popularity report.
// swagger:model PopularityRow
type PopularityRow struct {
	Title             string `json:"title"`
	RegistrationCount int64  `json:"registration_count"`
}

// ParticipationRow is one row of the student participation report.
// swagger:model ParticipationRow
type ParticipationRow struct {
	Username        string `json:"username"`
	AttendanceCount int64  `json:"attendance_count"`
}

// FeedbackRow is one row of the event feedback report. AverageRating is nil
// for events with no feedback.
// swagger:model FeedbackRow
type FeedbackRow struct {
	Title         string   `json:"title"`
	AverageRating *float64 `json:"average_rating"`
}

// ReportRepository runs the read-only aggregations behind the admin reports.
type ReportRepository interface {
	EventPopularity(ctx context.Context) ([]*PopularityRow, error)
	StudentParticipation(ctx context.Context) ([]*ParticipationRow, error)
	EventFeedback(ctx context.Context) ([]*FeedbackRow, error)
}

// ReportService exposes the admin reports.
type ReportService interface {
	EventPopularity(ctx context.Context) ([]*PopularityRow, error)
	StudentParticipation(ctx context.Context) ([]*ParticipationRow, error)
	EventFeedback(ctx context.Context) ([]*FeedbackRow, error)
}
