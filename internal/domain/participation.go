package domain

import (
	"context"
	"time"
)

// Feedback rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// ParticipationState is the per-(event, user) workflow state. States are
// strictly ordered and append-only: none -> registered -> attended ->
// feedback given. There is no way back and no skipping.
type ParticipationState int

const (
	StateNone ParticipationState = iota
	StateRegistered
	StateAttended
	StateFeedbackGiven
)

func (s ParticipationState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRegistered:
		return "registered"
	case StateAttended:
		return "attended"
	case StateFeedbackGiven:
		return "feedback_given"
	default:
		return "unknown"
	}
}

// CheckRegister reports whether a registration may be created from this state.
// Any state past none is a duplicate conflict.
func (s ParticipationState) CheckRegister() error {
	if s == StateNone {
		return nil
	}
	return ErrAlreadyExists
}

// CheckAttend reports whether attendance may be recorded from this state.
// Attendance before registration is an ordering violation; attendance after
// attendance is a duplicate conflict.
func (s ParticipationState) CheckAttend() error {
	switch s {
	case StateNone:
		return ErrOrderingViolation
	case StateRegistered:
		return nil
	default:
		return ErrAlreadyExists
	}
}

// CheckFeedback reports whether feedback may be submitted from this state.
func (s ParticipationState) CheckFeedback() error {
	switch s {
	case StateNone, StateRegistered:
		return ErrOrderingViolation
	case StateAttended:
		return nil
	default:
		return ErrAlreadyExists
	}
}

// Registration is the fact that a user intends to attend an event.
// swagger:model Registration
type Registration struct {
	RegistrationID int64     `json:"registration_id"`
	EventID        int64     `json:"event_id"`
	UserID         int64     `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Attendance is the fact that a user attended an event.
// swagger:model Attendance
type Attendance struct {
	AttendanceID int64     `json:"attendance_id"`
	EventID      int64     `json:"event_id"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Feedback is a rating in [1,5] with an optional comment for an attended event.
// swagger:model Feedback
type Feedback struct {
	FeedbackID int64     `json:"feedback_id"`
	EventID    int64     `json:"event_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventStatus is an event annotated with one student's participation flags.
// swagger:model EventStatus
type EventStatus struct {
	*Event
	Registered  bool `json:"registered"`
	Attended    bool `json:"attended"`
	HasFeedback bool `json:"has_feedback"`
}

// StudentStatus holds a student's raw participation facts across all events.
// swagger:model StudentStatus
type StudentStatus struct {
	Registrations []*Registration `json:"registrations"`
	Attendance    []*Attendance   `json:"attendance"`
	Feedback      []*Feedback     `json:"feedback"`
}

// RegistrationRepository defines the interface for registration storage.
// Create returns ErrAlreadyExists when the (event, user) pair already has a row.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Registration, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Registration, error)
}

// AttendanceRepository defines the interface for attendance storage.
type AttendanceRepository interface {
	Create(ctx context.Context, att *Attendance) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Attendance, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Attendance, error)
}

// FeedbackRepository defines the interface for feedback storage.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Feedback, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Feedback, error)
}

// ParticipationService drives the per-(event, user) workflow and enforces the
// state ordering before any write.
type ParticipationService interface {
	Register(ctx context.Context, eventID, userID int64) (*Registration, error)
	MarkAttendance(ctx context.Context, eventID, userID int64) (*Attendance, error)
	SubmitFeedback(ctx context.Context, eventID, userID int64, rating int, comment string) (*Feedback, error)
	ListEventsForStudent(ctx context.Context, studentID int64) ([]*EventStatus, error)
	StudentStatus(ctx context.Context, studentID int64) (*StudentStatus, error)
}
