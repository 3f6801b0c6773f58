package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"campusevents/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type participationService struct {
	userRepo         domain.UserRepository
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	attendanceRepo   domain.AttendanceRepository
	feedbackRepo     domain.FeedbackRepository
	emailService     domain.EmailService
	logger           *slog.Logger
}

// NewParticipationService creates a ParticipationService with the given
// repositories. emailService may be nil; confirmation emails are then skipped.
func NewParticipationService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	attendanceRepo domain.AttendanceRepository,
	feedbackRepo domain.FeedbackRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.ParticipationService {
	return &participationService{
		userRepo:         userRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		attendanceRepo:   attendanceRepo,
		feedbackRepo:     feedbackRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

// stateOf computes the participation state for an (event, user) pair from the
// stored facts. Rows are append-only, so the checks short-circuit: no
// registration means no attendance or feedback can exist either.
func (s *participationService) stateOf(ctx context.Context, eventID, userID int64) (domain.ParticipationState, error) {
	if _, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StateNone, nil
		}
		return domain.StateNone, fmt.Errorf("get registration: %w", err)
	}
	if _, err := s.attendanceRepo.GetByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StateRegistered, nil
		}
		return domain.StateNone, fmt.Errorf("get attendance: %w", err)
	}
	if _, err := s.feedbackRepo.GetByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StateAttended, nil
		}
		return domain.StateNone, fmt.Errorf("get feedback: %w", err)
	}
	return domain.StateFeedbackGiven, nil
}

// checkPair verifies that both the event and the user exist.
func (s *participationService) checkPair(ctx context.Context, eventID, userID int64) (*domain.Event, *domain.User, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	return event, user, nil
}

// Register creates a registration for the pair. Valid only from the initial
// state; any later state is a duplicate conflict. A concurrent duplicate that
// slips past the state check is caught by the unique constraint and surfaces
// as the same conflict.
func (s *participationService) Register(ctx context.Context, eventID, userID int64) (*domain.Registration, error) {
	event, user, err := s.checkPair(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	state, err := s.stateOf(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := state.CheckRegister(); err != nil {
		return nil, err
	}

	reg := &domain.Registration{EventID: eventID, UserID: userID, CreatedAt: time.Now()}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmation(ctx, event, user)
	return reg, nil
}

// sendConfirmation emails a registration confirmation when a mailer is
// configured and the username is a deliverable address. Failures are logged
// and never fail the registration.
func (s *participationService) sendConfirmation(ctx context.Context, event *domain.Event, user *domain.User) {
	if s.emailService == nil || !emailRegexp.MatchString(user.Username) {
		return
	}
	data := &domain.RegistrationEmailData{
		Email:         user.Username,
		Username:      user.Username,
		EventTitle:    event.Title,
		EventDate:     event.Date.Format(eventDateFormat),
		EventLocation: event.Location,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "registration confirmation email failed",
			"event_id", event.EventID, "user_id", user.UserID, "err", err)
	}
}

// MarkAttendance records attendance for the pair. Attendance requires a prior
// registration; marking twice is a duplicate conflict.
func (s *participationService) MarkAttendance(ctx context.Context, eventID, userID int64) (*domain.Attendance, error) {
	if _, _, err := s.checkPair(ctx, eventID, userID); err != nil {
		return nil, err
	}

	state, err := s.stateOf(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := state.CheckAttend(); err != nil {
		return nil, err
	}

	att := &domain.Attendance{EventID: eventID, UserID: userID, CreatedAt: time.Now()}
	if err := s.attendanceRepo.Create(ctx, att); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return att, nil
}

// SubmitFeedback records a rating and optional comment. The rating bounds are
// checked before any state lookup; feedback requires prior attendance and may
// be given once.
func (s *participationService) SubmitFeedback(ctx context.Context, eventID, userID int64, rating int, comment string) (*domain.Feedback, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if _, _, err := s.checkPair(ctx, eventID, userID); err != nil {
		return nil, err
	}

	state, err := s.stateOf(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := state.CheckFeedback(); err != nil {
		return nil, err
	}

	fb := &domain.Feedback{
		EventID:   eventID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return fb, nil
}

// ListEventsForStudent returns the full catalog annotated with the student's
// participation flags. An unknown student fails with ErrNotFound rather than
// returning all-false flags.
func (s *participationService) ListEventsForStudent(ctx context.Context, studentID int64) ([]*domain.EventStatus, error) {
	if _, err := s.userRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	status, err := s.statusSets(ctx, studentID)
	if err != nil {
		return nil, err
	}

	registered := make(map[int64]struct{}, len(status.Registrations))
	for _, reg := range status.Registrations {
		registered[reg.EventID] = struct{}{}
	}
	attended := make(map[int64]struct{}, len(status.Attendance))
	for _, att := range status.Attendance {
		attended[att.EventID] = struct{}{}
	}
	hasFeedback := make(map[int64]struct{}, len(status.Feedback))
	for _, fb := range status.Feedback {
		hasFeedback[fb.EventID] = struct{}{}
	}

	out := make([]*domain.EventStatus, 0, len(events))
	for _, event := range events {
		_, isRegistered := registered[event.EventID]
		_, isAttended := attended[event.EventID]
		_, gaveFeedback := hasFeedback[event.EventID]
		out = append(out, &domain.EventStatus{
			Event:       event,
			Registered:  isRegistered,
			Attended:    isAttended,
			HasFeedback: gaveFeedback,
		})
	}
	return out, nil
}

// StudentStatus returns the student's raw participation facts.
func (s *participationService) StudentStatus(ctx context.Context, studentID int64) (*domain.StudentStatus, error) {
	if _, err := s.userRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.statusSets(ctx, studentID)
}

func (s *participationService) statusSets(ctx context.Context, studentID int64) (*domain.StudentStatus, error) {
	regs, err := s.registrationRepo.ListByUserID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	atts, err := s.attendanceRepo.ListByUserID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	fbs, err := s.feedbackRepo.ListByUserID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	if atts == nil {
		atts = []*domain.Attendance{}
	}
	if fbs == nil {
		fbs = []*domain.Feedback{}
	}
	return &domain.StudentStatus{Registrations: regs, Attendance: atts, Feedback: fbs}, nil
}
