package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

type StudentController struct {
	Logger        *slog.Logger
	Events        domain.EventService
	Participation domain.ParticipationService
}

func NewStudentController(logger *slog.Logger, events domain.EventService, participation domain.ParticipationService) *StudentController {
	return &StudentController{
		Logger:        logger,
		Events:        events,
		Participation: participation,
	}
}

// PairRequest is the request body for the register and attendance routes.
type PairRequest struct {
	EventID int64 `json:"event_id"`
	UserID  int64 `json:"user_id"`
}

// Validate implements helpers.Validator.
func (p PairRequest) Validate() []string {
	var errs []string
	if p.EventID <= 0 {
		errs = append(errs, "event_id is required")
	}
	if p.UserID <= 0 {
		errs = append(errs, "user_id is required")
	}
	return errs
}

// FeedbackRequest is the request body for POST /api/student/feedback.
type FeedbackRequest struct {
	EventID int64  `json:"event_id"`
	UserID  int64  `json:"user_id"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// Validate implements helpers.Validator. Rating bounds are the service's
// concern; here only presence is checked so an absent rating reads as
// "rating is required" rather than "out of range".
func (f FeedbackRequest) Validate() []string {
	var errs []string
	if f.EventID <= 0 {
		errs = append(errs, "event_id is required")
	}
	if f.UserID <= 0 {
		errs = append(errs, "user_id is required")
	}
	if f.Rating == nil {
		errs = append(errs, "rating is required")
	}
	return errs
}

// MessageResponse is a success body with a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeWorkflowError maps participation workflow errors to HTTP statuses.
// Ordering violations and duplicates are both conflicts (409), distinguished
// by message; they are not failures of the server.
func (c *StudentController) writeWorkflowError(w http.ResponseWriter, r *http.Request, err error, duplicateMsg, orderingMsg string) {
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, duplicateMsg)
	case errors.Is(err, domain.ErrOrderingViolation):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, orderingMsg)
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event or user not found")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}

// ListEvents godoc
// @Summary List all events
// @Description Returns the full event catalog. With the optional userId query parameter, each event is annotated with the student's registered/attended/has_feedback flags.
// @Tags student
// @Produce json
// @Param userId query int false "Student user ID for participation flags"
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/student/events [get]
func (c *StudentController) ListEvents(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("userId"); s != "" {
		userID, err := strconv.ParseInt(s, 10, 64)
		if err != nil || userID <= 0 {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid userId")
			return
		}
		catalog, err := c.Participation.ListEventsForStudent(r.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
				return
			}
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
			return
		}
		h.WriteJSONSuccess(w, http.StatusOK, catalog)
		return
	}

	events, err := c.Events.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// Status godoc
// @Summary Get a student's participation status
// @Description Returns the student's registrations, attendance, and feedback records across all events.
// @Tags student
// @Produce json
// @Param userId query int true "Student user ID"
// @Success 200 {object} helpers.APIResponse "data contains registrations, attendance, and feedback arrays"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/student/status [get]
func (c *StudentController) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing or invalid userId")
		return
	}

	status, err := c.Participation.StudentStatus(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, status)
}

// Register godoc
// @Summary Register for an event
// @Description Registers the user for the event. Registering twice is a conflict.
// @Tags student
// @Accept json
// @Produce json
// @Param body body PairRequest true "Event and user IDs"
// @Success 201 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/student/register [post]
func (c *StudentController) Register(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if _, err := c.Participation.Register(r.Context(), req.EventID, req.UserID); err != nil {
		c.writeWorkflowError(w, r, err,
			"You have already registered for this event.",
			"You have already registered for this event.")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, MessageResponse{Message: "Registered successfully!"})
}

// MarkAttendance godoc
// @Summary Mark attendance for an event
// @Description Records attendance. Requires a prior registration; marking twice is a conflict.
// @Tags student
// @Accept json
// @Produce json
// @Param body body PairRequest true "Event and user IDs"
// @Success 201 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/student/attendance [post]
func (c *StudentController) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if _, err := c.Participation.MarkAttendance(r.Context(), req.EventID, req.UserID); err != nil {
		c.writeWorkflowError(w, r, err,
			"Attendance already marked for this event.",
			"You must register for this event before marking attendance.")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, MessageResponse{Message: "Attendance marked successfully!"})
}

// SubmitFeedback godoc
// @Summary Submit feedback for an event
// @Description Records a rating (1-5) and optional comment. Requires prior attendance; submitting twice is a conflict.
// @Tags student
// @Accept json
// @Produce json
// @Param body body FeedbackRequest true "Event and user IDs, rating, and optional comment"
// @Success 201 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/student/feedback [post]
func (c *StudentController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if _, err := c.Participation.SubmitFeedback(r.Context(), req.EventID, req.UserID, *req.Rating, req.Comment); err != nil {
		c.writeWorkflowError(w, r, err,
			"You have already submitted feedback for this event.",
			"You must attend this event before submitting feedback.")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, MessageResponse{Message: "Feedback submitted successfully!"})
}
