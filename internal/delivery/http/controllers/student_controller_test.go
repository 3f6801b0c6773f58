package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// decodeEnvelope unwraps the {data, error} response envelope.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (json.RawMessage, *h.APIError) {
	t.Helper()
	var resp struct {
		Data  json.RawMessage `json:"data"`
		Error *h.APIError     `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Data, resp.Error
}

type stubEventService struct {
	events  []*domain.Event
	created *domain.Event
	err     error
}

func (s *stubEventService) Create(ctx context.Context, title, date, location, description string) (*domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *stubEventService) List(ctx context.Context) ([]*domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

type stubParticipationService struct {
	registerErr error
	attendErr   error
	feedbackErr error
	catalog     []*domain.EventStatus
	catalogErr  error
	status      *domain.StudentStatus
	statusErr   error

	gotRating  int
	gotComment string
}

func (s *stubParticipationService) Register(ctx context.Context, eventID, userID int64) (*domain.Registration, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.Registration{RegistrationID: 1, EventID: eventID, UserID: userID}, nil
}

func (s *stubParticipationService) MarkAttendance(ctx context.Context, eventID, userID int64) (*domain.Attendance, error) {
	if s.attendErr != nil {
		return nil, s.attendErr
	}
	return &domain.Attendance{AttendanceID: 1, EventID: eventID, UserID: userID}, nil
}

func (s *stubParticipationService) SubmitFeedback(ctx context.Context, eventID, userID int64, rating int, comment string) (*domain.Feedback, error) {
	s.gotRating = rating
	s.gotComment = comment
	if s.feedbackErr != nil {
		return nil, s.feedbackErr
	}
	return &domain.Feedback{FeedbackID: 1, EventID: eventID, UserID: userID, Rating: rating, Comment: comment}, nil
}

func (s *stubParticipationService) ListEventsForStudent(ctx context.Context, studentID int64) ([]*domain.EventStatus, error) {
	if s.catalogErr != nil {
		return nil, s.catalogErr
	}
	return s.catalog, nil
}

func (s *stubParticipationService) StudentStatus(ctx context.Context, studentID int64) (*domain.StudentStatus, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return s.status, nil
}

func newStudentController(events domain.EventService, participation domain.ParticipationService) *StudentController {
	return NewStudentController(testLogger(), events, participation)
}

func TestStudentController_Register(t *testing.T) {
	post := func(c *StudentController, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/student/register", strings.NewReader(body))
		rr := httptest.NewRecorder()
		c.Register(rr, req)
		return rr
	}

	t.Run("created", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{})
		rr := post(c, `{"event_id": 1, "user_id": 5}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		data, apiErr := decodeEnvelope(t, rr)
		require.Nil(t, apiErr)
		var msg MessageResponse
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "Registered successfully!", msg.Message)
	})

	t.Run("duplicate is 409", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{registerErr: domain.ErrAlreadyExists})
		rr := post(c, `{"event_id": 1, "user_id": 5}`)
		require.Equal(t, http.StatusConflict, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Equal(t, h.ErrCodeConflict, apiErr.Code)
		assert.Equal(t, "You have already registered for this event.", apiErr.Message)
	})

	t.Run("unknown pair is 404", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{registerErr: domain.ErrNotFound})
		rr := post(c, `{"event_id": 99, "user_id": 5}`)
		require.Equal(t, http.StatusNotFound, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Equal(t, h.ErrCodeNotFound, apiErr.Code)
	})

	t.Run("missing ids is 400", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{})
		rr := post(c, `{"event_id": 0, "user_id": 0}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{})
		rr := post(c, `{not json`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("storage failure is 500", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{registerErr: assert.AnError})
		rr := post(c, `{"event_id": 1, "user_id": 5}`)
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Equal(t, h.ErrCodeInternalError, apiErr.Code)
	})
}

func TestStudentController_MarkAttendance(t *testing.T) {
	post := func(c *StudentController, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/student/attendance", strings.NewReader(body))
		rr := httptest.NewRecorder()
		c.MarkAttendance(rr, req)
		return rr
	}

	t.Run("created", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{})
		rr := post(c, `{"event_id": 1, "user_id": 5}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		data, _ := decodeEnvelope(t, rr)
		var msg MessageResponse
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "Attendance marked successfully!", msg.Message)
	})

	t.Run("without registration is 409 with ordering message", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{attendErr: domain.ErrOrderingViolation})
		rr := post(c, `{"event_id": 1, "user_id": 5}`)
		require.Equal(t, http.StatusConflict, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Equal(t, "You must register for this event before marking attendance.", apiErr.Message)
	})

	t.Run("twice is 409 with duplicate message", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{attendErr: domain.ErrAlreadyExists})
		rr := post(c, `{"event_id": 1, "user_id": 5}`)
		require.Equal(t, http.StatusConflict, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Equal(t, "Attendance already marked for this event.", apiErr.Message)
	})
}

func TestStudentController_SubmitFeedback(t *testing.T) {
	post := func(c *StudentController, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/student/feedback", strings.NewReader(body))
		rr := httptest.NewRecorder()
		c.SubmitFeedback(rr, req)
		return rr
	}

	t.Run("created", func(t *testing.T) {
		stub := &stubParticipationService{}
		c := newStudentController(&stubEventService{}, stub)
		rr := post(c, `{"event_id": 1, "user_id": 5, "rating": 4, "comment": "great"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, 4, stub.gotRating)
		assert.Equal(t, "great", stub.gotComment)
		data, _ := decodeEnvelope(t, rr)
		var msg MessageResponse
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "Feedback submitted successfully!", msg.Message)
	})

	t.Run("absent rating is 400", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{})
		rr := post(c, `{"event_id": 1, "user_id": 5}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Contains(t, apiErr.Message, "rating is required")
	})

	t.Run("out-of-range rating is 400", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{feedbackErr: domain.ErrInvalidInput})
		rr := post(c, `{"event_id": 1, "user_id": 5, "rating": 6}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("without attendance is 409 with ordering message", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{feedbackErr: domain.ErrOrderingViolation})
		rr := post(c, `{"event_id": 1, "user_id": 5, "rating": 3}`)
		require.Equal(t, http.StatusConflict, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Equal(t, "You must attend this event before submitting feedback.", apiErr.Message)
	})

	t.Run("twice is 409 with duplicate message", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{feedbackErr: domain.ErrAlreadyExists})
		rr := post(c, `{"event_id": 1, "user_id": 5, "rating": 3}`)
		require.Equal(t, http.StatusConflict, rr.Code)
		_, apiErr := decodeEnvelope(t, rr)
		require.NotNil(t, apiErr)
		assert.Equal(t, "You have already submitted feedback for this event.", apiErr.Message)
	})
}

func TestStudentController_ListEvents(t *testing.T) {
	get := func(c *StudentController, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		c.ListEvents(rr, req)
		return rr
	}

	t.Run("plain catalog without userId", func(t *testing.T) {
		c := newStudentController(&stubEventService{events: []*domain.Event{{EventID: 1, Title: "Hack Day"}}}, &stubParticipationService{})
		rr := get(c, "/api/student/events")
		require.Equal(t, http.StatusOK, rr.Code)
		data, apiErr := decodeEnvelope(t, rr)
		require.Nil(t, apiErr)
		var events []*domain.Event
		require.NoError(t, json.Unmarshal(data, &events))
		require.Len(t, events, 1)
		assert.Equal(t, "Hack Day", events[0].Title)
	})

	t.Run("annotated catalog with userId", func(t *testing.T) {
		stub := &stubParticipationService{catalog: []*domain.EventStatus{
			{Event: &domain.Event{EventID: 1, Title: "Hack Day"}, Registered: true},
		}}
		c := newStudentController(&stubEventService{}, stub)
		rr := get(c, "/api/student/events?userId=5")
		require.Equal(t, http.StatusOK, rr.Code)
		data, _ := decodeEnvelope(t, rr)
		var catalog []*domain.EventStatus
		require.NoError(t, json.Unmarshal(data, &catalog))
		require.Len(t, catalog, 1)
		assert.True(t, catalog[0].Registered)
		assert.False(t, catalog[0].Attended)
	})

	t.Run("bad userId is 400", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{})
		rr := get(c, "/api/student/events?userId=abc")
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown student is 404", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{catalogErr: domain.ErrNotFound})
		rr := get(c, "/api/student/events?userId=99")
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("storage failure is 500", func(t *testing.T) {
		c := newStudentController(&stubEventService{err: assert.AnError}, &stubParticipationService{})
		rr := get(c, "/api/student/events")
		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestStudentController_Status(t *testing.T) {
	get := func(c *StudentController, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		c.Status(rr, req)
		return rr
	}

	t.Run("ok", func(t *testing.T) {
		stub := &stubParticipationService{status: &domain.StudentStatus{
			Registrations: []*domain.Registration{{RegistrationID: 1, EventID: 1, UserID: 5}},
			Attendance:    []*domain.Attendance{},
			Feedback:      []*domain.Feedback{},
		}}
		c := newStudentController(&stubEventService{}, stub)
		rr := get(c, "/api/student/status?userId=5")
		require.Equal(t, http.StatusOK, rr.Code)
		data, apiErr := decodeEnvelope(t, rr)
		require.Nil(t, apiErr)
		var status domain.StudentStatus
		require.NoError(t, json.Unmarshal(data, &status))
		require.Len(t, status.Registrations, 1)
		assert.Empty(t, status.Attendance)
	})

	t.Run("missing userId is 400", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{})
		rr := get(c, "/api/student/status")
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown student is 404", func(t *testing.T) {
		c := newStudentController(&stubEventService{}, &stubParticipationService{statusErr: domain.ErrNotFound})
		rr := get(c, "/api/student/status?userId=99")
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
