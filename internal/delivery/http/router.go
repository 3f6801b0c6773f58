package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Admin surfaces require a Bearer token with the admin role; the student
// surfaces identify the user by the user_id in the request, matching the
// original browser client.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	studentController *controllers.StudentController,
	reportController *controllers.ReportController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAdmin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(verifier)(middleware.RequireRole(domain.RoleAdmin)(next))
	}

	// Auth
	mux.HandleFunc("POST /api/login", authController.Login)

	// Admin
	mux.HandleFunc("POST /api/events", requireAdmin(eventController.Create))
	mux.HandleFunc("GET /api/admin/reports/popularity", requireAdmin(reportController.Popularity))
	mux.HandleFunc("GET /api/admin/reports/participation", requireAdmin(reportController.Participation))
	mux.HandleFunc("GET /api/admin/reports/feedback", requireAdmin(reportController.Feedback))

	// Student
	mux.HandleFunc("GET /api/student/events", studentController.ListEvents)
	mux.HandleFunc("GET /api/student/status", studentController.Status)
	mux.HandleFunc("POST /api/student/register", studentController.Register)
	mux.HandleFunc("POST /api/student/attendance", studentController.MarkAttendance)
	mux.HandleFunc("POST /api/student/feedback", studentController.SubmitFeedback)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
