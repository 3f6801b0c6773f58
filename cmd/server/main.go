package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"campusevents/config"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	deliveryhttp "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"

	"golang.org/x/crypto/bcrypt"
)

// @title Campus Events API
// @version 1.0
// @description Campus event management: admins create events and read reports, students register, attend, and leave feedback.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	tokenExpiry := time.Duration(cfg.TokenExpiryMinutes) * time.Minute

	// Left nil when no provider is configured; the participation service
	// then skips confirmation emails.
	var emailSvc domain.EmailService
	if cfg.EmailProvider != "" {
		mailer, err := email.NewMailer(email.MailerConfig{
			Provider:    cfg.EmailProvider,
			FromAddress: cfg.EmailFromAddress,
			FromName:    cfg.EmailFromName,
			SES: email.SESConfig{
				Region:          cfg.AWSRegion,
				AccessKeyID:     cfg.AWSAccessKeyID,
				SecretAccessKey: cfg.AWSSecretAccessKey,
			},
		})
		if err != nil {
			logger.Error("failed to create mailer", "err", err)
			os.Exit(1)
		}
		emailSvc = services.NewEmailService(mailer, email.NewTemplateRenderer())
	}

	authSvc := services.NewAuthService(userRepo, hasher, tokens, tokenExpiry)
	eventSvc := services.NewEventService(eventRepo)
	participationSvc := services.NewParticipationService(
		userRepo, eventRepo, registrationRepo, attendanceRepo, feedbackRepo, emailSvc, logger,
	)
	reportSvc := services.NewReportService(reportRepo)

	authController := controllers.NewAuthController(logger, authSvc)
	eventController := controllers.NewEventController(logger, eventSvc)
	studentController := controllers.NewStudentController(logger, eventSvc, participationSvc)
	reportController := controllers.NewReportController(logger, reportSvc)

	mux := deliveryhttp.NewRouter(authController, eventController, studentController, reportController, tokens)

	var handler http.Handler = middleware.LoggingMiddleware(logger, mux)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("campusevents listening", "port", cfg.Port, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
