package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"kegama-backend/internal/archive"
	"kegama-backend/internal/auth"
	"kegama-backend/internal/cache"
	"kegama-backend/internal/config"
	"kegama-backend/internal/database"
	"kegama-backend/internal/db"
	"kegama-backend/internal/handlers"
	"kegama-backend/internal/health"
	h "kegama-backend/internal/http"
	"kegama-backend/internal/middleware"
	"kegama-backend/internal/monitoring"
	"kegama-backend/internal/ratelimit"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	cache.LogStatus(cache.Init(cfg))

	// Run database migrations
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Start monitoring dashboard server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize repositories
	guestRepo := repositories.NewGuestRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)
	auditRepo := repositories.NewAuditLogRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)
	employeeRepo := repositories.NewEmployeeRepository(pool)
	payslipRepo := repositories.NewPayslipRepository(pool)

	// Initialize auth plumbing
	sessions := auth.NewSessionManager(cfg)
	cookies := auth.NewGuestCookieSigner(cfg.Session.Secret)
	limiter := ratelimit.New(cache.GetClient())

	// PDF archive storage (optional - nil client disables uploads)
	archiveClient, err := archive.New(cfg)
	if err != nil {
		log.Printf("[Archive] disabled: %v", err)
	}

	// Initialize services
	authService := services.NewAuthService(cfg, settingsRepo, auditRepo, sessions, limiter)
	settingsService := services.NewSettingsService(settingsRepo, auditRepo)
	registrationService := services.NewRegistrationService(guestRepo, settingsService)
	guestService := services.NewGuestService(guestRepo, roomRepo, auditRepo)
	rackService := services.NewRackService(guestRepo, roomRepo, auditRepo)
	calendarService := services.NewCalendarService(guestRepo, roomRepo)
	analyticsService := services.NewAnalyticsService(guestRepo)
	payrollService := services.NewPayrollService(employeeRepo, payslipRepo)
	reportService := services.NewReportService(guestRepo, auditRepo, analyticsService, calendarService, archiveClient)

	// Initialize handlers
	guestHandler := handlers.NewGuestHandler(registrationService, cookies)
	authHandler := handlers.NewAuthHandler(authService)
	guestAdminHandler := handlers.NewGuestAdminHandler(guestService)
	roomHandler := handlers.NewRoomHandler(rackService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, auditRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	payrollHandler := handlers.NewPayrollHandler(payrollService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(sessions)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		guestHandler,
		authHandler,
		guestAdminHandler,
		roomHandler,
		calendarHandler,
		analyticsHandler,
		settingsHandler,
		reportHandler,
		payrollHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
