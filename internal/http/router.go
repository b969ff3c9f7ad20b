package http

import (
	"github.com/gorilla/mux"

	"kegama-backend/internal/handlers"
	"kegama-backend/internal/middleware"
)

func NewRouter(
	guestHandler *handlers.GuestHandler,
	authHandler *handlers.AuthHandler,
	guestAdminHandler *handlers.GuestAdminHandler,
	roomHandler *handlers.RoomHandler,
	calendarHandler *handlers.CalendarHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	settingsHandler *handlers.SettingsHandler,
	reportHandler *handlers.ReportHandler,
	payrollHandler *handlers.PayrollHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// Public guest surface (no authentication)
	guestAPI := r.PathPrefix("/api/guest").Subrouter()
	guestAPI.HandleFunc("/status", guestHandler.Status).Methods("GET")
	guestAPI.HandleFunc("/access-code", guestHandler.AccessCode).Methods("POST")
	guestAPI.HandleFunc("/register", guestHandler.Register).Methods("POST")

	// Login sits outside the PIN-gated subrouter
	r.HandleFunc("/api/admin/login", authHandler.Login).Methods("POST")

	// Management API (PIN session)
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.RequireManager)
	adminAPI.HandleFunc("/dashboard", guestAdminHandler.Dashboard).Methods("GET")
	adminAPI.HandleFunc("/guests/search", guestAdminHandler.Search).Methods("GET")
	adminAPI.HandleFunc("/guests/{id}", guestAdminHandler.Get).Methods("GET")
	adminAPI.HandleFunc("/guests/{id}", guestAdminHandler.Update).Methods("PUT")
	adminAPI.HandleFunc("/guests/{id}", guestAdminHandler.Delete).Methods("DELETE")
	adminAPI.HandleFunc("/guests/{id}/clone", guestAdminHandler.Clone).Methods("POST")
	adminAPI.HandleFunc("/guests/{id}/pdf", reportHandler.GuestFolio).Methods("GET")
	adminAPI.HandleFunc("/bookings", guestAdminHandler.CreateBooking).Methods("POST")
	adminAPI.HandleFunc("/rack", roomHandler.Rack).Methods("GET")
	adminAPI.HandleFunc("/rooms", roomHandler.List).Methods("GET")
	adminAPI.HandleFunc("/rooms", roomHandler.Update).Methods("PUT")
	adminAPI.HandleFunc("/rooms/{number}/clean", roomHandler.MarkClean).Methods("POST")
	adminAPI.HandleFunc("/calendar", calendarHandler.Month).Methods("GET")
	adminAPI.HandleFunc("/analytics", analyticsHandler.Report).Methods("GET")
	adminAPI.HandleFunc("/settings", settingsHandler.Get).Methods("GET")
	adminAPI.HandleFunc("/settings", settingsHandler.Update).Methods("PUT")
	adminAPI.HandleFunc("/settings/pin", settingsHandler.ChangePIN).Methods("POST")
	adminAPI.HandleFunc("/audit-log", settingsHandler.AuditLog).Methods("GET")
	adminAPI.HandleFunc("/reports/revenue.pdf", reportHandler.Revenue).Methods("GET")
	adminAPI.HandleFunc("/reports/timeline.pdf", reportHandler.Timeline).Methods("GET")

	// Payroll API (owner claim on top of the PIN session)
	payrollAPI := r.PathPrefix("/api/payroll").Subrouter()
	payrollAPI.Use(authMiddleware.RequireOwner)
	payrollAPI.HandleFunc("/employees", payrollHandler.ListEmployees).Methods("GET")
	payrollAPI.HandleFunc("/employees", payrollHandler.CreateEmployee).Methods("POST")
	payrollAPI.HandleFunc("/employees/{id}", payrollHandler.DeleteEmployee).Methods("DELETE")
	payrollAPI.HandleFunc("/employees/{id}/payslip", payrollHandler.LatestPayslip).Methods("GET")
	payrollAPI.HandleFunc("/payslips", payrollHandler.SavePayslip).Methods("POST")

	return r
}
