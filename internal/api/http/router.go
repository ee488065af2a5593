package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-report-service/internal/api/http/handlers"
	"github.com/spec-kit/case-report-service/internal/auth"
	"github.com/spec-kit/case-report-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Sessions       *handlers.SessionsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/staff/login", cfg.Staff.Login)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireStaffRole(domain.StaffRoleAdmin))
	staff.Post("/members", cfg.Staff.Create)

	sessions := app.Group("/sessions", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	sessions.Post("", cfg.Sessions.Create)
	sessions.Post("/:id/cases", cfg.Sessions.UploadCases)
	sessions.Post("/:id/service-requests", cfg.Sessions.UploadServiceRequests)
	sessions.Post("/:id/incidents", cfg.Sessions.UploadIncidents)

	sessions.Get("/:id/report", cfg.Reports.Get)
	sessions.Get("/:id/report/export", cfg.Reports.Export)
	sessions.Get("/:id/aggregates/daily-backlog", cfg.Reports.DailyBacklog)
	sessions.Get("/:id/aggregates/breached-by-month", cfg.Reports.BreachedByMonth)
	sessions.Get("/:id/aggregates/team-status", cfg.Reports.TeamStatus)
	sessions.Get("/:id/aggregates/weekly-flow", cfg.Reports.WeeklyFlow)
}
