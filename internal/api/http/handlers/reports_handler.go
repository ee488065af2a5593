package handlers

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-report-service/internal/aggregate"
	"github.com/spec-kit/case-report-service/internal/api/dto"
	"github.com/spec-kit/case-report-service/internal/auth"
	"github.com/spec-kit/case-report-service/internal/domain"
	"github.com/spec-kit/case-report-service/internal/report"
	apperrors "github.com/spec-kit/case-report-service/pkg/util"
)

// ReportsHandler serves enriched reports and aggregate rollups.
type ReportsHandler struct {
	reports *report.Service
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *report.Service) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Get handles GET /sessions/:id/report.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.reports.BuildReport(c.UserContext(), c.Params("id"), staffID(c), filter)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{"data": dto.ReportResponse{
		Columns:     result.Columns,
		Rows:        result.Rows,
		RowCount:    len(result.Rows),
		Notices:     result.Notices,
		GeneratedAt: result.GeneratedAt,
	}})
}

// Export handles GET /sessions/:id/report/export.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.reports.BuildReport(c.UserContext(), c.Params("id"), staffID(c), filter)
	if err != nil {
		return apperrors.MapError(err)
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, result); err != nil {
		return apperrors.NewInternalError(err)
	}

	fileName := fmt.Sprintf("report-%s.csv", result.GeneratedAt.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(buf.Bytes())
}

// DailyBacklog handles GET /sessions/:id/aggregates/daily-backlog.
func (h *ReportsHandler) DailyBacklog(c *fiber.Ctx) error {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
		}
		date = parsed
	}

	tab, notices, err := h.reports.DailyBacklog(c.UserContext(), c.Params("id"), date)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": crossTabResponse(tab, notices)})
}

// BreachedByMonth handles GET /sessions/:id/aggregates/breached-by-month.
func (h *ReportsHandler) BreachedByMonth(c *fiber.Ctx) error {
	months, notices, err := h.reports.BreachedByMonth(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.MonthCountsResponse{Months: months, Notices: notices}})
}

// TeamStatus handles GET /sessions/:id/aggregates/team-status.
func (h *ReportsHandler) TeamStatus(c *fiber.Ctx) error {
	tab, notices, err := h.reports.TeamStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": crossTabResponse(tab, notices)})
}

// WeeklyFlow handles GET /sessions/:id/aggregates/weekly-flow.
func (h *ReportsHandler) WeeklyFlow(c *fiber.Ctx) error {
	points, notices, err := h.reports.WeeklyFlow(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.WeeklyFlowResponse{Points: points, Notices: notices}})
}

func parseFilter(c *fiber.Ctx) (report.Filter, error) {
	var filter report.Filter

	switch raw := strings.ToLower(c.Query("type")); raw {
	case "":
	case "service_request", "sr":
		t := domain.TicketTypeServiceRequest
		filter.TicketType = &t
	case "incident":
		t := domain.TicketTypeIncident
		filter.TicketType = &t
	default:
		return filter, apperrors.NewValidationError("type must be service_request or incident", nil)
	}

	switch raw := strings.ToUpper(c.Query("triage")); raw {
	case "":
	case string(domain.TriageNotTriaged):
		t := domain.TriageNotTriaged
		filter.Triage = &t
	case string(domain.TriagePendingReference):
		t := domain.TriagePendingReference
		filter.Triage = &t
	case string(domain.TriageRegexError):
		t := domain.TriageRegexError
		filter.Triage = &t
	default:
		return filter, apperrors.NewValidationError("unknown triage status", nil)
	}

	filter.Status = c.Query("status")
	filter.User = c.Query("user")
	return filter, nil
}

func crossTabResponse(tab *aggregate.CrossTab, notices []string) dto.CrossTabResponse {
	resp := dto.CrossTabResponse{Notices: notices}
	if tab != nil {
		resp.RowLabels = tab.RowLabels
		resp.ColLabels = tab.ColLabels
		resp.Cells = tab.Cells
	}
	return resp
}

func staffID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Staff != nil {
		return principal.Staff.ID
	}
	return ""
}
