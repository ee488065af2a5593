package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/case-report-service/internal/api/dto"
	"github.com/spec-kit/case-report-service/internal/auth"
	"github.com/spec-kit/case-report-service/internal/events"
	"github.com/spec-kit/case-report-service/internal/ingest"
	"github.com/spec-kit/case-report-service/internal/session"
	apperrors "github.com/spec-kit/case-report-service/pkg/util"
)

// SessionsHandler manages report sessions and table uploads.
type SessionsHandler struct {
	sessions   *session.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(sessions *session.Store, dispatcher events.Dispatcher, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{sessions: sessions, dispatcher: dispatcher, logger: logger}
}

// Create handles POST /sessions.
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	id, err := h.sessions.Create(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": dto.SessionResponse{SessionID: id, CreatedAt: time.Now().UTC()},
	})
}

// UploadCases handles POST /sessions/:id/cases.
func (h *SessionsHandler) UploadCases(c *fiber.Ctx) error {
	return h.upload(c, session.KindCases)
}

// UploadServiceRequests handles POST /sessions/:id/service-requests.
func (h *SessionsHandler) UploadServiceRequests(c *fiber.Ctx) error {
	return h.upload(c, session.KindServiceRequests)
}

// UploadIncidents handles POST /sessions/:id/incidents.
func (h *SessionsHandler) UploadIncidents(c *fiber.Ctx) error {
	return h.upload(c, session.KindIncidents)
}

func (h *SessionsHandler) upload(c *fiber.Ctx, kind session.TableKind) error {
	sessionID := c.Params("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewUnreadableInput("cannot open uploaded file", err)
	}
	defer file.Close()

	table, err := ingest.ReadTable(file)
	if err != nil {
		return apperrors.NewUnreadableInput("cannot parse uploaded table", err)
	}

	// Only the case export carries a report-label timestamp in its name.
	var label *time.Time
	if kind == session.KindCases {
		if ts, ok := ingest.ExtractTimestamp(fileHeader.Filename); ok {
			label = &ts
		}
	}

	if err := h.sessions.SaveTable(c.UserContext(), sessionID, kind, table, label); err != nil {
		return apperrors.MapError(err)
	}

	staffID := ""
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Staff != nil {
		staffID = principal.Staff.ID
	}
	h.publish(c, events.Event{
		Type:      events.EventUploadReceived,
		SessionID: sessionID,
		StaffID:   staffID,
		Payload: events.UploadReceivedPayload{
			Kind:     string(kind),
			FileName: fileHeader.Filename,
			RowCount: len(table.Rows),
		},
	})

	return c.JSON(fiber.Map{
		"data": dto.UploadResponse{
			SessionID: sessionID,
			Kind:      string(kind),
			FileName:  fileHeader.Filename,
			RowCount:  len(table.Rows),
			Label:     label,
		},
	})
}

func (h *SessionsHandler) publish(c *fiber.Ctx, event events.Event) {
	if h.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := h.dispatcher.Publish(c.UserContext(), event); err != nil {
		h.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
