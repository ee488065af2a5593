package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/case-report-service/internal/domain"
	"github.com/spec-kit/case-report-service/internal/events"
	"github.com/spec-kit/case-report-service/internal/observability"
	"github.com/spec-kit/case-report-service/internal/repository"
)

// AuditService records upload and report events. Report runs go to postgres
// when a pool is configured; uploads are logged.
type AuditService struct {
	dispatcher events.Dispatcher
	runs       repository.ReportRunRepository
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, runs repository.ReportRunRepository, metrics *observability.Metrics, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		runs:       runs,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUploadReceived, a.handleUploadReceived)
	a.dispatcher.Subscribe(events.EventReportGenerated, a.handleReportGenerated)
}

func (a *AuditService) handleUploadReceived(_ context.Context, event events.Event) error {
	a.logger.Info("UploadReceived",
		zap.String("session_id", event.SessionID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleReportGenerated(ctx context.Context, event events.Event) error {
	a.logger.Info("ReportGenerated",
		zap.String("session_id", event.SessionID),
		zap.Any("payload", event.Payload))
	a.metrics.RecordReport()

	if a.runs == nil {
		return nil
	}
	payload, ok := event.Payload.(events.ReportGeneratedPayload)
	if !ok {
		return nil
	}
	run := &domain.ReportRun{
		SessionID:   event.SessionID,
		GeneratedBy: event.StaffID,
		CaseRows:    payload.CaseRows,
		NoticeCount: payload.NoticeCount,
	}
	if err := a.runs.Create(ctx, run); err != nil {
		a.logger.Warn("failed to persist report run", zap.Error(err))
	}
	return nil
}
