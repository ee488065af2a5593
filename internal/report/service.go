package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/case-report-service/internal/aggregate"
	"github.com/spec-kit/case-report-service/internal/domain"
	"github.com/spec-kit/case-report-service/internal/events"
	"github.com/spec-kit/case-report-service/internal/session"
	apperrors "github.com/spec-kit/case-report-service/pkg/util"
)

// Service runs the pipeline over a session's uploads. Every request
// reprocesses the session's current tables in full; there is no incremental
// state between requests.
type Service struct {
	sessions   *session.Store
	pipeline   *Pipeline
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles collaborators for the report service.
type Dependencies struct {
	Sessions   *session.Store
	Pipeline   *Pipeline
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewService constructs the service.
func NewService(deps Dependencies) *Service {
	return &Service{
		sessions:   deps.Sessions,
		pipeline:   deps.Pipeline,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// BuildReport enriches the session's case table and assembles the filtered
// report.
func (s *Service) BuildReport(ctx context.Context, sessionID, staffID string, filter Filter) (*Report, error) {
	snapshot, records, notices, err := s.enrichSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	report := Assemble(records, snapshot.Cases.Columns, filter, notices, time.Now().UTC())
	s.publish(ctx, events.Event{
		Type:      events.EventReportGenerated,
		SessionID: sessionID,
		StaffID:   staffID,
		Payload: events.ReportGeneratedPayload{
			CaseRows:    len(report.Rows),
			NoticeCount: len(report.Notices),
		},
	})
	return report, nil
}

// DailyBacklog returns the channel-by-status cross-tab for cases created on
// the target date.
func (s *Service) DailyBacklog(ctx context.Context, sessionID string, date time.Time) (*aggregate.CrossTab, []string, error) {
	_, records, notices, err := s.enrichSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return aggregate.DailyBacklog(records, date), notices, nil
}

// BreachedByMonth returns open breached-incident counts by year-month.
func (s *Service) BreachedByMonth(ctx context.Context, sessionID string) ([]aggregate.MonthCount, []string, error) {
	_, records, notices, err := s.enrichSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return aggregate.BreachedIncidentsByMonth(records, s.pipeline.ClosedStatuses()), notices, nil
}

// TeamStatus returns the team-by-status summary with totals.
func (s *Service) TeamStatus(ctx context.Context, sessionID string) (*aggregate.CrossTab, []string, error) {
	_, records, notices, err := s.enrichSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return aggregate.TeamStatusSummary(records), notices, nil
}

// WeeklyFlow returns the weekly created/closed series.
func (s *Service) WeeklyFlow(ctx context.Context, sessionID string) ([]aggregate.WeekPoint, []string, error) {
	_, records, notices, err := s.enrichSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return aggregate.WeeklyFlow(records, s.pipeline.ClosedStatuses()), notices, nil
}

func (s *Service) enrichSession(ctx context.Context, sessionID string) (*session.Snapshot, []domain.CaseRecord, []string, error) {
	snapshot, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if snapshot.Cases == nil {
		return nil, nil, nil, apperrors.NewValidationError("no case file uploaded for this session", nil)
	}
	records, notices := s.pipeline.Enrich(snapshot.Cases, snapshot.ServiceRequests, snapshot.Incidents)
	return snapshot, records, notices, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
