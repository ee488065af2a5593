package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/case-report-service/internal/domain"
)

// ReportRunRepository persists the audit trail of generated reports.
type ReportRunRepository interface {
	Create(ctx context.Context, run *domain.ReportRun) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.ReportRun, error)
}

type reportRunRepository struct {
	pool *pgxpool.Pool
}

// NewReportRunRepository instantiates the repository.
func NewReportRunRepository(pool *pgxpool.Pool) ReportRunRepository {
	return &reportRunRepository{pool: pool}
}

func (r *reportRunRepository) Create(ctx context.Context, run *domain.ReportRun) error {
	const query = `
        INSERT INTO report_runs (session_id, generated_by, case_rows, notice_count)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		run.SessionID,
		run.GeneratedBy,
		run.CaseRows,
		run.NoticeCount,
	).Scan(&run.ID, &run.CreatedAt)
}

func (r *reportRunRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.ReportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, session_id, generated_by, case_rows, notice_count, created_at
        FROM report_runs WHERE session_id=$1
        ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportRun
	for rows.Next() {
		var run domain.ReportRun
		if err := rows.Scan(
			&run.ID,
			&run.SessionID,
			&run.GeneratedBy,
			&run.CaseRows,
			&run.NoticeCount,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}
