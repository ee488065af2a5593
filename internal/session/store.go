// Package session holds uploaded tables per report session. Sessions are a
// caller-side concern: the pipeline itself always receives tables as
// explicit arguments and never reaches into ambient state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/case-report-service/internal/domain"
	apperrors "github.com/spec-kit/case-report-service/pkg/util"
)

const keyPrefix = "report_session:"

// TableKind names the three upload slots of a session.
type TableKind string

const (
	KindCases           TableKind = "cases"
	KindServiceRequests TableKind = "service_requests"
	KindIncidents       TableKind = "incidents"
)

// Snapshot is the full upload state of one session. Status tables are
// optional; reconciliation skips whichever is absent.
type Snapshot struct {
	Cases           *domain.Table `json:"cases,omitempty"`
	ServiceRequests *domain.Table `json:"service_requests,omitempty"`
	Incidents       *domain.Table `json:"incidents,omitempty"`
	CasesLabel      *time.Time    `json:"cases_label,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Store keeps session snapshots in redis with a TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore builds a session store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Create starts an empty session and returns its identifier.
func (s *Store) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	snapshot := &Snapshot{CreatedAt: time.Now().UTC()}
	if err := s.put(ctx, id, snapshot); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads a session snapshot. An expired or unknown session maps to a
// not-found domain error.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewNotFound("session", map[string]any{"session_id": id})
	}
	if err != nil {
		return nil, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// SaveTable stores an uploaded table into its session slot, refreshing the
// session TTL. A re-upload replaces the previous table of the same kind.
func (s *Store) SaveTable(ctx context.Context, id string, kind TableKind, table *domain.Table, label *time.Time) error {
	snapshot, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	switch kind {
	case KindCases:
		snapshot.Cases = table
		snapshot.CasesLabel = label
	case KindServiceRequests:
		snapshot.ServiceRequests = table
	case KindIncidents:
		snapshot.Incidents = table
	default:
		return errors.New("session: unknown table kind")
	}
	return s.put(ctx, id, snapshot)
}

func (s *Store) put(ctx context.Context, id string, snapshot *Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+id, raw, s.ttl).Err()
}
