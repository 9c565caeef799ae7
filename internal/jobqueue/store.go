package jobqueue

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var (
	_ model.JobQueue = (*Store)(nil)
	_ model.JobStore = (*Store)(nil)
)

// Store is a Postgres-backed durable job queue.
type Store struct {
	db    *sqlx.DB
	clock func() time.Time
}

type jobRow struct {
	ID             uuid.UUID    `db:"id"`
	Kind           string       `db:"kind"`
	Payload        []byte       `db:"payload"`
	DedupeKey      string       `db:"dedupe_key"`
	Status         string       `db:"status"`
	Attempts       int          `db:"attempts"`
	RunAt          time.Time    `db:"run_at"`
	LeaseOwner     string       `db:"lease_owner"`
	LeaseExpiresAt sql.NullTime `db:"lease_expires_at"`
	LastError      string       `db:"last_error"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

// Open connects to Postgres through the pgx database/sql driver.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect job store: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wraps an existing sqlx handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, clock: time.Now}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Enqueue inserts job unless another job with the same dedupe key exists.
func (s *Store) Enqueue(ctx context.Context, job model.Job) error {
	if strings.TrimSpace(job.Kind) == "" {
		return fmt.Errorf("job kind is required")
	}
	if strings.TrimSpace(job.DedupeKey) == "" {
		return fmt.Errorf("job dedupe key is required")
	}

	now := nowUTC(s.clock)
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.RunAt.IsZero() {
		job.RunAt = now
	}
	payload := []byte(job.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	row := jobRow{
		ID:        job.ID,
		Kind:      job.Kind,
		Payload:   payload,
		DedupeKey: job.DedupeKey,
		Status:    string(model.JobStatusPending),
		RunAt:     job.RunAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO scheduled_jobs (id, kind, payload, dedupe_key, status, attempts, run_at, lease_owner, last_error, created_at, updated_at)
			  VALUES (:id, :kind, :payload, :dedupe_key, :status, 0, :run_at, '', '', :created_at, :updated_at)
			  ON CONFLICT (dedupe_key) DO NOTHING`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}

	return nil
}

// Lease claims up to limit due jobs for consumer. Pending jobs whose run time
// has passed and leased jobs whose lease expired are both eligible.
func (s *Store) Lease(ctx context.Context, consumer string, limit int, now time.Time, leaseTTL time.Duration) ([]model.Job, error) {
	consumer = strings.TrimSpace(consumer)
	if consumer == "" {
		return nil, fmt.Errorf("consumer is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	if leaseTTL <= 0 {
		return nil, fmt.Errorf("lease ttl must be greater than zero")
	}
	if now.IsZero() {
		now = nowUTC(s.clock)
	}
	now = now.UTC()

	query := `UPDATE scheduled_jobs
			  SET status = $1, lease_owner = $2, lease_expires_at = $3, attempts = attempts + 1, updated_at = $4
			  WHERE id IN (
				SELECT id FROM scheduled_jobs
				WHERE (status = $5 AND run_at <= $4)
				   OR (status = $1 AND lease_expires_at IS NOT NULL AND lease_expires_at <= $4)
				ORDER BY run_at ASC, created_at ASC, id ASC
				LIMIT $6
				FOR UPDATE SKIP LOCKED
			  )
			  RETURNING id, kind, payload, dedupe_key, status, attempts, run_at, lease_owner, lease_expires_at, last_error, created_at, updated_at`

	var rows []jobRow
	err := s.db.SelectContext(ctx, &rows, query,
		string(model.JobStatusLeased), consumer, now.Add(leaseTTL), now,
		string(model.JobStatusPending), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lease jobs: %w", err)
	}

	jobs := make([]model.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.toModel())
	}

	return jobs, nil
}

// Complete removes a job leased by consumer.
func (s *Store) Complete(ctx context.Context, id uuid.UUID, consumer string) error {
	query := `DELETE FROM scheduled_jobs WHERE id = $1 AND status = $2 AND lease_owner = $3`

	res, err := s.db.ExecContext(ctx, query, id, string(model.JobStatusLeased), consumer)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	return requireAffected(res)
}

// Retry returns a leased job to the pending state with a new run time.
func (s *Store) Retry(ctx context.Context, id uuid.UUID, consumer string, runAt time.Time, lastError string) error {
	if runAt.IsZero() {
		return fmt.Errorf("run at is required")
	}

	query := `UPDATE scheduled_jobs
			  SET status = $1, run_at = $2, lease_owner = '', lease_expires_at = NULL, last_error = $3, updated_at = $4
			  WHERE id = $5 AND status = $6 AND lease_owner = $7`

	res, err := s.db.ExecContext(ctx, query,
		string(model.JobStatusPending), runAt.UTC(), strings.TrimSpace(lastError), nowUTC(s.clock),
		id, string(model.JobStatusLeased), consumer,
	)
	if err != nil {
		return fmt.Errorf("failed to retry job: %w", err)
	}

	return requireAffected(res)
}

// Dead parks a leased job permanently.
func (s *Store) Dead(ctx context.Context, id uuid.UUID, consumer string, lastError string) error {
	query := `UPDATE scheduled_jobs
			  SET status = $1, lease_owner = '', lease_expires_at = NULL, last_error = $2, updated_at = $3
			  WHERE id = $4 AND status = $5 AND lease_owner = $6`

	res, err := s.db.ExecContext(ctx, query,
		string(model.JobStatusDead), strings.TrimSpace(lastError), nowUTC(s.clock),
		id, string(model.JobStatusLeased), consumer,
	)
	if err != nil {
		return fmt.Errorf("failed to mark job dead: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r jobRow) toModel() model.Job {
	job := model.Job{
		ID:         r.ID,
		Kind:       r.Kind,
		Payload:    append([]byte(nil), r.Payload...),
		DedupeKey:  r.DedupeKey,
		Status:     model.JobStatus(r.Status),
		Attempts:   r.Attempts,
		RunAt:      r.RunAt.UTC(),
		LeaseOwner: r.LeaseOwner,
		LastError:  r.LastError,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
	if r.LeaseExpiresAt.Valid {
		t := r.LeaseExpiresAt.Time.UTC()
		job.LeaseExpiresAt = &t
	}
	return job
}

func nowUTC(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}
