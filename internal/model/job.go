package model

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobKindOtpCleanup deletes a single OTP row once it expires.
const JobKindOtpCleanup = "otp.cleanup"

// JobStatus enumerates durable job states.
type JobStatus string

const (
	JobStatusPending JobStatus = "pending"
	JobStatusLeased  JobStatus = "leased"
	JobStatusDead    JobStatus = "dead"
)

// JobQueue accepts deferred jobs.
type JobQueue interface {
	Enqueue(ctx context.Context, job Job) error
}

// JobStore is the worker side of the durable job queue.
type JobStore interface {
	Lease(ctx context.Context, consumer string, limit int, now time.Time, leaseTTL time.Duration) ([]Job, error)
	Complete(ctx context.Context, id uuid.UUID, consumer string) error
	Retry(ctx context.Context, id uuid.UUID, consumer string, runAt time.Time, lastError string) error
	Dead(ctx context.Context, id uuid.UUID, consumer string, lastError string) error
}

// JobHandler executes one leased job.
type JobHandler func(ctx context.Context, job Job) error

// Job is a deferred action with a scheduled run time.
type Job struct {
	ID             uuid.UUID
	Kind           string
	Payload        json.RawMessage
	DedupeKey      string
	Status         JobStatus
	Attempts       int
	RunAt          time.Time
	LeaseOwner     string
	LeaseExpiresAt *time.Time
	LastError      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OtpCleanupPayload identifies the OTP row a cleanup job removes.
type OtpCleanupPayload struct {
	OtpID int64 `json:"otp_id"`
}
