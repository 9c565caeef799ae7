package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var _ CleanupScheduler = (*ExpiryScheduler)(nil)

// ExpiryScheduler enqueues durable cleanup jobs for issued codes.
type ExpiryScheduler struct {
	queue  model.JobQueue
	logger *logger.Logger
	now    func() time.Time
}

func NewExpiryScheduler(queue model.JobQueue, logger *logger.Logger) *ExpiryScheduler {
	return &ExpiryScheduler{
		queue:  queue,
		logger: logger,
		now:    time.Now,
	}
}

// ScheduleCleanup enqueues deletion of code at its expiry. Codes that are
// already expired are scheduled to run immediately.
func (s *ExpiryScheduler) ScheduleCleanup(ctx context.Context, code model.OtpCode) error {
	payload, err := json.Marshal(model.OtpCleanupPayload{OtpID: code.ID})
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}

	now := s.now().UTC()
	runAt := code.ExpiresAt.UTC()
	if !runAt.After(now) {
		runAt = now
	}

	job := model.Job{
		Kind:      model.JobKindOtpCleanup,
		Payload:   payload,
		DedupeKey: cleanupDedupeKey(code.ID),
		RunAt:     runAt,
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue otp cleanup: %w", err)
	}

	s.logger.Debug("Expiry scheduler: cleanup scheduled",
		"otp_id", code.ID,
		"run_at", runAt)

	return nil
}

func cleanupDedupeKey(otpID int64) string {
	return fmt.Sprintf("%s:%d", model.JobKindOtpCleanup, otpID)
}
