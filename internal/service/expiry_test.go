package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Brayanhenaor/vetquestions/internal/mocks"
	"github.com/Brayanhenaor/vetquestions/internal/model"
	"github.com/Brayanhenaor/vetquestions/internal/testutil"
)

func TestExpiryScheduler_ScheduleCleanup(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		wantRunAt time.Time
	}{
		{name: "future expiry", expiresAt: now.Add(15 * time.Minute), wantRunAt: now.Add(15 * time.Minute)},
		{name: "expires now", expiresAt: now, wantRunAt: now},
		{name: "already expired", expiresAt: now.Add(-time.Minute), wantRunAt: now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := mocks.NewJobQueue(t)
			queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(job model.Job) bool {
				var payload model.OtpCleanupPayload
				if err := json.Unmarshal(job.Payload, &payload); err != nil {
					return false
				}
				return job.Kind == model.JobKindOtpCleanup &&
					job.DedupeKey == "otp.cleanup:17" &&
					payload.OtpID == 17 &&
					job.RunAt.Equal(tt.wantRunAt)
			})).Return(nil)

			s := NewExpiryScheduler(queue, testutil.MakeNoopLogger())
			s.now = func() time.Time { return now }

			err := s.ScheduleCleanup(context.Background(), model.OtpCode{ID: 17, ExpiresAt: tt.expiresAt})
			require.NoError(t, err)
		})
	}
}

func TestExpiryScheduler_EnqueueError(t *testing.T) {
	queue := mocks.NewJobQueue(t)
	queue.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	s := NewExpiryScheduler(queue, testutil.MakeNoopLogger())

	err := s.ScheduleCleanup(context.Background(), model.OtpCode{ID: 1, ExpiresAt: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to enqueue otp cleanup")
}
