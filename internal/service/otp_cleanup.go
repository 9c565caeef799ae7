package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

// OtpCleanup removes expired codes, either one per job or in periodic sweeps.
type OtpCleanup struct {
	otpStore model.OtpStore
	logger   *logger.Logger
	now      func() time.Time
}

func NewOtpCleanup(otpStore model.OtpStore, logger *logger.Logger) *OtpCleanup {
	return &OtpCleanup{
		otpStore: otpStore,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle is the otp.cleanup job handler. A row that is already gone is not
// an error.
func (c *OtpCleanup) Handle(ctx context.Context, job model.Job) error {
	var payload model.OtpCleanupPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode cleanup payload: %w", err)
	}

	err := c.otpStore.Delete(ctx, payload.OtpID)
	if errors.Is(err, model.ErrNotFound) {
		c.logger.Info("OTP cleanup: code already removed",
			"otp_id", payload.OtpID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete otp %d: %w", payload.OtpID, err)
	}

	c.logger.Debug("OTP cleanup: code removed",
		"otp_id", payload.OtpID)

	return nil
}

// Sweep deletes every code that expired before now.
func (c *OtpCleanup) Sweep(ctx context.Context) (int64, error) {
	deleted, err := c.otpStore.DeleteExpired(ctx, c.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired otps: %w", err)
	}
	if deleted > 0 {
		c.logger.Info("OTP cleanup: swept expired codes",
			"count", deleted)
	}
	return deleted, nil
}

// RunSweeper sweeps every interval until ctx is canceled.
func (c *OtpCleanup) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.Sweep(ctx); err != nil && ctx.Err() == nil {
				c.logger.Error("OTP cleanup: sweep failed",
					"error", err.Error())
			}
		}
	}
}
