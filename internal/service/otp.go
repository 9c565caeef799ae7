package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// CleanupScheduler arranges the removal of an OTP row once it expires.
type CleanupScheduler interface {
	ScheduleCleanup(ctx context.Context, code model.OtpCode) error
}

// OtpConfig holds OTP issuance settings.
type OtpConfig struct {
	TTL           time.Duration
	SingleUse     bool
	NotifyTimeout time.Duration
}

// Otp issues and validates one-time passcodes.
type Otp struct {
	userStore model.UserStore
	otpStore  model.OtpStore
	notifier  model.Notifier
	scheduler CleanupScheduler
	cfg       OtpConfig
	logger    *logger.Logger

	now      func() time.Time
	generate func() (string, error)
	wg       sync.WaitGroup
}

func NewOtp(
	userStore model.UserStore,
	otpStore model.OtpStore,
	notifier model.Notifier,
	scheduler CleanupScheduler,
	cfg OtpConfig,
	logger *logger.Logger,
) *Otp {
	return &Otp{
		userStore: userStore,
		otpStore:  otpStore,
		notifier:  notifier,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		generate:  generateCode,
	}
}

// RequestOtp stores a fresh code for the user registered under email,
// dispatches it to the notifier in the background and schedules its cleanup.
// The code itself is never returned.
func (o *Otp) RequestOtp(ctx context.Context, email string) error {
	user, err := o.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		o.logger.Info("OTP service: request for unregistered email",
			"email", email)
		return model.ErrEmailNotRegistered
	}
	if err != nil {
		o.logger.Error("OTP service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	code, err := o.generate()
	if err != nil {
		o.logger.Error("OTP service: failed to generate code",
			"error", err.Error())
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	now := o.now().UTC()
	saved, err := o.otpStore.Create(ctx, model.OtpCode{
		UserID:      user.ID,
		Code:        code,
		GeneratedAt: now,
		ExpiresAt:   now.Add(o.cfg.TTL),
	})
	if err != nil {
		o.logger.Error("OTP service: failed to store code",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to store otp: %w", err)
	}

	o.dispatch(ctx, saved.Code, user.Email)

	if err := o.scheduler.ScheduleCleanup(ctx, saved); err != nil {
		// the sweeper reclaims rows whose cleanup job was never enqueued
		o.logger.Error("OTP service: failed to schedule cleanup",
			"otp_id", saved.ID,
			"error", err.Error())
	}

	o.logger.Info("OTP service: code issued",
		"user_id", user.ID,
		"otp_id", saved.ID,
		"expires_at", saved.ExpiresAt)

	return nil
}

// ValidateOtp checks code against the newest code of the user. With
// single-use enabled a matching code is consumed.
func (o *Otp) ValidateOtp(ctx context.Context, email, code string) error {
	user, err := o.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrEmailNotRegistered
	}
	if err != nil {
		o.logger.Error("OTP service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	latest, err := o.otpStore.GetLatestByUser(ctx, user.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrOtpExpired
	}
	if err != nil {
		o.logger.Error("OTP service: failed to get latest code",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to get latest otp: %w", err)
	}

	if latest.Expired(o.now().UTC()) {
		return model.ErrOtpExpired
	}

	if subtle.ConstantTimeCompare([]byte(latest.Code), []byte(code)) != 1 {
		o.logger.Info("OTP service: code mismatch",
			"user_id", user.ID)
		return model.ErrOtpInvalid
	}

	if o.cfg.SingleUse {
		err := o.otpStore.Delete(ctx, latest.ID)
		if errors.Is(err, model.ErrNotFound) {
			// consumed by a concurrent validation
			return model.ErrOtpExpired
		}
		if err != nil {
			o.logger.Error("OTP service: failed to consume code",
				"otp_id", latest.ID,
				"error", err.Error())
			return fmt.Errorf("failed to consume otp: %w", err)
		}
	}

	o.logger.Info("OTP service: code validated",
		"user_id", user.ID)

	return nil
}

// Wait blocks until every in-flight notification has finished.
func (o *Otp) Wait() {
	o.wg.Wait()
}

func (o *Otp) dispatch(ctx context.Context, code, email string) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.cfg.NotifyTimeout)
		defer cancel()

		if err := o.notifier.SendOtp(sendCtx, code, email); err != nil {
			o.logger.Error("OTP service: failed to deliver code",
				"email", email,
				"error", err.Error())
		}
	}()
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
