package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OtpStore persists one-time passcodes.
type OtpStore interface {
	Create(ctx context.Context, code OtpCode) (OtpCode, error)
	// GetLatestByUser returns the most recently generated code of the user.
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (OtpCode, error)
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// OtpCode is a short-lived numeric passcode tied to a user.
type OtpCode struct {
	ID          int64
	UserID      uuid.UUID
	Code        string
	GeneratedAt time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the code is past its expiry at the given instant.
func (c OtpCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Notifier delivers OTP values to users out of band.
type Notifier interface {
	SendOtp(ctx context.Context, code, email string) error
}
