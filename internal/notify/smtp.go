package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var _ model.Notifier = (*SMTP)(nil)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTP delivers codes by email.
type SMTP struct {
	dialer sender
	from   string
	ttl    time.Duration
}

func NewSMTP(host string, port int, user, password, from string, ttl time.Duration) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		ttl:    ttl,
	}
}

func (s *SMTP) SendOtp(ctx context.Context, code, email string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	m := newOtpMessage(s.from, email, code, s.ttl)

	// gomail has no context support; give up waiting once ctx is done
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed to send otp email: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to send otp email: %w", err)
		}
		return nil
	}
}
