package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTP_SendOtp(t *testing.T) {
	fs := &fakeSender{}
	s := &SMTP{dialer: fs, from: "no-reply@vetquestions.local", ttl: 15 * time.Minute}

	err := s.SendOtp(context.Background(), "482913", "vet@example.com")
	require.NoError(t, err)
	require.Len(t, fs.sent, 1)

	m := fs.sent[0]
	assert.Equal(t, []string{"vet@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@vetquestions.local"}, m.GetHeader("From"))
	assert.Equal(t, []string{otpSubject}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "482913")
	assert.Contains(t, buf.String(), "15 minutes")
}

func TestSMTP_SendOtp_DialError(t *testing.T) {
	s := &SMTP{dialer: &fakeSender{err: errors.New("connection refused")}, from: "a@b.c", ttl: time.Minute}

	err := s.SendOtp(context.Background(), "123456", "x@y.z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send otp email")
}

func TestSMTP_SendOtp_ContextDone(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	s := &SMTP{dialer: &fakeSender{block: block}, from: "a@b.c", ttl: time.Minute}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.SendOtp(ctx, "123456", "x@y.z")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSMTP_SendOtp_AlreadyCanceled(t *testing.T) {
	fs := &fakeSender{}
	s := &SMTP{dialer: fs, from: "a@b.c", ttl: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.SendOtp(ctx, "123456", "x@y.z")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fs.sent)
}

func TestNewSMTP(t *testing.T) {
	s := NewSMTP("smtp.example.com", 587, "user", "secret", "a@b.c", time.Minute)

	assert.NotNil(t, s.dialer)
	assert.Equal(t, "a@b.c", s.from)
}
