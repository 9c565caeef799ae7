//go:build integration

package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brayanhenaor/vetquestions/internal/jobqueue"
	"github.com/Brayanhenaor/vetquestions/internal/model"
	"github.com/Brayanhenaor/vetquestions/internal/password"
	"github.com/Brayanhenaor/vetquestions/internal/repository/postgres"
	"github.com/Brayanhenaor/vetquestions/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	var (
		terminate func()
		err       error
	)
	dsn, terminate, err = testutil.StartPostgres(context.Background(), "vetquestions_service")
	if err != nil {
		panic(err)
	}

	code := m.Run()
	terminate()
	os.Exit(code)
}

func countRows(t *testing.T, conn *postgres.Connection, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, conn.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

// TestVetLifecycleAgainstPostgres runs registration, login, OTP issuance,
// validation and queued cleanup on real tables. The worker reads the wall
// clock, so the OTP lifetime is kept short and the test sleeps past it.
func TestVetLifecycleAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	log := testutil.MakeNoopLogger()
	const ttl = 2 * time.Second

	conn, err := postgres.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	store, err := jobqueue.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	users := postgres.NewUserRepository(conn)
	otps := postgres.NewOtpRepository(conn)
	notifier := &recordingNotifier{}

	auth := NewAuth(users, password.NewArgon2(cheapArgon), newIssuer(t), log)
	otpSvc := NewOtp(users, otps, notifier, NewExpiryScheduler(store, log), OtpConfig{
		TTL:           ttl,
		SingleUse:     true,
		NotifyTimeout: time.Second,
	}, log)
	cleanup := NewOtpCleanup(otps, log)
	worker := jobqueue.NewWorker(store, map[string]model.JobHandler{
		model.JobKindOtpCleanup: cleanup.Handle,
	}, jobqueue.Config{Consumer: "otp-cleanup", LeaseTTL: time.Minute}, log)

	require.NoError(t, auth.Register(ctx, model.Registration{
		FullName:     "Vet Example",
		Email:        "vet@example.com",
		Password:     "Pass#1234",
		IsVeterinary: true,
	}))
	assert.ErrorIs(t, auth.Register(ctx, model.Registration{
		FullName: "Again",
		Email:    "vet@example.com",
		Password: "Pass#1234",
	}), model.ErrUserAlreadyExists)

	res, err := auth.Login(ctx, "vet@example.com", "Pass#1234")
	require.NoError(t, err)
	assert.Equal(t, []string{"Vet"}, res.Roles)
	assert.NotEmpty(t, res.Token)

	_, err = auth.Login(ctx, "vet@example.com", "Wrong#1234")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	otpsFor := func(id uuid.UUID) int {
		return countRows(t, conn, `SELECT count(*) FROM otp_codes WHERE user_id = $1`, id)
	}
	cleanupJobs := func() int {
		return countRows(t, conn, `SELECT count(*) FROM scheduled_jobs WHERE kind = $1`, model.JobKindOtpCleanup)
	}

	require.NoError(t, otpSvc.RequestOtp(ctx, "vet@example.com"))
	otpSvc.Wait()
	first := notifier.last().code
	assert.Equal(t, 1, otpsFor(res.UserID))
	assert.Equal(t, 1, cleanupJobs())

	n, err := worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "cleanup is not due before the code expires")

	assert.ErrorIs(t, otpSvc.ValidateOtp(ctx, "vet@example.com", "000000"), model.ErrOtpInvalid)
	require.NoError(t, otpSvc.ValidateOtp(ctx, "vet@example.com", first))
	assert.ErrorIs(t, otpSvc.ValidateOtp(ctx, "vet@example.com", first), model.ErrOtpExpired)
	assert.Zero(t, otpsFor(res.UserID))

	require.NoError(t, otpSvc.RequestOtp(ctx, "vet@example.com"))
	otpSvc.Wait()
	second := notifier.last().code
	assert.Equal(t, 1, otpsFor(res.UserID))
	assert.Equal(t, 2, cleanupJobs())

	time.Sleep(ttl + 500*time.Millisecond)

	assert.ErrorIs(t, otpSvc.ValidateOtp(ctx, "vet@example.com", second), model.ErrOtpExpired)

	n, err = worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, otpsFor(res.UserID))
	assert.Zero(t, cleanupJobs())
}
