package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	grpcrouter "github.com/Brayanhenaor/vetquestions/internal/api/grpc/router"
	grpcServer "github.com/Brayanhenaor/vetquestions/internal/api/grpc/server"
	httprouter "github.com/Brayanhenaor/vetquestions/internal/api/http/router"
	httpServer "github.com/Brayanhenaor/vetquestions/internal/api/http/server"
	"github.com/Brayanhenaor/vetquestions/internal/config"
	"github.com/Brayanhenaor/vetquestions/internal/jobqueue"
	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
	"github.com/Brayanhenaor/vetquestions/internal/notify"
	"github.com/Brayanhenaor/vetquestions/internal/password"
	"github.com/Brayanhenaor/vetquestions/internal/repository/postgres"
	"github.com/Brayanhenaor/vetquestions/internal/server"
	"github.com/Brayanhenaor/vetquestions/internal/service"
	"github.com/Brayanhenaor/vetquestions/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		// the configured level is unknown until parsing succeeds
		logger.New(0, "text").Fatal("failed to parse config", "error", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	jobStore, err := jobqueue.Open(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize job store", "error", err)
	}
	defer jobStore.Close()

	userRepo := postgres.NewUserRepository(db)
	otpRepo := postgres.NewOtpRepository(db)
	hasher := password.NewArgon2(password.DefaultParams)

	issuer, err := token.NewJWT(cfg.JWT.Key, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	if err != nil {
		if errors.Is(err, model.ErrConfiguration) {
			logger.Fatal("refusing to start without a signing key", "error", err)
		}
		logger.Fatal("failed to create token issuer", "error", err)
	}

	notifier, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize notifier", "error", err, "driver", cfg.Mail.Driver)
	}

	scheduler := service.NewExpiryScheduler(jobStore, logger)
	otpService := service.NewOtp(userRepo, otpRepo, notifier, scheduler, service.OtpConfig{
		TTL:           cfg.OTP.TTL,
		SingleUse:     cfg.OTP.SingleUse,
		NotifyTimeout: cfg.OTP.NotifyTimeout,
	}, logger)
	authService := service.NewAuth(userRepo, hasher, issuer, logger)
	cleanup := service.NewOtpCleanup(otpRepo, logger)

	worker := jobqueue.NewWorker(jobStore, map[string]model.JobHandler{
		model.JobKindOtpCleanup: cleanup.Handle,
	}, jobqueue.Config{
		Consumer:      cfg.Worker.Consumer,
		PollInterval:  cfg.Worker.PollInterval,
		LeaseTTL:      cfg.Worker.LeaseTTL,
		BatchSize:     cfg.Worker.BatchSize,
		MaxAttempts:   cfg.Worker.MaxAttempts,
		RetryBackoff:  cfg.Worker.RetryBackoff,
		RetryMaxDelay: cfg.Worker.RetryMaxDelay,
	}, logger)

	var workers sync.WaitGroup
	workers.Add(2)
	go func() {
		defer workers.Done()
		if err := worker.Run(ctx); err != nil {
			logger.Error("job worker exited", "error", err)
		}
	}()
	go func() {
		defer workers.Done()
		cleanup.RunSweeper(ctx, cfg.Worker.SweepInterval)
	}()

	httpRouter := httprouter.New(authService, otpService, db, logger)
	apiServer := httpServer.NewHTTPServer(httpRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	healthRouter := grpcrouter.New(logger)
	healthServer := grpcServer.NewGRPCServer(healthRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var servers sync.WaitGroup
	for _, s := range []struct {
		srv model.Server
		sl  model.SecurityLayer
	}{
		{srv: apiServer, sl: sl},
		{srv: healthServer, sl: server.NewPlainListener()},
	} {
		servers.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer servers.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.srv, s.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	healthRouter.Shutdown()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}
	if err := healthServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", healthServer.Address())
	}
	servers.Wait()

	otpService.Wait()
	workers.Wait()
	logger.Info("shutdown complete")
}

func newNotifier(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.Notifier, error) {
	switch cfg.Mail.Driver {
	case config.MailDriverSMTP:
		return notify.NewSMTP(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPassword, cfg.Mail.From, cfg.OTP.TTL), nil
	case config.MailDriverMinio:
		client, err := notify.NewMinioClient(cfg.MailDrop.Endpoint, cfg.MailDrop.AccessKey, cfg.MailDrop.SecretKey, cfg.MailDrop.UseSSL)
		if err != nil {
			return nil, err
		}
		return notify.NewMailDrop(ctx, client, cfg.MailDrop.Bucket, cfg.Mail.From, cfg.OTP.TTL)
	default:
		return notify.NewLog(logger), nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
