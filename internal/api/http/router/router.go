package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Brayanhenaor/vetquestions/internal/api/http/handler"
	"github.com/Brayanhenaor/vetquestions/internal/api/http/middleware"
	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

// Router wires HTTP handlers and middleware.
type Router struct {
	authService handler.AuthService
	otpService  handler.OtpService
	pinger      model.Pinger
	logger      *logger.Logger
}

// New creates a Router for the given services.
func New(
	authService handler.AuthService,
	otpService handler.OtpService,
	pinger model.Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService: authService,
		otpService:  otpService,
		pinger:      pinger,
		logger:      logger,
	}
}

// Register builds the echo instance with every route registered.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	logging := middleware.NewLogging(r.logger)

	e.Use(echomw.RequestID())
	e.Use(logging.HandleHTTP())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("1M"))

	r.registerAuthRoutes(e)
	r.registerOtpRoutes(e)

	health := handler.NewHealth(r.pinger, r.logger)
	e.GET("/health", health.Check)

	return e
}

func (r *Router) registerAuthRoutes(e *echo.Echo) {
	auth := handler.NewAuth(r.authService, r.logger)
	e.POST("/login", auth.Login)
	e.POST("/register", auth.Register)
}

func (r *Router) registerOtpRoutes(e *echo.Echo) {
	otp := handler.NewOtp(r.otpService, r.logger)
	e.GET("/otp", otp.Request)
	e.POST("/otp/validate", otp.Validate)
}
