package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
)

// Logging logs every HTTP request with its outcome.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleHTTP returns echo middleware logging method, path, status and duration.
func (l *Logging) HandleHTTP() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"duration_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}

			switch {
			case v.Error != nil:
				l.logger.Error("HTTP request failed", append(attrs, "error", v.Error.Error())...)
			case v.Status >= 500:
				l.logger.Error("HTTP request completed", attrs...)
			default:
				l.logger.Info("HTTP request completed", attrs...)
			}
			return nil
		},
	})
}
