package notify

import (
	"context"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var _ model.Notifier = (*Log)(nil)

// Log writes codes to the debug log. Local development only.
type Log struct {
	logger *logger.Logger
}

// NewLog warns once that codes are not delivered and are only visible
// with LOG_LEVEL=-4 (debug).
func NewLog(logger *logger.Logger) *Log {
	logger.Warn("Log notifier: codes are not delivered, use MAIL_DRIVER=smtp or minio outside development",
		"code_log_level", "debug")
	return &Log{logger: logger}
}

func (l *Log) SendOtp(_ context.Context, code, email string) error {
	l.logger.Debug("Log notifier: otp issued",
		"email", email,
		"code", code)
	return nil
}
