package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

const pingTimeout = 2 * time.Second

// Health reports whether the database is reachable.
type Health struct {
	pinger model.Pinger
	logger *logger.Logger
}

func NewHealth(pinger model.Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

func (h *Health) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: database ping failed",
			"error", err.Error())
		return c.JSON(http.StatusServiceUnavailable, Response{Success: false, Message: "database unavailable"})
	}

	return c.JSON(http.StatusOK, Response{Success: true})
}
