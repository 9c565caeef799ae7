package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
)

// OtpService defines one-time passcode operations.
type OtpService interface {
	RequestOtp(ctx context.Context, email string) error
	ValidateOtp(ctx context.Context, email, code string) error
}

// Otp handles HTTP endpoints for one-time passcodes.
type Otp struct {
	otpService OtpService
	logger     *logger.Logger
}

func NewOtp(otpService OtpService, logger *logger.Logger) *Otp {
	return &Otp{
		otpService: otpService,
		logger:     logger,
	}
}

// Request issues a code to the email given in the query string.
func (h *Otp) Request(c echo.Context) error {
	var req OtpRequest
	if err := bind(c, &req); err != nil {
		return writeBadRequest(c, h.logger, err)
	}

	if err := h.otpService.RequestOtp(c.Request().Context(), req.Email); err != nil {
		h.logger.Info("OTP handler: request failed",
			"email", req.Email,
			"error", err.Error())
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, Response{Success: true})
}

// Validate checks a code against the newest one issued for the email.
func (h *Otp) Validate(c echo.Context) error {
	var req ValidateOtpRequest
	if err := bind(c, &req); err != nil {
		return writeBadRequest(c, h.logger, err)
	}

	if err := h.otpService.ValidateOtp(c.Request().Context(), req.Email, req.Otp); err != nil {
		h.logger.Info("OTP handler: validation failed",
			"email", req.Email,
			"error", err.Error())
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true})
}
