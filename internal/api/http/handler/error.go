package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

const (
	msgBadCredentials  = "user not found or invalid password"
	msgUserExists      = "user already exists"
	msgUserCreation    = "error creating user"
	msgEmailUnknown    = "email is not registered"
	msgOtpExpired      = "otp expired"
	msgOtpInvalid      = "otp invalid"
	msgInvalidRequest  = "invalid request"
	msgInternalFailure = "internal server error"
)

// statusFor maps a service error to the HTTP status and public message.
// Unknown users and wrong passwords share a message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, msgBadCredentials
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgBadCredentials
	case errors.Is(err, model.ErrUserAlreadyExists):
		return http.StatusConflict, msgUserExists
	case errors.Is(err, model.ErrUserCreation):
		return http.StatusBadRequest, msgUserCreation
	case errors.Is(err, model.ErrEmailNotRegistered):
		return http.StatusBadRequest, msgEmailUnknown
	case errors.Is(err, model.ErrOtpExpired):
		return http.StatusBadRequest, msgOtpExpired
	case errors.Is(err, model.ErrOtpInvalid):
		return http.StatusBadRequest, msgOtpInvalid
	default:
		return http.StatusInternalServerError, msgInternalFailure
	}
}

func writeError(c echo.Context, err error) error {
	status, msg := statusFor(err)
	return c.JSON(status, Response{Success: false, Message: msg})
}

// writeBadRequest logs the bind or validation detail and answers with a
// generic message.
func writeBadRequest(c echo.Context, logger *logger.Logger, err error) error {
	if err != nil {
		logger.Info("HTTP handler: invalid request",
			"path", c.Path(),
			"error", err.Error())
	}
	return c.JSON(http.StatusBadRequest, Response{Success: false, Message: msgInvalidRequest})
}

// bind decodes and validates the request into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
