package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

// AuthService defines login and registration operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (model.LoginResult, error)
	Register(ctx context.Context, registration model.Registration) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Login authenticates with email and password and returns a session token.
func (h *Auth) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return writeBadRequest(c, h.logger, err)
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Result: LoginResponse{
			Token:      res.Token,
			Expiration: res.Expiration.UTC().Format(time.RFC3339),
			ID:         res.UserID.String(),
			Roles:      res.Roles,
			User: UserResponse{
				ID:           res.User.ID.String(),
				FullName:     res.User.FullName,
				Email:        res.User.Email,
				IsVeterinary: res.User.IsVeterinary,
			},
		},
	})
}

// Register creates a new account.
func (h *Auth) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return writeBadRequest(c, h.logger, err)
	}

	err := h.authService.Register(c.Request().Context(), model.Registration{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		IsVeterinary: req.IsVeterinary,
	})
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, Response{Success: true, Message: "user created successfully"})
}
