package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

// Auth implements password login and account registration.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	issuer    model.TokenIssuer
	logger    *logger.Logger
	now       func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	issuer model.TokenIssuer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		issuer:    issuer,
		logger:    logger,
		now:       time.Now,
	}
}

// Login checks the password of username and issues a session token carrying
// the user's roles.
func (a *Auth) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	a.logger.Debug("Auth service: processing login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown user",
			"username", username)
		return model.LoginResult{}, model.ErrUserNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordSalt, user.PasswordHash) {
		a.logger.Info("Auth service: invalid password",
			"user_id", user.ID)
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	roles, err := a.userStore.GetRoles(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to get user roles",
			"user_id", user.ID,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to get user roles: %w", err)
	}

	token, err := a.issuer.Issue(user.Username, roles)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"user_id", user.ID,
		"roles", roles)

	return model.LoginResult{
		Token:      token.Value,
		Expiration: token.ExpiresAt,
		UserID:     user.ID,
		Roles:      token.Roles,
		User:       user,
	}, nil
}

// Register creates an account and assigns Vet or Normal depending on
// IsVeterinary. The username is the email.
func (a *Auth) Register(ctx context.Context, reg model.Registration) error {
	a.logger.Debug("Auth service: processing registration",
		"email", reg.Email)

	_, err := a.userStore.GetByEmail(ctx, reg.Email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", reg.Email)
		return model.ErrUserAlreadyExists
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", reg.Email,
			"error", err.Error())
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.hasher.Validate(reg.Password); err != nil {
		a.logger.Info("Auth service: password rejected",
			"email", reg.Email,
			"reason", err.Error())
		return fmt.Errorf("%w: %w", model.ErrUserCreation, err)
	}

	hash, salt, err := a.hasher.Hash(reg.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", reg.Email,
			"error", err.Error())
		return fmt.Errorf("%w: %w", model.ErrUserCreation, err)
	}

	role := model.RoleNormal
	if reg.IsVeterinary {
		role = model.RoleVet
	}

	now := a.now().UTC()
	user := model.User{
		ID:           uuid.New(),
		FullName:     reg.FullName,
		Username:     reg.Email,
		Email:        reg.Email,
		IsVeterinary: reg.IsVeterinary,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.userStore.Create(ctx, user, role)
	if errors.Is(err, model.ErrAlreadyExists) {
		a.logger.Info("Auth service: user created concurrently",
			"email", reg.Email)
		return model.ErrUserAlreadyExists
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", reg.Email,
			"error", err.Error())
		return fmt.Errorf("%w: %w", model.ErrUserCreation, err)
	}

	a.logger.Info("Auth service: registration completed",
		"user_id", saved.ID,
		"role", role)

	return nil
}
