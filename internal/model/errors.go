package model

import "errors"

// Storage errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Authentication and verification errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserCreation       = errors.New("error creating user")
	ErrEmailNotRegistered = errors.New("email is not registered")
	ErrOtpExpired         = errors.New("otp expired")
	ErrOtpInvalid         = errors.New("otp invalid")
	ErrConfiguration      = errors.New("configuration error")
)
