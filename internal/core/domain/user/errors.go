package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionDoesNotExist = errors.New("session does not exist")
)

var (
	ErrResetTokenDoesNotExist  = errors.New("password reset token does not exist")
	ErrResetTokenExpired       = errors.New("password reset token expired")
	ErrResetTokenAlreadyExists = errors.New("password reset token already exists")
)
