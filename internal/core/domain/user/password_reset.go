package user

import (
	"context"
	"time"
)

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

// ResetToken is a single-use, time-bounded secret that authorizes one
// password change for the owning user without re-authentication.
type ResetToken struct {
	Token     PasswordResetToken
	UserID    ID
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t ResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

type ResetTokenGenerator interface {
	GenerateResetToken() PasswordResetToken
}

type PasswordResetTokenSender interface {
	SendResetToken(ctx context.Context, user User, token ResetToken) error
}
