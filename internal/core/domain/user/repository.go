package user

import (
	"context"
	"time"
	c "userapi/internal/core/domain/common"
)

type CreateUserInput struct {
	Email        c.Email
	Username     Username
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UpdateUserInput struct {
	ID               ID
	DoUsernameUpdate bool
	Username         Username
}

type ListUsersQuery struct {
	UsernameContains c.Optional[string]
	Limit            uint
	Offset           uint
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	List(ctx context.Context, query ListUsersQuery) ([]User, error)
	Count(ctx context.Context, query ListUsersQuery) (uint, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	SetLastLoginAt(ctx context.Context, id ID, at time.Time) error
	Delete(ctx context.Context, id ID) error
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}

type CreateResetTokenInput struct {
	Token     PasswordResetToken
	UserID    ID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ResetTokenRepository owns issued password reset tokens. DeleteByToken is
// the consume operation: it must remove at most one row and report
// ErrResetTokenDoesNotExist when the token is absent or already spent, so
// that concurrent consumers cannot both succeed.
type ResetTokenRepository interface {
	Create(ctx context.Context, input CreateResetTokenInput) (ResetToken, error)
	GetByToken(ctx context.Context, token PasswordResetToken) (ResetToken, error)
	DeleteByToken(ctx context.Context, token PasswordResetToken) (ResetToken, error)
}
