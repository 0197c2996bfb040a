package sendpasswordresettoken

import (
	"context"
	"errors"
	"time"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

// Token values are generated with enough entropy that a collision is
// practically impossible, but the store enforces uniqueness anyway and
// issuing retries with a fresh token on that error.
const MAX_TOKEN_GENERATION_ATTEMPTS = 3

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-token::" + string(i.Email)
}

type Result struct {
	User  user.User
	Token user.ResetToken
}

type service struct {
	log                  logging.Logger
	userRepository       user.UserRepository
	resetTokenRepository user.ResetTokenRepository
	resetTokenGenerator  user.ResetTokenGenerator
	tokenTTL             time.Duration
	now                  func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	resetTokenRepository user.ResetTokenRepository,
	resetTokenGenerator user.ResetTokenGenerator,
	tokenTTL time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if resetTokenRepository == nil {
		panic(e.NewNilArgumentError("resetTokenRepository"))
	}
	if resetTokenGenerator == nil {
		panic(e.NewNilArgumentError("resetTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		userRepository:       userRepository,
		resetTokenRepository: resetTokenRepository,
		resetTokenGenerator:  resetTokenGenerator,
		tokenTTL:             tokenTTL,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"User not found for password reset request.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset request.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.issueToken(ctx, u)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue password reset token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("userId", u.ID),
		logging.Entry("expiresAt", token.ExpiresAt),
	)
	return Result{User: u, Token: token}, nil
}

func (s *service) issueToken(ctx context.Context, u user.User) (token user.ResetToken, err error) {
	now := s.now()
	for attempt := 0; attempt < MAX_TOKEN_GENERATION_ATTEMPTS; attempt++ {
		token, err = s.resetTokenRepository.Create(ctx, user.CreateResetTokenInput{
			Token:     s.resetTokenGenerator.GenerateResetToken(),
			UserID:    u.ID,
			ExpiresAt: now.Add(s.tokenTTL),
			CreatedAt: now,
		})
		if !errors.Is(err, user.ErrResetTokenAlreadyExists) {
			return token, err
		}
	}
	return token, err
}
