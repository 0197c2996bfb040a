package resetpassword

import (
	"context"
	"errors"
	"time"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	uow "userapi/internal/core/domain/unit_of_work"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

// Run consumes the token and updates the password within a single unit of
// work. The consume step is a row delete, so at most one of two concurrent
// calls with the same token can get past it; the loser observes
// ErrResetTokenDoesNotExist. Any failure after the delete rolls the whole
// transaction back and the token stays usable for retry.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	tx, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer tx.Rollback(ctx)

	token, err := tx.ResetTokens().GetByToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrResetTokenDoesNotExist) {
		s.log.Info(ctx, "Password reset token not found.")
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
		return result, err
	}

	if token.IsExpired(s.now()) {
		s.log.Info(
			ctx,
			"Password reset token has expired.",
			logging.Entry("userId", token.UserID),
			logging.Entry("expiresAt", token.ExpiresAt),
		)
		return result, user.ErrResetTokenExpired
	}

	_, err = tx.ResetTokens().DeleteByToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrResetTokenDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset token has already been consumed.",
			logging.Entry("userId", token.UserID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume password reset token.",
			logging.Entry("userId", token.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = tx.Users().SetPassword(ctx, token.UserID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Could not update password, user does not exist.",
			logging.Entry("userId", token.UserID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userId", token.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = tx.Commit(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("userId", token.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userId", token.UserID),
	)
	return result, nil
}
