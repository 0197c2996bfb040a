package sendpasswordresettoken

import (
	"context"
	"errors"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

// serviceWithResetTokenSending emails the reset link after the token has
// been issued. Delivery failure is logged and does not invalidate the
// already-issued token, so the operation still reports success.
type serviceWithResetTokenSending struct {
	log    logging.Logger
	sender user.PasswordResetTokenSender
	inner  services.Service[Input, Result]
}

func NewWithResetTokenSending(
	log logging.Logger,
	sender user.PasswordResetTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithResetTokenSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithResetTokenSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending password reset token.", logging.Entry("err", err))
		return result, err
	}

	err = s.sender.SendResetToken(ctx, result.User, result.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userId", result.User.ID),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent to the user.",
		logging.Entry("userId", result.User.ID),
	)
	return result, nil
}
