package deleteuser

import (
	"context"
	"errors"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	UserID user.ID
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{log: log, userRepository: userRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.userRepository.Delete(ctx, input.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete user.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "User has been deleted.", logging.Entry("userId", input.UserID))
	return result, nil
}
