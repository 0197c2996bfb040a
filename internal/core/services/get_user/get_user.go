package getuser

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

type Result struct {
	User user.User
}

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
	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by ID.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{User: u}, nil
}
