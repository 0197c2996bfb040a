package updateuser

import (
	"context"
	"errors"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	UserID   user.ID
	Username c.Optional[user.Username]
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
	u, err := s.userRepository.Update(ctx, user.UpdateUserInput{
		ID:               input.UserID,
		DoUsernameUpdate: input.Username.IsPresent,
		Username:         input.Username.Value,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user.",
			logging.Entry("userId", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "User has been updated.", logging.Entry("userId", u.ID))
	return Result{User: u}, nil
}
