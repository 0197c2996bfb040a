package listusers

import (
	"context"
	"errors"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

const DEFAULT_LIMIT = uint(20)

type Input struct {
	UsernameContains c.Optional[string]
	Limit            c.Optional[uint]
	Offset           uint
}

type Result struct {
	Users      []user.User
	TotalCount uint
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
	limit := DEFAULT_LIMIT
	if input.Limit.IsPresent {
		limit = input.Limit.Value
	}
	query := user.ListUsersQuery{
		UsernameContains: input.UsernameContains,
		Limit:            limit,
		Offset:           input.Offset,
	}

	users, err := s.userRepository.List(ctx, query)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not list users.", logging.Entry("err", err))
		return result, err
	}

	totalCount, err := s.userRepository.Count(ctx, query)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not count users.", logging.Entry("err", err))
		return result, err
	}

	return Result{Users: users, TotalCount: totalCount}, nil
}
